// Package render produces the textual catalog index.
package render

import (
	"fmt"
	"strings"

	"github.com/solidcat/solidcat/internal/catalog"
	"github.com/solidcat/solidcat/internal/validate"
)

type Renderer struct {
	ShowMissing bool
	ShowStats   bool
}

func New() *Renderer {
	return &Renderer{ShowMissing: true, ShowStats: true}
}

// Index renders the catalog report: one line per document in canonical
// principle order, regardless of the order docs arrived in. Rendering
// the same inputs twice yields byte-identical output.
func (r *Renderer) Index(docs []catalog.Document, results map[catalog.Principle]validate.Result) string {
	sorted := make([]catalog.Document, len(docs))
	copy(sorted, docs)
	catalog.SortCanonical(sorted)

	titleWidth := 0
	for _, doc := range sorted {
		if len(doc.Title) > titleWidth {
			titleWidth = len(doc.Title)
		}
	}

	var b strings.Builder
	b.WriteString("SOLID Principle Catalog\n")
	b.WriteString(strings.Repeat("-", 23) + "\n")

	passing := 0
	for _, doc := range sorted {
		// A document with no result counts as failing, same as the
		// footer tally.
		result, ok := results[doc.Principle]
		marker := "FAIL"
		var missing []string
		switch {
		case ok && result.Pass:
			marker = "PASS"
			passing++
		case ok:
			missing = validate.MissingNames(result)
		}

		fmt.Fprintf(&b, "%-4s %-*s %s", doc.Principle, titleWidth, doc.Title, marker)
		if r.ShowMissing && len(missing) > 0 {
			fmt.Fprintf(&b, " (missing: %s)", strings.Join(missing, ", "))
		}
		b.WriteString("\n")
	}

	if r.ShowStats {
		fmt.Fprintf(&b, "\n%d documents, %d passing, %d failing\n",
			len(sorted), passing, len(sorted)-passing)
	}

	return b.String()
}
