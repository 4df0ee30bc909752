// Package validate checks principle documents for their required
// sections. Missing sections are reported, never fatal.
package validate

import (
	"strings"

	"github.com/solidcat/solidcat/internal/catalog"
)

// Section names a required part of a principle write-up.
type Section string

const (
	SectionDefinition       Section = "Definition"
	SectionRationale        Section = "Rationale"
	SectionViolationExample Section = "ViolationExample"
	SectionFixedExample     Section = "FixedExample"
)

// RequiredSections is the fixed checklist every document must carry.
var RequiredSections = []Section{
	SectionDefinition,
	SectionRationale,
	SectionViolationExample,
	SectionFixedExample,
}

// Result is the validation outcome for one document.
type Result struct {
	Principle catalog.Principle `json:"principle"`
	Missing   []Section         `json:"missing,omitempty"`
	Pass      bool              `json:"pass"`
}

// Document validates one document. It is a pure function over the
// document's headings.
func Document(doc catalog.Document) Result {
	present := make(map[string]bool, len(doc.Headings))
	for _, heading := range doc.Headings {
		present[normalizeHeading(heading)] = true
	}

	result := Result{Principle: doc.Principle}
	for _, section := range RequiredSections {
		if !present[normalizeHeading(string(section))] {
			result.Missing = append(result.Missing, section)
		}
	}
	result.Pass = len(result.Missing) == 0
	return result
}

// All validates every document, keyed by principle.
func All(docs []catalog.Document) map[catalog.Principle]Result {
	results := make(map[catalog.Principle]Result, len(docs))
	for _, doc := range docs {
		results[doc.Principle] = Document(doc)
	}
	return results
}

// normalizeHeading folds case and separator differences so that
// "Violation Example", "violation-example" and "ViolationExample" all
// compare equal.
func normalizeHeading(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '-', '_':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MissingNames renders the missing set as plain strings for reports
// and storage.
func MissingNames(r Result) []string {
	names := make([]string, 0, len(r.Missing))
	for _, s := range r.Missing {
		names = append(names, string(s))
	}
	return names
}
