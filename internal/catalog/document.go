package catalog

import (
	"sort"
	"time"
)

// Document is one principle write-up, immutable after load.
type Document struct {
	Principle   Principle `json:"principle"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date,omitempty"`
	Path        string    `json:"path"`
	Body        string    `json:"-"`
	Headings    []string  `json:"headings,omitempty"`
	ContentHash string    `json:"content_hash"`
	Encoding    string    `json:"encoding,omitempty"`
}

// IndexEntry is one row of the catalog index.
type IndexEntry struct {
	Principle Principle `json:"principle"`
	Title     string    `json:"title"`
}

// BuildIndex derives the (principle, title) index in canonical order.
// It is regenerated from the documents on every call.
func BuildIndex(docs []Document) []IndexEntry {
	sorted := make([]Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Principle.Rank() < sorted[j].Principle.Rank()
	})

	entries := make([]IndexEntry, 0, len(sorted))
	for _, doc := range sorted {
		entries = append(entries, IndexEntry{Principle: doc.Principle, Title: doc.Title})
	}
	return entries
}
