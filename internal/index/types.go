// Package index persists catalog validation state in sqlite so repeat
// scans and watch mode can skip unchanged documents.
package index

import "time"

type DocStatus string

const (
	StatusPass  DocStatus = "pass"
	StatusFail  DocStatus = "fail"
	StatusError DocStatus = "error"
)

type Record struct {
	ID          int64     `json:"id"`
	Path        string    `json:"path"`
	Principle   string    `json:"principle"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash"`
	Encoding    string    `json:"encoding,omitempty"`
	Status      DocStatus `json:"status"`
	Missing     []string  `json:"missing,omitempty"`
	ValidatedAt time.Time `json:"validated_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Stats struct {
	TotalDocuments int       `json:"total_documents"`
	Passing        int       `json:"passing"`
	Failing        int       `json:"failing"`
	LastScanAt     time.Time `json:"last_scan_at"`
}

type ScanJob struct {
	Path     string
	Priority JobPriority
}

type JobPriority int

const (
	PriorityLow JobPriority = iota
	PriorityNormal
	PriorityHigh
)
