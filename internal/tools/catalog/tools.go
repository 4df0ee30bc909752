// Package catalogtools exposes the catalog pipeline as JSON-RPC tools.
package catalogtools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/solidcat/solidcat/internal/catalog"
	"github.com/solidcat/solidcat/internal/index"
	"github.com/solidcat/solidcat/internal/render"
	"github.com/solidcat/solidcat/internal/tools"
	"github.com/solidcat/solidcat/internal/validate"
)

// Service bundles what every catalog tool needs: the documents
// directory, a loader, and optionally the index store for cached stats.
type Service struct {
	Dir    string
	Loader *catalog.Loader
	Store  *index.Store
}

func (s *Service) load() ([]catalog.Document, map[catalog.Principle]validate.Result, error) {
	docs, err := s.Loader.Load(s.Dir)
	if err != nil {
		return nil, nil, err
	}
	return docs, validate.All(docs), nil
}

func GetTools(svc *Service) []tools.Tool {
	return []tools.Tool{
		&ListTool{svc: svc},
		&ValidateTool{svc: svc},
		&RenderTool{svc: svc},
		&StatusTool{svc: svc},
	}
}

type ListTool struct {
	svc *Service
}

func (t *ListTool) Name() string {
	return "catalog_list"
}

func (t *ListTool) Description() string {
	return "List the principle documents in the catalog with their titles and validation status, in canonical SRP/OCP/LSP/ISP/DIP order."
}

func (t *ListTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)
}

type listEntry struct {
	Principle string `json:"principle"`
	Title     string `json:"title"`
	Path      string `json:"path"`
	Pass      bool   `json:"pass"`
}

func (t *ListTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	docs, results, err := t.svc.load()
	if err != nil {
		return nil, err
	}

	byCode := make(map[catalog.Principle]catalog.Document, len(docs))
	for _, doc := range docs {
		byCode[doc.Principle] = doc
	}

	entries := make([]listEntry, 0, len(docs))
	for _, item := range catalog.BuildIndex(docs) {
		entries = append(entries, listEntry{
			Principle: item.Principle.String(),
			Title:     item.Title,
			Path:      byCode[item.Principle].Path,
			Pass:      results[item.Principle].Pass,
		})
	}

	return map[string]any{"documents": entries}, nil
}

type ValidateTool struct {
	svc *Service
}

func (t *ValidateTool) Name() string {
	return "catalog_validate"
}

func (t *ValidateTool) Description() string {
	return "Validate principle documents for the required Definition, Rationale, ViolationExample and FixedExample sections. Optionally restrict to one principle code."
}

func (t *ValidateTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"principle": {
				"type": "string",
				"description": "Principle code to validate (SRP, OCP, LSP, ISP, DIP). Omit to validate all."
			}
		}
	}`)
}

func (t *ValidateTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var req struct {
		Principle string `json:"principle"`
	}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, err
		}
	}

	if req.Principle != "" {
		p, ok := catalog.ParsePrinciple(req.Principle)
		if !ok {
			return nil, fmt.Errorf("unknown principle code: %s", req.Principle)
		}
		return t.validateOne(p)
	}

	docs, results, err := t.svc.load()
	if err != nil {
		return nil, err
	}

	catalog.SortCanonical(docs)
	ordered := make([]validate.Result, 0, len(docs))
	for _, doc := range docs {
		ordered = append(ordered, results[doc.Principle])
	}
	return map[string]any{"results": ordered}, nil
}

// validateOne answers from the index cache when one is attached; the
// scan worker keeps it fresh. Principles never scanned fall back to a
// live load.
func (t *ValidateTool) validateOne(p catalog.Principle) (any, error) {
	if t.svc.Store != nil {
		rec, err := t.svc.Store.GetByPrinciple(p.String())
		if err != nil {
			return nil, err
		}
		if rec != nil {
			result := validate.Result{Principle: p, Pass: rec.Status == index.StatusPass}
			for _, name := range rec.Missing {
				result.Missing = append(result.Missing, validate.Section(name))
			}
			return map[string]any{"results": []validate.Result{result}}, nil
		}
	}

	_, results, err := t.svc.load()
	if err != nil {
		return nil, err
	}
	result, found := results[p]
	if !found {
		return nil, fmt.Errorf("no document loaded for %s", p)
	}
	return map[string]any{"results": []validate.Result{result}}, nil
}

type RenderTool struct {
	svc *Service
}

func (t *RenderTool) Name() string {
	return "catalog_render"
}

func (t *RenderTool) Description() string {
	return "Render the catalog index report: one line per principle with title, pass/fail marker and missing sections."
}

func (t *RenderTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)
}

func (t *RenderTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	docs, results, err := t.svc.load()
	if err != nil {
		return nil, err
	}

	return map[string]any{"report": render.New().Index(docs, results)}, nil
}

type StatusTool struct {
	svc *Service
}

func (t *StatusTool) Name() string {
	return "catalog_status"
}

func (t *StatusTool) Description() string {
	return "Report catalog totals: documents, passing, failing, and the last scan time when an index cache is attached."
}

func (t *StatusTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)
}

func (t *StatusTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if t.svc.Store != nil {
		stats, err := t.svc.Store.Stats()
		if err != nil {
			return nil, err
		}
		return stats, nil
	}

	docs, results, err := t.svc.load()
	if err != nil {
		return nil, err
	}

	stats := &index.Stats{TotalDocuments: len(docs), LastScanAt: time.Now().UTC()}
	for _, result := range results {
		if result.Pass {
			stats.Passing++
		} else {
			stats.Failing++
		}
	}
	return stats, nil
}
