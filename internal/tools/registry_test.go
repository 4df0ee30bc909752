package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type stubTool struct {
	name string
}

func (t *stubTool) Name() string            { return t.name }
func (t *stubTool) Description() string     { return "stub" }
func (t *stubTool) Schema() json.RawMessage { return json.RawMessage(`{"type":"object"}`) }

func (t *stubTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	return "ok", nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&stubTool{name: "one"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(&stubTool{name: "one"}); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	if _, ok := r.Get("one"); !ok {
		t.Error("expected tool 'one' to be registered")
	}
	if _, ok := r.Get("two"); ok {
		t.Error("did not expect tool 'two'")
	}

	if len(r.List()) != 1 || len(r.Names()) != 1 {
		t.Errorf("expected exactly one tool, got %d", len(r.List()))
	}
}

func TestRegistry_ExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()

	_, err := r.Execute(context.Background(), "missing", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %T", err)
	}
	if toolErr.Code != -32601 {
		t.Errorf("expected code -32601, got %d", toolErr.Code)
	}
}

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubTool{name: "one"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := r.Execute(context.Background(), "one", nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected 'ok', got %v", result)
	}
}
