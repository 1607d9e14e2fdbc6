package query

import (
	"context"
	"errors"
	"testing"

	"github.com/itchyny/gojq"
)

func sampleInputs() []any {
	return []any{
		map[string]any{
			"name": "jnv",
			"tags": []any{"json", "tui"},
		},
	}
}

func TestEvalEmptyFilterIsIdentity(t *testing.T) {
	e := NewEngine(sampleInputs())

	out, err := e.Eval(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one output, got %d", len(out))
	}
	if _, ok := out[0].(map[string]any); !ok {
		t.Fatalf("expected the input object back, got %T", out[0])
	}
}

func TestEvalCollectsEveryOutput(t *testing.T) {
	e := NewEngine(sampleInputs())

	out, err := e.Eval(context.Background(), ".tags[]")
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if len(out) != 2 || out[0] != "json" || out[1] != "tui" {
		t.Fatalf("unexpected outputs %v", out)
	}
}

func TestEvalRunsAgainstEachInput(t *testing.T) {
	e := NewEngine([]any{map[string]any{"n": 1}, map[string]any{"n": 2}})

	out, err := e.Eval(context.Background(), ".n")
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected two outputs, got %v", out)
	}
}

func TestEvalReportsParseErrors(t *testing.T) {
	e := NewEngine(sampleInputs())

	if _, err := e.Eval(context.Background(), ".name |"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestEvalReportsRuntimeErrors(t *testing.T) {
	e := NewEngine(sampleInputs())

	_, err := e.Eval(context.Background(), `error("boom")`)
	var valueErr gojq.ValueError
	if !errors.As(err, &valueErr) || valueErr.Value() != "boom" {
		t.Fatalf("expected error value boom, got %v", err)
	}

	_, err = e.Eval(context.Background(), ".name | keys")
	if err == nil || errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected keys on a string to fail, got %v", err)
	}
}

func TestEvalEmptyResult(t *testing.T) {
	e := NewEngine(sampleInputs())

	_, err := e.Eval(context.Background(), "empty")
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestEvalHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewEngine(sampleInputs())

	if _, err := e.Eval(ctx, "."); err == nil {
		t.Fatal("expected canceled evaluation to fail")
	}
}
