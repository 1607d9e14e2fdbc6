package source

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeStreamOfValues(t *testing.T) {
	values, err := Decode([]byte(`{"a":1} [2] "three"`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	obj := values[0].(map[string]any)
	if obj["a"] != json.Number("1") {
		t.Fatalf("expected json.Number, got %T", obj["a"])
	}
}

func TestDecodeKeepsLargeIntegers(t *testing.T) {
	values, err := Decode([]byte(`12345678901234567890123`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if values[0] != json.Number("12345678901234567890123") {
		t.Fatalf("unexpected value %v", values[0])
	}
}

func TestDecodeStripsUTF8BOM(t *testing.T) {
	values, err := Decode(append([]byte{0xEF, 0xBB, 0xBF}, `{"k":true}`...))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if values[0].(map[string]any)["k"] != true {
		t.Fatalf("unexpected value %v", values[0])
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, '[', 0x00, '1', 0x00, ']', 0x00}

	values, err := Decode(content)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	arr, ok := values[0].([]any)
	if !ok || len(arr) != 1 {
		t.Fatalf("unexpected value %v", values[0])
	}
}

func TestDecodeRejectsBinary(t *testing.T) {
	if _, err := Decode([]byte{0x7B, 0x00, 0x01, 0x02}); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	if _, err := Decode([]byte("  \n")); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestDecodeReportsSyntaxErrors(t *testing.T) {
	_, err := Decode([]byte(`{"a":1} {"b":`))
	if err == nil || !strings.Contains(err.Error(), "value 2") {
		t.Fatalf("expected error naming the second value, got %v", err)
	}
}

func TestLoadFromFileAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, []byte(`{"x":1}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fromFile, err := Load(path, nil)
	if err != nil || len(fromFile) != 1 {
		t.Fatalf("Load(file) = %v, %v", fromFile, err)
	}

	fromStdin, err := Load("-", strings.NewReader(`1 2`))
	if err != nil || len(fromStdin) != 2 {
		t.Fatalf("Load(stdin) = %v, %v", fromStdin, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
