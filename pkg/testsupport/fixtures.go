// Package testsupport provides fixture and golden-file helpers shared by the
// package test suites.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/field"
	"github.com/goliatone/go-formval/pkg/formdef"
	"github.com/goliatone/go-formval/pkg/validation"
)

// MustLoadForm loads a form definition fixture, failing the test on error.
func MustLoadForm(t *testing.T, path string) field.Form {
	t.Helper()
	form, err := formdef.Load(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// MustLoadAnswers reads a JSON answers fixture and resolves each value into
// the field value union.
func MustLoadAnswers(t *testing.T, path string) map[string]field.Value {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read answers: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal answers: %v", err)
	}
	answers := make(map[string]field.Value, len(raw))
	for question, value := range raw {
		answers[question] = field.Resolve(value)
	}
	return answers
}

// MustLoadFormResult reads a JSON golden file into a FormResult.
func MustLoadFormResult(t *testing.T, path string) validation.FormResult {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	var out validation.FormResult
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
