package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-zodform/pkg/model"
)

// MustLoadSpec loads a JSON ArtifactSpec fixture.
func MustLoadSpec(t *testing.T, path string) pkgmodel.ArtifactSpec {
	t.Helper()

	spec, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("load spec: %v", err)
	}
	return spec
}

// LoadSpec reads a JSON ArtifactSpec fixture, returning an error for callers
// managing setup outside of *testing.T.
func LoadSpec(path string) (pkgmodel.ArtifactSpec, error) {
	if path == "" {
		return pkgmodel.ArtifactSpec{}, errors.New("testsupport: spec path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.ArtifactSpec{}, fmt.Errorf("testsupport: read spec: %w", err)
	}
	var out pkgmodel.ArtifactSpec
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.ArtifactSpec{}, fmt.Errorf("testsupport: unmarshal spec: %w", err)
	}
	return out, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
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

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// MustContain fails unless every needle occurs in source.
func MustContain(t *testing.T, source string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if !strings.Contains(source, needle) {
			t.Fatalf("expected output to contain %q\n---\n%s", needle, source)
		}
	}
}

// MustNotContain fails if any needle occurs in source.
func MustNotContain(t *testing.T, source string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if strings.Contains(source, needle) {
			t.Fatalf("expected output not to contain %q\n---\n%s", needle, source)
		}
	}
}

// MustAppearInOrder fails unless the needles occur in source in the given
// order.
func MustAppearInOrder(t *testing.T, source string, needles ...string) {
	t.Helper()
	offset := 0
	for _, needle := range needles {
		idx := strings.Index(source[offset:], needle)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d\n---\n%s", needle, offset, source)
		}
		offset += idx + len(needle)
	}
}

// Count returns the number of non-overlapping occurrences of needle.
func Count(source, needle string) int {
	return strings.Count(source, needle)
}
