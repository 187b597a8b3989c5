// Package testutil loads HTML fixtures for tricount parser tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// LoadFixture reads a captured HTML fixture by name.
func LoadFixture(t *testing.T, name string) string {
	t.Helper()

	// Path relative to this file, so tests work from any package dir.
	_, filename, _, _ := runtime.Caller(0)
	baseDir := filepath.Dir(filepath.Dir(filename)) // up to tricount/

	path := filepath.Join(baseDir, "testdata", "fixtures", name+".html")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	return string(data)
}
