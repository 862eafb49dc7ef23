package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	configureLogger(false, true)
	os.Exit(m.Run())
}

// writeProject writes files (slash-separated paths relative to the project
// root) into a fresh temporary directory and returns the directory.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

// moduleID returns the identity the bundler assigns to name inside root.
func moduleID(t *testing.T, root string, name string) string {
	t.Helper()
	id, err := CanonicalModuleID(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("canonical id for %s: %v", name, err)
	}
	return id
}
