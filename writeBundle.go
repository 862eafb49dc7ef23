package main

import (
	"os"
	"path/filepath"
)

// WriteBundle replaces the file at output with artifact. The content goes to
// a temporary file in the same directory first and is renamed into place, so
// a failed write never leaves a partial artifact behind.
func WriteBundle(output string, artifact string) error {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newBuildError(WriteError, output, "cannot create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(output)+".*.tmp")
	if err != nil {
		return newBuildError(WriteError, output, "cannot create temporary file", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.WriteString(artifact); err != nil {
		tmp.Close()
		cleanup()
		return newBuildError(WriteError, output, "cannot write artifact", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return newBuildError(WriteError, output, "cannot write artifact", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return newBuildError(WriteError, output, "cannot set artifact permissions", err)
	}
	if err := os.Rename(tmpPath, output); err != nil {
		cleanup()
		return newBuildError(WriteError, output, "cannot replace output file", err)
	}
	return nil
}
