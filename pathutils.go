package main

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePathForInternal converts an OS path into the canonical form used as
// module identity: cleaned, forward slashes on Windows.
// Examples:
// - "C:\\project\\src\\file.js" -> "C:/project/src/file.js"
// - "/app/src/../lib/b.js" -> "/app/lib/b.js"
func NormalizePathForInternal(p string) string {
	if p == "" {
		return ""
	}
	cleaned := filepath.Clean(p)
	if runtime.GOOS != "windows" {
		return cleaned
	}
	s := filepath.ToSlash(cleaned)
	// Trim trailing slash except when path is root like "/" or "C:/"
	if len(s) > 1 && strings.HasSuffix(s, "/") && !strings.HasSuffix(s, ":/") {
		s = strings.TrimRight(s, "/")
	}
	return s
}

// DenormalizePathForOS converts an internal forward-slash path back to the
// OS-native representation for os.* calls.
func DenormalizePathForOS(internal string) string {
	if runtime.GOOS != "windows" {
		return internal
	}
	if internal == "" {
		return ""
	}
	return filepath.FromSlash(internal)
}

// CanonicalModuleID returns the module identity of an existing file: absolute,
// symlinks evaluated, normalized.
func CanonicalModuleID(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return NormalizePathForInternal(resolved), nil
}

// RelativeToCwd trims cwd from id for display. Identities outside cwd are
// returned unchanged.
func RelativeToCwd(id string, cwd string) string {
	prefix := NormalizePathForInternal(cwd)
	if prefix == "" {
		return id
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if strings.HasPrefix(id, prefix) {
		return strings.TrimPrefix(id, prefix)
	}
	return id
}
