package main

import (
	"os"
	"path/filepath"
	"strconv"
)

var osSeparator = string(os.PathSeparator)

func StandardiseDirPath(cwd string) string {
	if cwd == "" || string(cwd[len(cwd)-1]) == osSeparator {
		return cwd
	}
	return cwd + osSeparator
}

func ResolveAbsoluteCwd(cwd string) string {
	if filepath.IsAbs(cwd) {
		return StandardiseDirPath(cwd)
	}
	binaryExecDir, _ := os.Getwd()
	return StandardiseDirPath(filepath.Join(binaryExecDir, cwd))
}

// resolveFromDir joins relative paths onto dir; absolute paths pass through.
func resolveFromDir(dir string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func pluralize(n int, singular string, plural string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
