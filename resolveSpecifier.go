package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions probed, in order, when a specifier names a file without its
// extension or a directory with an index file.
var resolvableExtensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}

// ResolvedImport is an import specifier mapped to its module identity.
// External imports keep the raw specifier as ID and never enter the graph.
type ResolvedImport struct {
	Request  string `json:"request"`
	ID       string `json:"id"`
	External bool   `json:"external,omitempty"`
}

type aliasRule struct {
	prefix string
	target string
}

// Resolver maps import specifiers to module identities.
type Resolver struct {
	aliases  []aliasRule
	external []GlobMatcher
}

// NewResolver builds a resolver. Alias targets are resolved against aliasRoot.
func NewResolver(aliases map[string]string, aliasRoot string, externalPatterns []string) (*Resolver, error) {
	external, err := CreateGlobMatchers(externalPatterns)
	if err != nil {
		return nil, err
	}
	rules := make([]aliasRule, 0, len(aliases))
	for prefix, target := range aliases {
		prefix = strings.TrimSuffix(prefix, "/")
		if prefix == "" {
			return nil, fmt.Errorf("alias with empty prefix")
		}
		rules = append(rules, aliasRule{prefix: prefix, target: resolveFromDir(aliasRoot, target)})
	}
	// Longest prefix first so "@app/ui" beats "@app".
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].prefix) != len(rules[j].prefix) {
			return len(rules[i].prefix) > len(rules[j].prefix)
		}
		return rules[i].prefix < rules[j].prefix
	})
	return &Resolver{aliases: rules, external: external}, nil
}

// Resolve maps specifier, written in the module importer, to a module identity.
func (r *Resolver) Resolve(specifier string, importer string) (ResolvedImport, error) {
	if specifier == "" {
		return ResolvedImport{}, &BuildError{
			Kind:     ResolutionError,
			ID:       importer,
			Importer: importer,
			Detail:   "empty import specifier",
		}
	}
	if MatchesAnyGlobMatcher(specifier, r.external) {
		return ResolvedImport{Request: specifier, ID: specifier, External: true}, nil
	}

	var candidate string
	switch {
	case isRelativeSpecifier(specifier):
		importerDir := filepath.Dir(DenormalizePathForOS(importer))
		candidate = filepath.Join(importerDir, filepath.FromSlash(specifier))
	case filepath.IsAbs(specifier):
		candidate = filepath.Clean(specifier)
	default:
		target, ok := r.resolveAlias(specifier)
		if !ok {
			return ResolvedImport{}, &BuildError{
				Kind:      ResolutionError,
				Specifier: specifier,
				Importer:  importer,
				Detail:    "bare specifiers are not resolved; declare it in 'alias' or 'external'",
			}
		}
		candidate = target
	}

	id, ok := probeFile(candidate)
	if !ok {
		return ResolvedImport{}, &BuildError{
			Kind:      ResolutionError,
			ID:        NormalizePathForInternal(candidate),
			Specifier: specifier,
			Importer:  importer,
			Detail:    "no such file",
		}
	}
	return ResolvedImport{Request: specifier, ID: id}, nil
}

func (r *Resolver) resolveAlias(specifier string) (string, bool) {
	for _, rule := range r.aliases {
		if specifier == rule.prefix {
			return rule.target, true
		}
		if rest, found := strings.CutPrefix(specifier, rule.prefix+"/"); found {
			return filepath.Join(rule.target, filepath.FromSlash(rest)), true
		}
	}
	return "", false
}

func isRelativeSpecifier(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// probeFile finds the file a candidate path refers to: the exact file, the
// path plus a known extension, or an index file inside the directory.
func probeFile(candidate string) (string, bool) {
	if id, ok := existingFileID(candidate); ok {
		return id, true
	}
	for _, ext := range resolvableExtensions {
		if id, ok := existingFileID(candidate + ext); ok {
			return id, true
		}
	}
	for _, ext := range resolvableExtensions {
		if id, ok := existingFileID(filepath.Join(candidate, "index"+ext)); ok {
			return id, true
		}
	}
	return "", false
}

func existingFileID(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	id, err := CanonicalModuleID(path)
	if err != nil {
		return "", false
	}
	return id, true
}
