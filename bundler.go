package main

import (
	"context"
	"path/filepath"
)

// BuildOptions is the fully merged configuration of one build
// (config file values overridden by flags).
type BuildOptions struct {
	Cwd         string
	Entry       string
	Output      string
	Alias       map[string]string
	AliasRoot   string
	External    []string
	Concurrency int
}

// ResolveEntry maps the entry path, relative to cwd, to its module identity.
// A missing entry is a ReadError.
func ResolveEntry(cwd string, entry string) (string, error) {
	if entry == "" {
		return "", newBuildError(ReadError, "", "no entry file given", nil)
	}
	candidate := resolveFromDir(cwd, filepath.FromSlash(entry))
	id, ok := probeFile(candidate)
	if !ok {
		return "", newBuildError(ReadError, NormalizePathForInternal(candidate), "entry file not found", nil)
	}
	return id, nil
}

// BuildModuleGraph resolves the entry and discovers its module graph.
func BuildModuleGraph(ctx context.Context, opts BuildOptions) (*ModuleGraph, error) {
	entryID, err := ResolveEntry(opts.Cwd, opts.Entry)
	if err != nil {
		return nil, err
	}

	aliasRoot := opts.AliasRoot
	if aliasRoot == "" {
		aliasRoot = opts.Cwd
	}
	resolver, err := NewResolver(opts.Alias, aliasRoot, opts.External)
	if err != nil {
		return nil, err
	}

	return BuildGraph(ctx, NewFileAssetExtractor(resolver), entryID, opts.Concurrency)
}

// Bundle builds the graph, generates the artifact and writes it to
// opts.Output. Nothing is written unless every step succeeds.
func Bundle(ctx context.Context, opts BuildOptions) (*ModuleGraph, string, error) {
	graph, err := BuildModuleGraph(ctx, opts)
	if err != nil {
		return nil, "", err
	}

	artifact, err := GenerateBundle(graph)
	if err != nil {
		return nil, "", err
	}

	output := resolveFromDir(opts.Cwd, opts.Output)
	if err := WriteBundle(output, artifact); err != nil {
		return nil, "", err
	}

	logger.Info("bundle written", "output", output, "modules", graph.Len(), "bytes", len(artifact))
	return graph, artifact, nil
}
