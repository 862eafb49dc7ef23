package main

import (
	"context"
	"os"
)

// Asset is one extracted module: its identity, the transformed factory body
// and the identities it depends on in source order. Duplicates are kept when
// a module is imported by several statements.
type Asset struct {
	ID           string           `json:"id"`
	Code         string           `json:"-"`
	Dependencies []string         `json:"dependencies"`
	Imports      []ResolvedImport `json:"imports"`
}

// AssetExtractor produces the Asset for one module identity.
type AssetExtractor interface {
	Extract(ctx context.Context, id string) (*Asset, error)
}

// FileAssetExtractor reads modules from disk, rewrites their import
// specifiers to module identities and lowers them to CommonJS.
// It does not cache; the graph builder deduplicates.
type FileAssetExtractor struct {
	parser   *SourceParser
	resolver *Resolver
}

func NewFileAssetExtractor(resolver *Resolver) *FileAssetExtractor {
	return &FileAssetExtractor{
		parser:   NewSourceParser(),
		resolver: resolver,
	}
}

func (e *FileAssetExtractor) Extract(ctx context.Context, id string) (*Asset, error) {
	content, err := os.ReadFile(DenormalizePathForOS(id))
	if err != nil {
		return nil, newBuildError(ReadError, id, "cannot read module", err)
	}

	tree, err := e.parser.Parse(ctx, id, content)
	if err != nil {
		return nil, err
	}

	imports := FindImports(tree, content)

	asset := &Asset{
		ID:           id,
		Dependencies: make([]string, 0, len(imports)),
		Imports:      make([]ResolvedImport, 0, len(imports)),
	}
	replacements := make(map[int]string, len(imports))

	for idx, imp := range imports {
		if imp.IsDynamicImport {
			buildErr := newBuildError(TransformError, id, "dynamic import() is not supported", nil)
			buildErr.Specifier = imp.Request
			buildErr.Line = imp.Line
			return nil, buildErr
		}
		resolved, err := e.resolver.Resolve(imp.Request, id)
		if err != nil {
			return nil, err
		}
		asset.Imports = append(asset.Imports, resolved)
		if resolved.External {
			continue
		}
		replacements[idx] = resolved.ID
		asset.Dependencies = append(asset.Dependencies, resolved.ID)
	}

	rewritten := ApplyChanges(string(content), RewriteImportChanges(imports, replacements))

	code, err := TransformModule(id, rewritten)
	if err != nil {
		return nil, err
	}
	asset.Code = code

	logger.Debug("extracted module", "id", id, "dependencies", len(asset.Dependencies))
	return asset, nil
}
