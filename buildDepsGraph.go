package main

import (
	"context"
)

// ModuleGraph holds exactly one Asset per module identity reachable from
// Entry. Assets are in breadth-first first-discovery order from the entry.
type ModuleGraph struct {
	Entry  string
	Assets []*Asset
	index  map[string]*Asset
}

func (g *ModuleGraph) Get(id string) (*Asset, bool) {
	asset, ok := g.index[id]
	return asset, ok
}

func (g *ModuleGraph) Len() int {
	return len(g.Assets)
}

// IDs returns module identities in registry order.
func (g *ModuleGraph) IDs() []string {
	ids := make([]string, 0, len(g.Assets))
	for _, asset := range g.Assets {
		ids = append(ids, asset.ID)
	}
	return ids
}

type discoveredBy struct {
	specifier string
	importer  string
}

type extraction struct {
	id    string
	asset *Asset
	err   error
}

// graphBuilder owns the work list and the visited set. Only the coordinating
// goroutine touches it, which makes check-and-mark atomic.
type graphBuilder struct {
	entry   string
	queue   []string
	visited map[string]bool
	origin  map[string]discoveredBy
	assets  map[string]*Asset
	err     error
}

func newGraphBuilder(entry string) *graphBuilder {
	return &graphBuilder{
		entry:   entry,
		queue:   []string{entry},
		visited: make(map[string]bool),
		origin:  make(map[string]discoveredBy),
		assets:  make(map[string]*Asset),
	}
}

// next pops the next unvisited identity and marks it visited.
func (b *graphBuilder) next() (string, bool) {
	if b.err != nil {
		return "", false
	}
	for len(b.queue) > 0 {
		id := b.queue[0]
		b.queue = b.queue[1:]
		if b.visited[id] {
			continue
		}
		b.visited[id] = true
		return id, true
	}
	return "", false
}

func (b *graphBuilder) complete(res extraction) {
	if b.err != nil {
		return
	}
	if res.err != nil {
		from := b.origin[res.id]
		b.err = withImportContext(res.err, from.specifier, from.importer)
		return
	}

	b.assets[res.id] = res.asset
	for _, dep := range res.asset.Dependencies {
		if _, seen := b.origin[dep]; !seen && dep != b.entry {
			b.origin[dep] = discoveredBy{specifier: requestFor(res.asset, dep), importer: res.id}
		}
		if !b.visited[dep] {
			b.queue = append(b.queue, dep)
		}
	}
}

// graph orders assets breadth-first from the entry, following dependencies
// in source order, so the result does not depend on completion order.
func (b *graphBuilder) graph() *ModuleGraph {
	graph := &ModuleGraph{
		Entry:  b.entry,
		Assets: make([]*Asset, 0, len(b.assets)),
		index:  make(map[string]*Asset, len(b.assets)),
	}

	queue := []string{b.entry}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, done := graph.index[id]; done {
			continue
		}
		asset, ok := b.assets[id]
		if !ok {
			continue
		}
		graph.index[id] = asset
		graph.Assets = append(graph.Assets, asset)
		queue = append(queue, asset.Dependencies...)
	}
	return graph
}

func requestFor(asset *Asset, dep string) string {
	for _, imp := range asset.Imports {
		if !imp.External && imp.ID == dep {
			return imp.Request
		}
	}
	return ""
}

// BuildGraph discovers every module reachable from entry. With concurrency
// above 1, up to that many extractions run at once; otherwise extraction is
// sequential on the calling goroutine. The first extraction failure aborts the build
// and no partial graph is returned.
func BuildGraph(ctx context.Context, extractor AssetExtractor, entry string, concurrency int) (*ModuleGraph, error) {
	builder := newGraphBuilder(entry)

	extract := func(id string) extraction {
		asset, err := extractor.Extract(ctx, id)
		return extraction{id: id, asset: asset, err: err}
	}

	if concurrency <= 1 {
		for {
			id, ok := builder.next()
			if !ok {
				break
			}
			builder.complete(extract(id))
		}
	} else {
		results := make(chan extraction)
		inFlight := 0
		for {
			for inFlight < concurrency {
				id, ok := builder.next()
				if !ok {
					break
				}
				inFlight++
				go func(id string) {
					results <- extract(id)
				}(id)
			}
			if inFlight == 0 {
				break
			}
			// Keep draining after a failure so no worker is left blocked.
			res := <-results
			inFlight--
			builder.complete(res)
		}
	}

	if builder.err != nil {
		return nil, builder.err
	}
	return builder.graph(), nil
}
