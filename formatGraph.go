package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// SerializableNode is the JSON shape of one module in `graph --json`.
type SerializableNode struct {
	Path    string           `json:"path"`
	Entry   bool             `json:"entry,omitempty"`
	Imports []ResolvedImport `json:"imports,omitempty"`
}

// FormatGraph lists each module in registry order followed by its imports,
// with paths shown relative to pathPrefix.
func FormatGraph(graph *ModuleGraph, pathPrefix string) string {
	var result strings.Builder
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintf(&result, "%s (%s):\n\n", RelativeToCwd(graph.Entry, pathPrefix), pluralize(graph.Len(), "module", "modules"))

	for _, asset := range graph.Assets {
		result.WriteString(bold.Sprint(RelativeToCwd(asset.ID, pathPrefix)))
		if asset.ID == graph.Entry {
			result.WriteString(" (entry)")
		}
		result.WriteString("\n")
		for _, imp := range asset.Imports {
			if imp.External {
				fmt.Fprintf(&result, " ➞ %s %s\n", imp.Request, faint.Sprint("(external)"))
				continue
			}
			fmt.Fprintf(&result, " ➞ %s %s\n", imp.Request, faint.Sprint(RelativeToCwd(imp.ID, pathPrefix)))
		}
	}
	return result.String()
}

func GraphToJSON(graph *ModuleGraph) ([]byte, error) {
	nodes := make([]SerializableNode, 0, graph.Len())
	for _, asset := range graph.Assets {
		nodes = append(nodes, SerializableNode{
			Path:    asset.ID,
			Entry:   asset.ID == graph.Entry,
			Imports: asset.Imports,
		})
	}
	return json.MarshalIndent(nodes, "", "  ")
}
