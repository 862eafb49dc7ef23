package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// FindCircularDependencies returns every import cycle reachable in graph,
// each closed by repeating its first module. Cycles are legal in a bundle;
// this only reports them.
func FindCircularDependencies(graph *ModuleGraph) [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	// Use shared path slice to avoid copying
	path := make([]string, 0, 64)

	var dfs func(node string)
	dfs = func(node string) {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		if asset, exists := graph.Get(node); exists {
			for _, depPath := range asset.Dependencies {
				if recStack[depPath] {
					cycleStart := -1
					for i := len(path) - 1; i >= 0; i-- {
						if path[i] == depPath {
							cycleStart = i
							break
						}
					}
					if cycleStart >= 0 {
						cycle := make([]string, len(path)-cycleStart+1)
						copy(cycle, path[cycleStart:])
						cycle[len(cycle)-1] = depPath // Close the cycle
						cycles = append(cycles, cycle)
					}
					continue
				}

				if !visited[depPath] {
					dfs(depPath)
				}
			}
		}

		path = path[:len(path)-1]
		recStack[node] = false
	}

	for _, id := range graph.IDs() {
		if !visited[id] {
			dfs(id)
		}
	}

	return deduplicateStringArrays(cycles)
}

// FormatCircularDependencies renders cycles with paths relative to pathPrefix
// and the specifier each module used for the next one.
func FormatCircularDependencies(cycles [][]string, pathPrefix string, graph *ModuleGraph) string {
	if len(cycles) == 0 {
		return fmt.Sprintln("No circular dependencies found! ✅")
	}

	header := color.New(color.FgYellow, color.Bold)
	var result strings.Builder
	result.WriteString(header.Sprintf("Found %s:", pluralize(len(cycles), "circular dependency", "circular dependencies")))
	result.WriteString("\n\n")

	for i, cycle := range cycles {
		fmt.Fprintf(&result, "Circular Dependency %d:\n", i+1)
		for j, file := range cycle {
			cleanPath := RelativeToCwd(file, pathPrefix)
			indent := strings.Repeat(" ", j)
			if j == 0 {
				fmt.Fprintf(&result, "%s ➞ %s (cycle start)\n", indent, cleanPath)
				continue
			}
			request := ""
			if importer, exists := graph.Get(cycle[j-1]); exists {
				request = requestFor(importer, file)
			}
			fmt.Fprintf(&result, "%s ➞ %s ('%s')\n", indent, cleanPath, request)
		}
		result.WriteString("\n")
	}
	return result.String()
}

func deduplicateStringArrays(arr [][]string) [][]string {
	entries := make(map[string]struct{}, len(arr))
	result := make([][]string, 0, len(arr))

	for _, arrNested := range arr {
		key := strings.Join(arrNested, ",")
		if _, exists := entries[key]; !exists {
			result = append(result, arrNested)
			entries[key] = struct{}{}
		}
	}
	return result
}
