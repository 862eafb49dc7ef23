package main

import (
	"encoding/json"
	"sort"
	"strings"
)

// Change represents a text replacement in module source.
// Start and End are byte offsets in the original content.
type Change struct {
	Start uint32
	End   uint32
	Text  string
}

// RewriteImportChanges builds one change per import, replacing its string
// literal with the quoted replacement. Imports without a replacement are left untouched.
func RewriteImportChanges(imports []Import, replacements map[int]string) []Change {
	changes := make([]Change, 0, len(replacements))
	for idx, imp := range imports {
		replacement, ok := replacements[idx]
		if !ok || imp.RequestEnd <= imp.RequestStart {
			continue
		}
		changes = append(changes, Change{
			Start: imp.RequestStart,
			End:   imp.RequestEnd,
			Text:  QuoteJSString(replacement),
		})
	}
	return changes
}

// ApplyChanges applies non-overlapping changes to content. When changes
// overlap, the longer one wins.
func ApplyChanges(content string, changes []Change) string {
	if len(changes) == 0 {
		return content
	}

	sorted := make([]Change, len(changes))
	copy(sorted, changes)

	sort.SliceStable(sorted, func(i, j int) bool {
		lenI := sorted[i].End - sorted[i].Start
		lenJ := sorted[j].End - sorted[j].Start
		if lenI != lenJ {
			return lenI > lenJ
		}
		return sorted[i].Start < sorted[j].Start
	})

	var picked []Change
	for _, c := range sorted {
		if c.End < c.Start || int(c.End) > len(content) {
			continue
		}
		overlaps := false
		for _, p := range picked {
			if c.Start < p.End && p.Start < c.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			picked = append(picked, c)
		}
	}

	sort.Slice(picked, func(i, j int) bool {
		return picked[i].Start < picked[j].Start
	})

	var builder strings.Builder
	builder.Grow(len(content))
	lastPos := uint32(0)
	for _, c := range picked {
		builder.WriteString(content[lastPos:c.Start])
		builder.WriteString(c.Text)
		lastPos = c.End
	}
	builder.WriteString(content[lastPos:])

	return builder.String()
}

// QuoteJSString serializes s as a double-quoted literal valid in both JSON
// and JavaScript. Line and paragraph separators are escaped too.
func QuoteJSString(s string) string {
	// Marshaling a string cannot fail; invalid UTF-8 becomes U+FFFD.
	out, _ := json.Marshal(s)
	return string(out)
}
