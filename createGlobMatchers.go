package main

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// GlobMatcher matches import specifiers against one `external` pattern.
type GlobMatcher struct {
	globPattern glob.Glob
	inputString string
	// Plain names without wildcards also match their subpaths, so "lodash"
	// covers "lodash/fp".
	shouldMatchSubpaths bool
}

// CreateGlobMatchers compiles external specifier patterns. Separators are '/'
// so that '*' stays within one path segment and '**' crosses segments.
func CreateGlobMatchers(patterns []string) ([]GlobMatcher, error) {
	globMatchers := make([]GlobMatcher, 0, len(patterns))
	for _, pattern := range patterns {
		patternNorm := strings.TrimSpace(pattern)
		if patternNorm == "" {
			return nil, fmt.Errorf("empty external pattern")
		}
		compiled, err := glob.Compile(patternNorm, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid external pattern '%s': %w", pattern, err)
		}
		globMatchers = append(globMatchers, GlobMatcher{
			globPattern:         compiled,
			inputString:         patternNorm,
			shouldMatchSubpaths: !strings.ContainsAny(patternNorm, "*?[{"),
		})
	}
	return globMatchers, nil
}

func MatchesAnyGlobMatcher(specifier string, matchers []GlobMatcher) bool {
	for _, matcher := range matchers {
		if matcher.globPattern.Match(specifier) {
			return true
		}
		if matcher.shouldMatchSubpaths && strings.HasPrefix(specifier, matcher.inputString+"/") {
			return true
		}
	}
	return false
}
