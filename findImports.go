package main

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Import is one static dependency edge found in a module's syntax tree.
// RequestStart and RequestEnd delimit the string literal, quotes included, so
// the literal can be replaced in place.
type Import struct {
	Request         string `json:"request"`
	RequestStart    uint32 `json:"requestStart"`
	RequestEnd      uint32 `json:"requestEnd"`
	Line            int    `json:"line"`
	IsDynamicImport bool   `json:"-"` // true for `import('...')`
}

// FindImports lists import and re-export declarations in source order,
// including TypeScript `import x = require("...")`.
// Type-only declarations are skipped because the transform erases them.
func FindImports(tree *sitter.Tree, content []byte) []Import {
	imports := make([]Import, 0)
	walkNode(tree.RootNode(), func(node *sitter.Node) {
		switch node.Type() {
		case "import_statement", "export_statement":
			if isTypeOnlyDeclaration(node) {
				return
			}
			source := node.ChildByFieldName("source")
			if source == nil {
				source = requireClauseSource(node)
			}
			if imp, ok := importFromSource(source, content); ok {
				imports = append(imports, imp)
			}
		case "call_expression":
			function := node.ChildByFieldName("function")
			if function == nil || function.Type() != "import" {
				return
			}
			imp := Import{
				Line:            int(node.StartPoint().Row) + 1,
				IsDynamicImport: true,
			}
			if args := node.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
				if literal, ok := importFromSource(args.NamedChild(0), content); ok {
					imp = literal
					imp.IsDynamicImport = true
				}
			}
			imports = append(imports, imp)
		}
	})
	return imports
}

func walkNode(node *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		visit(child)
		walkNode(child, visit)
	}
}

func importFromSource(source *sitter.Node, content []byte) (Import, bool) {
	if source == nil || source.Type() != "string" {
		return Import{}, false
	}
	request, ok := extractStringLiteral(nodeText(source, content))
	if !ok {
		return Import{}, false
	}
	return Import{
		Request:      request,
		RequestStart: source.StartByte(),
		RequestEnd:   source.EndByte(),
		Line:         int(source.StartPoint().Row) + 1,
	}, true
}

// requireClauseSource returns the string literal of a TypeScript
// `import x = require("...")` declaration.
func requireClauseSource(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		clause := node.NamedChild(i)
		if clause.Type() != "import_require_clause" {
			continue
		}
		if source := clause.ChildByFieldName("source"); source != nil {
			return source
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			if child := clause.NamedChild(j); child.Type() == "string" {
				return child
			}
		}
	}
	return nil
}

// isTypeOnlyDeclaration reports `import type ...` and `export type ... from`.
func isTypeOnlyDeclaration(node *sitter.Node) bool {
	if node.ChildCount() < 2 {
		return false
	}
	second := node.Child(1)
	return !second.IsNamed() && (second.Type() == "type" || second.Type() == "typeof")
}

func extractStringLiteral(text string) (string, bool) {
	if len(text) < 2 {
		return "", false
	}
	quote := text[0]
	if (quote != '"' && quote != '\'') || text[len(text)-1] != quote {
		return "", false
	}
	body := text[1 : len(text)-1]
	if !strings.Contains(body, `\`) {
		return body, true
	}
	// Escapes in specifiers are rare; Go's double-quoted syntax covers the
	// common JS escapes once the quote style is normalized.
	unquoted, err := strconv.Unquote(`"` + strings.ReplaceAll(body, `\'`, `'`) + `"`)
	if err != nil {
		return body, true
	}
	return unquoted, true
}
