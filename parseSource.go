package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	tsxlang "github.com/smacker/go-tree-sitter/typescript/tsx"
	tslang "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// SourceParser turns module source into a syntax tree. Safe for concurrent
// use: every Parse call gets its own tree-sitter parser.
type SourceParser struct {
	js  *sitter.Language
	ts  *sitter.Language
	tsx *sitter.Language
}

func NewSourceParser() *SourceParser {
	return &SourceParser{
		js:  javascript.GetLanguage(),
		ts:  tslang.GetLanguage(),
		tsx: tsxlang.GetLanguage(),
	}
}

// Parse returns the syntax tree of content. A tree containing error or
// missing nodes is reported as a ParseSyntaxError at the first such node.
func (p *SourceParser) Parse(ctx context.Context, id string, content []byte) (*sitter.Tree, error) {
	lang, err := p.languageForPath(id)
	if err != nil {
		return nil, newBuildError(ParseSyntaxError, id, err.Error(), nil)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, newBuildError(ParseSyntaxError, id, "parser failed", err)
	}
	if tree == nil {
		return nil, newBuildError(ParseSyntaxError, id, "parser returned no tree", nil)
	}

	root := tree.RootNode()
	if root.HasError() {
		buildErr := newBuildError(ParseSyntaxError, id, "invalid syntax", nil)
		if bad := firstErrorNode(root); bad != nil {
			point := bad.StartPoint()
			buildErr.Line = int(point.Row) + 1
			buildErr.Column = int(point.Column) + 1
			if bad.IsMissing() {
				buildErr.Detail = fmt.Sprintf("missing %s", bad.Type())
			} else {
				buildErr.Detail = fmt.Sprintf("unexpected %s", describeErrorNode(bad, content))
			}
		}
		return nil, buildErr
	}
	return tree, nil
}

func (p *SourceParser) languageForPath(path string) (*sitter.Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".js", ".cjs", ".mjs", ".jsx":
		return p.js, nil
	case ".ts", ".mts", ".cts":
		return p.ts, nil
	case ".tsx":
		return p.tsx, nil
	default:
		return nil, fmt.Errorf("unsupported extension: '%s'", ext)
	}
}

// firstErrorNode walks all children, named or not, since missing tokens are
// usually anonymous.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func describeErrorNode(node *sitter.Node, content []byte) string {
	text := strings.TrimSpace(nodeText(node, content))
	if text == "" {
		return "end of input"
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return fmt.Sprintf("'%s'", text)
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return string(content[node.StartByte():node.EndByte()])
}
