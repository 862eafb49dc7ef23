package main

import (
	"context"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func parseForTest(t *testing.T, name string, code string) []Import {
	t.Helper()
	content := []byte(code)
	tree, err := NewSourceParser().Parse(context.Background(), name, content)
	assert.NilError(t, err)
	return FindImports(tree, content)
}

func requests(imports []Import) []string {
	out := make([]string, 0, len(imports))
	for _, imp := range imports {
		out = append(out, imp.Request)
	}
	return out
}

func TestFindImports(t *testing.T) {
	t.Run("collects static imports and re-exports in source order", func(t *testing.T) {
		code := `import a from './a.js';
import { b, c as d } from "./b";
import * as e from './e';
import './side-effect.js';
export { f } from './f';
export * from './g';
export const local = 1;
const h = require('./not-an-import');
`
		imports := parseForTest(t, "index.js", code)
		assert.DeepEqual(t, requests(imports), []string{"./a.js", "./b", "./e", "./side-effect.js", "./f", "./g"})
	})

	t.Run("keeps duplicates from separate statements", func(t *testing.T) {
		code := `import x from './x'; import { y } from './x';`
		imports := parseForTest(t, "index.js", code)
		assert.DeepEqual(t, requests(imports), []string{"./x", "./x"})
	})

	t.Run("ignores imports inside strings and comments", func(t *testing.T) {
		code := "// import a from './commented'\nconst s = \"import b from './string'\";\nconst tpl = `import c from './template'`;\n/* import d from './block' */\nimport real from './real';\n"
		imports := parseForTest(t, "index.js", code)
		assert.DeepEqual(t, requests(imports), []string{"./real"})
	})

	t.Run("records byte range of the literal including quotes", func(t *testing.T) {
		code := `import a from './a.js';`
		imports := parseForTest(t, "index.js", code)
		assert.Equal(t, len(imports), 1)
		assert.Equal(t, code[imports[0].RequestStart:imports[0].RequestEnd], `'./a.js'`)
		assert.Equal(t, imports[0].Line, 1)
	})

	t.Run("reports the line of each import", func(t *testing.T) {
		code := "const x = 1;\n\nimport a from './a';\n"
		imports := parseForTest(t, "index.js", code)
		assert.Equal(t, imports[0].Line, 3)
	})

	t.Run("flags dynamic imports", func(t *testing.T) {
		code := `import a from './a'; async function load() { return import('./lazy'); }`
		imports := parseForTest(t, "index.js", code)
		assert.Equal(t, len(imports), 2)
		assert.Assert(t, !imports[0].IsDynamicImport)
		assert.Assert(t, imports[1].IsDynamicImport)
		assert.Equal(t, imports[1].Request, "./lazy")
	})

	t.Run("skips type-only imports in typescript", func(t *testing.T) {
		code := `import type { Props } from './types';
import { value } from './value';
export const x: Props = value;
`
		imports := parseForTest(t, "index.ts", code)
		assert.DeepEqual(t, requests(imports), []string{"./value"})
	})

	t.Run("collects typescript import equals require", func(t *testing.T) {
		code := `import b = require('./b');
import { c } from './c';
export default b.v + c;
`
		imports := parseForTest(t, "index.ts", code)
		assert.DeepEqual(t, requests(imports), []string{"./b", "./c"})
		assert.Equal(t, code[imports[0].RequestStart:imports[0].RequestEnd], `'./b'`)
		assert.Assert(t, !imports[0].IsDynamicImport)
	})

	t.Run("keeps empty specifiers", func(t *testing.T) {
		imports := parseForTest(t, "index.js", `import '';`)
		assert.DeepEqual(t, requests(imports), []string{""})
	})

	t.Run("parses tsx", func(t *testing.T) {
		code := `import View from './View';
export const App = () => <View title="x" />;
`
		imports := parseForTest(t, "App.tsx", code)
		assert.DeepEqual(t, requests(imports), []string{"./View"})
	})
}

func TestExtractStringLiteral(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		ok       bool
	}{
		{in: `'./a'`, expected: "./a", ok: true},
		{in: `"./b"`, expected: "./b", ok: true},
		{in: `'./it\'s'`, expected: "./it's", ok: true},
		{in: `''`, expected: "", ok: true},
		{in: `'./a"`, expected: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := extractStringLiteral(tt.in)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("extractStringLiteral(%s) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	_, err := NewSourceParser().Parse(context.Background(), "/app/bad.js", []byte("const ok = 1;\nconst = 2;\n"))
	assert.Assert(t, errors.Is(err, ErrParseSyntax), "got %v", err)

	var buildErr *BuildError
	assert.Assert(t, errors.As(err, &buildErr))
	assert.Equal(t, buildErr.ID, "/app/bad.js")
	assert.Equal(t, buildErr.Line, 2)
}

func TestParseRejectsUnsupportedExtension(t *testing.T) {
	_, err := NewSourceParser().Parse(context.Background(), "/app/style.css", []byte("a { color: red }"))
	assert.Assert(t, errors.Is(err, ErrParseSyntax))
	assert.ErrorContains(t, err, "unsupported extension")
}
