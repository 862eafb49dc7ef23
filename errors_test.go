package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"gotest.tools/v3/assert"
)

func TestBuildErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *BuildError
		expected string
	}{
		{
			name:     "kind only",
			err:      &BuildError{Kind: ReadError, Detail: "no entry file given"},
			expected: "ReadError: no entry file given",
		},
		{
			name:     "with position",
			err:      &BuildError{Kind: ParseSyntaxError, ID: "/app/a.js", Line: 3, Column: 7, Detail: "unexpected ';'"},
			expected: "ParseSyntaxError: /app/a.js:3:7: unexpected ';'",
		},
		{
			name:     "with import context",
			err:      &BuildError{Kind: ResolutionError, ID: "/app/c.js", Specifier: "./c", Importer: "/app/b.js", Detail: "no such file"},
			expected: "ResolutionError: /app/c.js: no such file (import './c' from /app/b.js)",
		},
		{
			name:     "with cause",
			err:      &BuildError{Kind: ReadError, ID: "/app/a.js", Detail: "cannot read module", Err: fs.ErrPermission},
			expected: "ReadError: /app/a.js: cannot read module: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.err.Error(), tt.expected)
		})
	}
}

func TestBuildErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newBuildError(TransformError, "/app/a.js", "bad", fs.ErrInvalid))

	assert.Assert(t, errors.Is(err, ErrTransform))
	assert.Assert(t, !errors.Is(err, ErrParseSyntax))
	assert.Assert(t, errors.Is(err, fs.ErrInvalid))

	var buildErr *BuildError
	assert.Assert(t, errors.As(err, &buildErr))
	assert.Equal(t, buildErr.Kind, TransformError)
}

func TestWithImportContext(t *testing.T) {
	t.Run("Should fill missing context", func(t *testing.T) {
		err := withImportContext(newBuildError(ReadError, "/app/b.js", "cannot read module", nil), "./b", "/app/a.js")

		var buildErr *BuildError
		assert.Assert(t, errors.As(err, &buildErr))
		assert.Equal(t, buildErr.Specifier, "./b")
		assert.Equal(t, buildErr.Importer, "/app/a.js")
	})

	t.Run("Should keep existing context", func(t *testing.T) {
		original := &BuildError{Kind: ResolutionError, Specifier: "react", Importer: "/app/b.js"}
		err := withImportContext(original, "./b", "/app/a.js")

		var buildErr *BuildError
		assert.Assert(t, errors.As(err, &buildErr))
		assert.Equal(t, buildErr.Specifier, "react")
		assert.Equal(t, buildErr.Importer, "/app/b.js")
	})

	t.Run("Should pass through other errors", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Equal(t, withImportContext(plain, "./b", "/app/a.js"), plain)
	})
}
