package main

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes a build failure. Every kind is fatal to the build.
type ErrorKind string

const (
	ReadError        ErrorKind = "ReadError"
	ResolutionError  ErrorKind = "ResolutionError"
	ParseSyntaxError ErrorKind = "ParseSyntaxError"
	TransformError   ErrorKind = "TransformError"
	WriteError       ErrorKind = "WriteError"
)

// Sentinels for errors.Is checks against a *BuildError of the same kind.
var (
	ErrRead        = errors.New(string(ReadError))
	ErrResolution  = errors.New(string(ResolutionError))
	ErrParseSyntax = errors.New(string(ParseSyntaxError))
	ErrTransform   = errors.New(string(TransformError))
	ErrWrite       = errors.New(string(WriteError))
)

var sentinelByKind = map[ErrorKind]error{
	ReadError:        ErrRead,
	ResolutionError:  ErrResolution,
	ParseSyntaxError: ErrParseSyntax,
	TransformError:   ErrTransform,
	WriteError:       ErrWrite,
}

// BuildError carries the module being processed and, when known, the import
// that led to it.
type BuildError struct {
	Kind      ErrorKind
	ID        string // offending module identity or output path
	Specifier string // raw import specifier
	Importer  string // identity of the importing module
	Line      int    // 1-based, 0 when unknown
	Column    int    // 1-based, 0 when unknown
	Detail    string
	Err       error
}

func (e *BuildError) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))
	if e.ID != "" {
		b.WriteString(": ")
		b.WriteString(e.ID)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
		}
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Specifier != "" {
		fmt.Fprintf(&b, " (import '%s'", e.Specifier)
		if e.Importer != "" {
			fmt.Fprintf(&b, " from %s", e.Importer)
		}
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func (e *BuildError) Is(target error) bool {
	return sentinelByKind[e.Kind] == target
}

func newBuildError(kind ErrorKind, id string, detail string, err error) *BuildError {
	return &BuildError{Kind: kind, ID: id, Detail: detail, Err: err}
}

// withImportContext annotates err with the edge that discovered the failing module.
// Context already present on the error is kept.
func withImportContext(err error, specifier, importer string) error {
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		return err
	}
	if buildErr.Specifier == "" {
		buildErr.Specifier = specifier
	}
	if buildErr.Importer == "" {
		buildErr.Importer = importer
	}
	return buildErr
}
