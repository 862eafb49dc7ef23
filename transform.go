package main

import (
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// transformPreset is the fixed lowering configuration applied to every module:
// ES modules become CommonJS `require`/`module.exports`, syntax is lowered to ES2015.
var transformPreset = api.TransformOptions{
	Format:   api.FormatCommonJS,
	Target:   api.ES2015,
	LogLevel: api.LogLevelSilent,
}

func loaderForPath(path string) api.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx":
		return api.LoaderJSX
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	default:
		return api.LoaderJS
	}
}

// TransformModule lowers rewritten module source to executable CommonJS text.
func TransformModule(id string, source string) (string, error) {
	options := transformPreset
	options.Loader = loaderForPath(id)
	options.Sourcefile = id

	result := api.Transform(source, options)
	if len(result.Errors) > 0 {
		first := result.Errors[0]
		buildErr := newBuildError(TransformError, id, first.Text, nil)
		if first.Location != nil {
			buildErr.Line = first.Location.Line
			buildErr.Column = first.Location.Column + 1
		}
		if len(result.Errors) > 1 {
			buildErr.Detail += " (and " + pluralize(len(result.Errors)-1, "more error", "more errors") + ")"
		}
		return "", buildErr
	}
	return string(result.Code), nil
}
