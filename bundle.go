package main

import (
	"bytes"
	"strings"
	"text/template"
)

// The artifact is a single IIFE. The host `require`, when there is one, is
// passed in for external specifiers; inside, `require` is the registry loader.
// A cache entry is stored before its factory runs, so a circular require
// observes the in-progress exports instead of recursing. A factory that throws
// is evicted so the next require runs it again.
const bundleTemplate = `(function(hostRequire) {
  var modules = {
{{- range $i, $asset := .Assets}}{{if $i}},{{end}}
    {{jsString $asset.ID}}: function(module, exports, require) {
{{body $asset.Code}}    }
{{- end}}
  };
  var cache = {};
  function require(id) {
    if (Object.prototype.hasOwnProperty.call(cache, id)) {
      return cache[id].exports;
    }
    if (!Object.prototype.hasOwnProperty.call(modules, id)) {
      if (hostRequire) {
        return hostRequire(id);
      }
      throw new Error("Cannot find module " + JSON.stringify(id));
    }
    var module = { id: id, exports: {} };
    cache[id] = module;
    try {
      modules[id].call(module.exports, module, module.exports, require);
    } catch (e) {
      delete cache[id];
      throw e;
    }
    return module.exports;
  }
  return require({{jsString .Entry}});
})(typeof require === "function" ? require : null);
`

var bundleTmpl = template.Must(template.New("bundle").Funcs(template.FuncMap{
	"jsString": QuoteJSString,
	"body":     factoryBody,
}).Parse(bundleTemplate))

// factoryBody terminates code with a newline so a trailing line comment
// cannot swallow the factory's closing brace.
func factoryBody(code string) string {
	if code == "" || strings.HasSuffix(code, "\n") {
		return code
	}
	return code + "\n"
}

// GenerateBundle renders the artifact for graph. The registry follows
// graph.Assets order, so equal graphs render byte-identical artifacts.
func GenerateBundle(graph *ModuleGraph) (string, error) {
	var buf bytes.Buffer
	err := bundleTmpl.Execute(&buf, struct {
		Assets []*Asset
		Entry  string
	}{
		Assets: graph.Assets,
		Entry:  graph.Entry,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
