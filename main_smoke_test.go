package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

// runCLI executes the root command. Flag variables are package globals and
// keep their values between executions, so they are reset first.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	verbose, quiet = false, false
	buildCwd, buildConfigPath = currentDir, ""
	buildExternal, buildConcurrency = []string{}, 0
	bundleOutput, graphJSON = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"-q"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLIBundle(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/index.js": "import { b } from './b';\nexport default b;\n",
		"src/b.js":     "export const b = 'b';\n",
	})

	out, err := runCLI(t, "bundle", "src/index.js", "--cwd", root, "-o", "out/bundle.js")
	assert.NilError(t, err)
	assert.Equal(t, out, "✔ Bundled 2 modules into out/bundle.js\n")

	_, err = os.Stat(filepath.Join(root, "out", "bundle.js"))
	assert.NilError(t, err)
}

func TestCLIBundleUsesConfigFile(t *testing.T) {
	root := writeProject(t, map[string]string{
		"minipack.config.json": `{
  // entry and output are relative to this file
  "configVersion": "1.0",
  "entry": "src/main.js",
  "output": "build/app.js",
  "external": ["path"],
}`,
		"src/main.js": "import path from 'path';\nexport default path;\n",
	})

	out, err := runCLI(t, "bundle", "--cwd", root)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out, "1 module into build/app.js"), out)
}

func TestCLIGraphJSON(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.js": "import './b.js';\nimport fs from 'fs';\n",
		"b.js": "export {};\n",
	})

	out, err := runCLI(t, "graph", "a.js", "--cwd", root, "--json", "--external", "fs")
	assert.NilError(t, err)

	var nodes []SerializableNode
	assert.NilError(t, json.Unmarshal([]byte(out), &nodes))
	assert.Equal(t, len(nodes), 2)
	assert.Equal(t, nodes[0].Path, moduleID(t, root, "a.js"))
	assert.Assert(t, nodes[0].Entry)
	assert.DeepEqual(t, nodes[0].Imports, []ResolvedImport{
		{Request: "./b.js", ID: moduleID(t, root, "b.js")},
		{Request: "fs", ID: "fs", External: true},
	})
	assert.Equal(t, nodes[1].Path, moduleID(t, root, "b.js"))

	_, statErr := os.Stat(filepath.Join(root, "dist"))
	assert.Assert(t, os.IsNotExist(statErr))
}

func TestCLIGraphText(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.js": "import './b.js';\n",
		"b.js": "export {};\n",
	})

	out, err := runCLI(t, "graph", "a.js", "--cwd", root)
	assert.NilError(t, err)
	assert.Equal(t, out, "a.js (2 modules):\n\na.js (entry)\n ➞ ./b.js b.js\nb.js\n")
}

func TestCLICircular(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.js": "import './b.js';\n",
		"b.js": "import './a.js';\n",
	})

	out, err := runCLI(t, "circular", "a.js", "--cwd", root)
	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(out, "Found 1 circular dependency:"), out)
	assert.Assert(t, strings.Contains(out, "b.js ('./b.js')"), out)
}

func TestCLIMissingEntry(t *testing.T) {
	root := t.TempDir()

	_, err := runCLI(t, "bundle", "--cwd", root)
	assert.ErrorContains(t, err, "no entry file")
}
