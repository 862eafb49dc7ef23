package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type MinipackConfig struct {
	ConfigVersion string            `json:"configVersion" yaml:"configVersion"`
	Entry         string            `json:"entry,omitempty" yaml:"entry,omitempty"`
	Output        string            `json:"output,omitempty" yaml:"output,omitempty"`
	Alias         map[string]string `json:"alias,omitempty" yaml:"alias,omitempty"`       // Specifier prefix -> path relative to the config file
	External      []string          `json:"external,omitempty" yaml:"external,omitempty"` // Glob patterns of specifiers left to the host require
	Concurrency   int               `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`

	// Directory containing the config file; relative paths resolve against it.
	Dir string `json:"-" yaml:"-"`
}

type configFormat uint8

const (
	configFormatJSON configFormat = iota
	configFormatYAML
)

const supportedConfigVersion = "1.0"

// Looked up in this order when a directory is given.
var configFileNames = []string{
	"minipack.config.json",
	"minipack.config.jsonc",
	"minipack.config.yaml",
	"minipack.config.yml",
}

// FindConfig returns the first config file present in dir.
func FindConfig(dir string) (string, bool) {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// LoadConfig loads the minipack configuration. configPath can be a config
// file or a directory containing one.
func LoadConfig(configPath string) (*MinipackConfig, error) {
	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return nil, err
	}

	actualPath := configPath
	if fileInfo.IsDir() {
		found, ok := FindConfig(configPath)
		if !ok {
			return nil, fmt.Errorf("no config file found in '%s' (expected one of %s)", configPath, strings.Join(configFileNames, ", "))
		}
		actualPath = found
	}

	content, err := os.ReadFile(actualPath)
	if err != nil {
		return nil, err
	}

	config, err := ParseConfig(content, formatForConfigPath(actualPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", actualPath, err)
	}

	absPath, err := filepath.Abs(actualPath)
	if err != nil {
		return nil, err
	}
	config.Dir = filepath.Dir(absPath)
	return config, nil
}

func formatForConfigPath(path string) configFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// ParseConfig decodes and validates config content.
func ParseConfig(content []byte, format configFormat) (*MinipackConfig, error) {
	var config MinipackConfig
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(content, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(content), &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if config.ConfigVersion == "" {
		config.ConfigVersion = supportedConfigVersion
	}
	if config.ConfigVersion != supportedConfigVersion {
		return nil, fmt.Errorf("unsupported configVersion '%s' (supported: %s)", config.ConfigVersion, supportedConfigVersion)
	}
	if config.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must be >= 0, got %d", config.Concurrency)
	}
	for prefix, target := range config.Alias {
		if strings.TrimSuffix(prefix, "/") == "" {
			return nil, fmt.Errorf("alias: empty prefix")
		}
		if isRelativeSpecifier(prefix) {
			return nil, fmt.Errorf("alias['%s']: prefix must not be a relative path", prefix)
		}
		if target == "" {
			return nil, fmt.Errorf("alias['%s']: empty target", prefix)
		}
	}
	if _, err := CreateGlobMatchers(config.External); err != nil {
		return nil, fmt.Errorf("external: %w", err)
	}

	return &config, nil
}

// ApplyConfig merges a loaded config into opts. Values already set in opts
// (from flags) win.
func ApplyConfig(opts BuildOptions, config *MinipackConfig) BuildOptions {
	if config == nil {
		return opts
	}
	if opts.Entry == "" && config.Entry != "" {
		opts.Entry = resolveFromDir(config.Dir, filepath.FromSlash(config.Entry))
	}
	if opts.Output == "" && config.Output != "" {
		opts.Output = resolveFromDir(config.Dir, filepath.FromSlash(config.Output))
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = config.Concurrency
	}
	if len(config.Alias) > 0 {
		merged := make(map[string]string, len(config.Alias)+len(opts.Alias))
		for prefix, target := range config.Alias {
			merged[prefix] = target
		}
		for prefix, target := range opts.Alias {
			merged[prefix] = target
		}
		opts.Alias = merged
		opts.AliasRoot = config.Dir
	}
	opts.External = append(append([]string{}, config.External...), opts.External...)
	return opts
}
