// Package configloader resolves the formatting configuration for a
// run. It searches upward from the working directory for a project
// config file, honors an explicit --config path, and validates the
// result. Both TOML (the primary format) and YAML variants are
// supported.
package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/luafmt/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is the directory the upward search starts from.
	// Defaults to the process working directory.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// When set, project discovery is skipped and a missing or broken
	// file is an error rather than a fallback to defaults.
	ExplicitPath string
}

// LoadResult is the resolved configuration plus provenance.
type LoadResult struct {
	// Config is the final validated configuration.
	Config config.Config

	// LoadedFrom is the file the config came from, or empty when the
	// defaults were used.
	LoadedFrom string
}

// Load resolves the configuration for one run. The result is
// constructed once, before any job is dispatched, and shared read-only
// afterwards.
func Load(opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	if opts.ExplicitPath != "" {
		cfg, err := loadConfigFile(opts.ExplicitPath)
		if err != nil {
			return nil, err
		}
		return &LoadResult{Config: cfg, LoadedFrom: opts.ExplicitPath}, nil
	}

	path, err := FindProjectConfig(workDir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &LoadResult{Config: config.NewConfig()}, nil
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Config: cfg, LoadedFrom: path}, nil
}

// loadConfigFile parses one config file on top of the defaults and
// validates the result.
func loadConfigFile(path string) (config.Config, error) {
	cfg := config.NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
