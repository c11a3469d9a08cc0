// Package config loads the host-facing build configuration a Context is
// assembled from: which standard modules to install and under what
// options. It mirrors the shape of the teacher's own `funxy.yaml`/
// `ext.Config` (a plain YAML document unmarshaled with yaml.v3), scoped
// down to this runtime's own concerns.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuntimeConfig is the top-level document a host embedder writes to
// configure Context.WithConfig (spec.md Testable Property 5).
type RuntimeConfig struct {
	// Stdio installs the std::io module (print/println/dbg against a
	// capturable buffer) when true.
	Stdio bool `yaml:"stdio"`

	// Random installs the std::random module (int/int_range) when true.
	Random bool `yaml:"random"`

	// Bytes installs the std::bytes module (funbit-backed bit-pattern
	// views) when true.
	Bytes bool `yaml:"bytes"`

	// Introspect optionally starts the gRPC reflection debug service
	// (internal/introspect) over the resulting RuntimeContext once
	// installation finishes.
	Introspect *IntrospectConfig `yaml:"introspect,omitempty"`

	// MetaCachePath names a SQLite cache file for internal/metacache. It is
	// only carried in the config: Context.WithConfig does not read it, and
	// Install always runs in full.
	MetaCachePath string `yaml:"meta_cache_path,omitempty"`
}

// IntrospectConfig configures the optional debug-introspection service.
type IntrospectConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads and parses a RuntimeConfig from path.
func Load(path string) (*RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg RuntimeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the configuration a bare Context.WithConfig() call uses
// when no YAML file is supplied: every standard module installed, no
// introspection service, no persistent cache.
func Default() *RuntimeConfig {
	return &RuntimeConfig{Stdio: true, Random: true, Bytes: true}
}
