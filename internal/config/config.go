package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/testreg/internal/schema"
)

// Load reads and parses a manifest.yaml configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse manifest file: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults reads a manifest file and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadAndValidate reads a manifest file, validates it against the embedded
// JSON schema, applies defaults, runs semantic validation, and returns
// warnings for non-fatal issues (currently: unknown keys).
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	// The generic document is used both for schema validation and for
	// unknown-key detection; the typed decode silently drops unknowns.
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest file: %w", err)
	}

	if err := schema.ValidateManifest(doc); err != nil {
		return nil, nil, err
	}

	warnings := unknownKeyWarnings(doc)

	cfg, err := parse(data)
	if err != nil {
		return nil, warnings, err
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, warnings, err
	}

	return cfg, warnings, nil
}
