// Package config loads and validates the YAML configuration document:
// global settings and per-entity overrides.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for documents that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

//go:embed schema.json
var schemaDoc []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaDoc))
		if err != nil {
			schemaErr = fmt.Errorf("failed to unmarshal schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("config.json", doc); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile("config.json")
	})
	return schema, schemaErr
}

// Loader reads the configuration file
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(path string, logger *zap.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Load reads and validates the configuration file. A missing file yields an
// empty configuration with default settings.
func (l *Loader) Load() (*Config, error) {
	l.logger.Info("Loading configuration", zap.String("path", l.path))

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Configuration file not found, using defaults", zap.String("path", l.path))
		return &Config{Entities: map[string]EntityConfig{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	l.logger.Info("Configuration loaded", zap.Int("entities", len(cfg.Entities)))
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Entities == nil {
		cfg.Entities = map[string]EntityConfig{}
	}

	if errs := cfg.validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return cfg, nil
}

// validateSchema checks the decoded YAML tree. The tree is round-tripped
// through JSON so numbers reach the validator as float64.
func validateSchema(raw any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
