// Package config loads runtime settings for the rewind binaries.
// Values come from an optional YAML file, then REWIND_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Library backends.
const (
	LibraryMemory = "memory"
	LibraryFile   = "file"
	LibraryRedis  = "redis"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REWIND_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the engine, library and server settings.
type Config struct {
	Capacity       int    `yaml:"capacity" mapstructure:"capacity"`
	UndoablesCount int    `yaml:"undoables_count" mapstructure:"undoables_count"`
	RecordEviction bool   `yaml:"record_eviction" mapstructure:"record_eviction"`
	LogLevel       string `yaml:"log_level" mapstructure:"log_level"`

	Library Library `yaml:"library" mapstructure:"library"`
	HTTP    HTTP    `yaml:"http" mapstructure:"http"`
	Metrics Metrics `yaml:"metrics" mapstructure:"metrics"`
}

// Library selects where book sources are read from.
type Library struct {
	Kind string `yaml:"kind" mapstructure:"kind"`

	// Path is the YAML document used by the file backend.
	Path string `yaml:"path" mapstructure:"path"`

	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`

	// EncryptionKey enables at-rest AES-256 encryption of texts (base64, 32 bytes).
	EncryptionKey string `yaml:"encryption_key" mapstructure:"encryption_key"`
	// FallbackKeys are older keys still accepted for reading.
	FallbackKeys []string `yaml:"fallback_keys" mapstructure:"fallback_keys"`
}

// HTTP configures the REST adapter.
type HTTP struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// Metrics configures the Prometheus endpoint served next to the REST adapter.
type Metrics struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Capacity: 100,
		LogLevel: "info",
		Library: Library{
			Kind:   LibraryMemory,
			Path:   ".rewind/library.yaml",
			Addr:   "localhost:6379",
			Prefix: "rewind:",
		},
		HTTP: HTTP{Addr: ":8080"},
		Metrics: Metrics{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// envKeys maps environment variables (without prefix) to nested config keys.
var envKeys = map[string][]string{
	"CAPACITY":               {"capacity"},
	"UNDOABLES_COUNT":        {"undoables_count"},
	"RECORD_EVICTION":        {"record_eviction"},
	"LOG_LEVEL":              {"log_level"},
	"LIBRARY_KIND":           {"library", "kind"},
	"LIBRARY_PATH":           {"library", "path"},
	"LIBRARY_ADDR":           {"library", "addr"},
	"LIBRARY_PASSWORD":       {"library", "password"},
	"LIBRARY_DB":             {"library", "db"},
	"LIBRARY_PREFIX":         {"library", "prefix"},
	"LIBRARY_ENCRYPTION_KEY": {"library", "encryption_key"},
	"HTTP_ADDR":              {"http", "addr"},
	"METRICS_ENABLED":        {"metrics", "enabled"},
	"METRICS_PATH":           {"metrics", "path"},
}

// Load reads path (if not empty) and applies environment overrides on top of Default.
// A missing file is an error only when path was given explicitly.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for env, keys := range envKeys {
		if v, ok := lookup(EnvPrefix + env); ok {
			set(raw, keys, v)
		}
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func set(m map[string]any, keys []string, v string) {
	for _, k := range keys[:len(keys)-1] {
		child, ok := m[k].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[k] = child
		}
		m = child
	}
	m[keys[len(keys)-1]] = v
}

// Validate rejects settings the engine or the wiring cannot honor.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.UndoablesCount < 0 {
		return fmt.Errorf("%w: undoables_count must not be negative", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Library.Kind) {
	case LibraryMemory, LibraryFile, LibraryRedis:
	default:
		return fmt.Errorf("%w: unknown library kind %q", ErrInvalidConfig, c.Library.Kind)
	}
	return nil
}
