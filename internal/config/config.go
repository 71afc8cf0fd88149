// Package config loads discovery defaults from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/repofind/internal/pathfilter"
	"github.com/taigrr/repofind/internal/types"
)

// DefaultFile is read when no explicit config path is given.
const DefaultFile = ".repofind.yaml"

// Config holds discovery settings.
type Config struct {
	Ignore      []string `yaml:"ignore"`
	Filter      []string `yaml:"filter"`
	MaxDepth    int      `yaml:"maxDepth"`
	Concurrency int      `yaml:"concurrency"`
	LogLevel    string   `yaml:"logLevel"`

	// Dropped counts patterns rejected by sanitization while loading.
	Dropped int `yaml:"-"`
}

// Load reads configuration from a YAML file.
// If path is empty, it tries DefaultFile and returns defaults when that is
// missing. An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %s - %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data on top of the defaults. Unknown keys are
// rejected and pattern lists are sanitized.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if cfg.MaxDepth < -1 {
		return nil, fmt.Errorf("maxDepth must be -1 or greater, got %d", cfg.MaxDepth)
	}
	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}

	ignore := pathfilter.Sanitize(cfg.Ignore)
	filter := pathfilter.Sanitize(cfg.Filter)
	cfg.Dropped = len(cfg.Ignore) - len(ignore) + len(cfg.Filter) - len(filter)
	cfg.Ignore, cfg.Filter = ignore, filter

	return cfg, nil
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		MaxDepth: types.DefaultMaxDepth,
		LogLevel: "info",
	}
}

// Params builds a discovery request for path from the configuration.
func (c *Config) Params(path string) types.FindParams {
	return types.FindParams{
		Path:     path,
		Ignore:   c.Ignore,
		Filter:   c.Filter,
		MaxDepth: c.MaxDepth,
	}
}
