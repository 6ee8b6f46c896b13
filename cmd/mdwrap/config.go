package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".mdwrap.yaml"

var defaultInclude = []string{"docs/**/*.md"}

// fileConfig is the optional YAML configuration file. Flags override it.
type fileConfig struct {
	Width   int      `yaml:"width"`
	Tables  *bool    `yaml:"tables"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// loadConfig reads path, or root/.mdwrap.yaml when path is empty. A missing
// default file is not an error; a missing explicit file is.
func loadConfig(path, root string) (fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, defaultConfigName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return fileConfig{}.withDefaults(), nil
		}
		return fileConfig{}, fmt.Errorf("config: %w", err)
	}
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Width < 0 {
		return fileConfig{}, fmt.Errorf("config: %s: width must not be negative", path)
	}
	for _, pattern := range append(cfg.Include[:len(cfg.Include):len(cfg.Include)], cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fileConfig{}, fmt.Errorf("config: %s: bad pattern %q", path, pattern)
		}
	}
	return cfg.withDefaults(), nil
}

func (c fileConfig) withDefaults() fileConfig {
	if len(c.Include) == 0 {
		c.Include = defaultInclude
	}
	if c.Tables == nil {
		enabled := true
		c.Tables = &enabled
	}
	return c
}
