// Package config loads the tea command configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/vdparikh/tea"
	"github.com/vdparikh/tea/subtle"
)

// DefaultPath is the config file read when no --config flag is given.
const DefaultPath = ".tea.toml"

// Config selects the base key for the tea command. When Keyset is set it
// wins over BaseKey and Offset.
type Config struct {
	BaseKey string `toml:"base_key"`
	Offset  int    `toml:"offset"`
	Keyset  string `toml:"keyset"` // path to a cleartext JSON keyset
	Verbose bool   `toml:"verbose"`
}

// Default returns the configuration of tea.NewDefault.
func Default() *Config {
	return &Config{
		BaseKey: tea.DefaultBaseKey,
		Offset:  tea.DefaultOffset,
	}
}

// Load reads path over Default. A missing file at DefaultPath is not an
// error; a missing file anywhere else is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the base key and offset the same way tea.Cipher.Set does.
// It is skipped when a keyset is configured.
func (c *Config) Validate() error {
	if c.Keyset != "" {
		return nil
	}
	return subtle.Validate(c.BaseKey, c.Offset)
}
