// Package config handles configuration loading from TOML (or YAML) files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/xonecas/splitpane/internal/highlight"
	"github.com/xonecas/splitpane/internal/split"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	UI      UIConfig      `toml:"ui" yaml:"ui"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Journal JournalConfig `toml:"journal" yaml:"journal"`
	Layout  *Node         `toml:"layout" yaml:"layout"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// Theme is the Chroma theme for pane highlighting. UI chrome colors are
	// derived from it.
	Theme string `toml:"theme" yaml:"theme"`
}

// ThemeOrDefault returns the configured theme or highlight.DefaultTheme.
func (u UIConfig) ThemeOrDefault() string {
	if u.Theme == "" {
		return highlight.DefaultTheme
	}
	return u.Theme
}

// LogConfig controls the zerolog file logger.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// JournalConfig controls gesture recording.
type JournalConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// Node describes a layout node: a leaf when First/Second are unset.
type Node struct {
	Axis   string   `toml:"axis" yaml:"axis"`
	// Ratio is the first region's starting percentage; nil means
	// split.DefaultRatio.
	Ratio  *float64 `toml:"ratio" yaml:"ratio"`
	Extent string   `toml:"extent" yaml:"extent"`
	Title  string   `toml:"title" yaml:"title"`
	File   string   `toml:"file" yaml:"file"`
	Text   string   `toml:"text" yaml:"text"`
	First  *Node    `toml:"first" yaml:"first"`
	Second *Node    `toml:"second" yaml:"second"`
}

// IsSplit reports whether the node has children.
func (n *Node) IsSplit() bool { return n.First != nil || n.Second != nil }

// RatioOrDefault returns the configured ratio or split.DefaultRatio.
func (n *Node) RatioOrDefault() float64 {
	if n.Ratio == nil {
		return split.DefaultRatio
	}
	return *n.Ratio
}

// ValidRatio reports whether r can start a split: above 0, at most 100.
func ValidRatio(r float64) bool { return r > 0 && r <= 100 }

// Default returns the built-in configuration: one even left/right split.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Layout: &Node{
			Axis:   "horizontal",
			Ratio:  ptr(split.DefaultRatio),
			First:  &Node{Title: "left", Text: "Drag the divider to resize."},
			Second: &Node{Title: "right", Text: "Press q to quit."},
		},
	}
}

// Load reads configuration from a file and applies environment overrides.
// An empty path yields the defaults. Files ending in .yaml/.yml are YAML,
// everything else is TOML.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		cfg.Layout = nil
		if err := decode(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if cfg.Layout == nil {
			cfg.Layout = Default().Layout
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, cfg)
	default:
		_, err := toml.DecodeFile(path, cfg)
		return err
	}
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid", c.Log.Level))
		}
	}
	if c.Layout == nil {
		errs = append(errs, errors.New("layout: a layout is required"))
	} else {
		errs = append(errs, validateNode("layout", c.Layout)...)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateNode(path string, n *Node) []error {
	var errs []error
	if !n.IsSplit() {
		if n.File != "" && n.Text != "" {
			errs = append(errs, fmt.Errorf("%s: file and text are mutually exclusive", path))
		}
		return errs
	}
	if n.First == nil || n.Second == nil {
		return append(errs, fmt.Errorf("%s: a split needs both first and second", path))
	}
	if n.File != "" || n.Text != "" {
		errs = append(errs, fmt.Errorf("%s: a split cannot have content", path))
	}
	if _, err := split.ParseAxis(n.Axis); err != nil {
		errs = append(errs, fmt.Errorf("%s.axis: %v", path, err))
	}
	if n.Ratio != nil && !ValidRatio(*n.Ratio) {
		errs = append(errs, fmt.Errorf("%s.ratio=%v must be greater than 0 and at most 100", path, *n.Ratio))
	}
	errs = append(errs, validateNode(path+".first", n.First)...)
	errs = append(errs, validateNode(path+".second", n.Second)...)
	return errs
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"SPLITPANE_THEME", func(v string) {
			if v != "" {
				cfg.UI.Theme = v
			}
		}},
		{"SPLITPANE_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the data directory (~/.config/splitpane).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "splitpane"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

func ptr[T any](v T) *T { return &v }
