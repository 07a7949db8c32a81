// Package config loads the colbox TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/colbox/layout"
)

const appName = "colbox"

type Config struct {
	Columns ColumnsConfig `toml:"columns"`
	Extract ExtractConfig `toml:"extract"`
	Render  RenderConfig  `toml:"render"`
	Log     LogConfig     `toml:"log"`
}

type ColumnsConfig struct {
	RowTolerance      float64 `toml:"row_tolerance"`
	SuppressImageText bool    `toml:"suppress_image_text"`
	MinLineChars      int     `toml:"min_line_chars"`
}

type ExtractConfig struct {
	Margin          float64 `toml:"margin"`
	MainWidthRatio  float64 `toml:"main_width_ratio"`
	MainAspectRatio float64 `toml:"main_aspect_ratio"`
}

type RenderConfig struct {
	Scale float64 `toml:"scale"`
}

type LogConfig struct {
	Level string `toml:"level"` // logrus level name
}

// NewDefaultConfig returns the configuration used when no file exists
func NewDefaultConfig() *Config {
	cols := layout.DefaultColumnConfig()
	ro := layout.DefaultReadingOrderConfig()
	return &Config{
		Columns: ColumnsConfig{
			RowTolerance:      cols.RowTolerance,
			SuppressImageText: cols.SuppressImageText,
			MinLineChars:      cols.MinLineChars,
		},
		Extract: ExtractConfig{
			Margin:          ro.Margin,
			MainWidthRatio:  ro.MainWidthRatio,
			MainAspectRatio: ro.MainAspectRatio,
		},
		Render: RenderConfig{
			Scale: 1.0,
		},
		Log: LogConfig{
			Level: "warning",
		},
	}
}

// DefaultPath returns the config file location under the XDG config home
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// LoadConfigFromFile reads path over the defaults. A missing file yields
// the defaults; unknown keys are an error.
func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	meta, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Load reads the config file at path, or at DefaultPath when path is empty
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	return LoadConfigFromFile(path)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch {
	case c.Columns.RowTolerance < 0:
		return fmt.Errorf("columns.row_tolerance must not be negative, got %g", c.Columns.RowTolerance)
	case c.Columns.MinLineChars < 0:
		return fmt.Errorf("columns.min_line_chars must not be negative, got %d", c.Columns.MinLineChars)
	case c.Extract.Margin < 0:
		return fmt.Errorf("extract.margin must not be negative, got %g", c.Extract.Margin)
	case c.Extract.MainWidthRatio <= 0:
		return fmt.Errorf("extract.main_width_ratio must be positive, got %g", c.Extract.MainWidthRatio)
	case c.Extract.MainAspectRatio <= 0:
		return fmt.Errorf("extract.main_aspect_ratio must be positive, got %g", c.Extract.MainAspectRatio)
	case c.Render.Scale <= 0:
		return fmt.Errorf("render.scale must be positive, got %g", c.Render.Scale)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.WarnLevel, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// ColumnConfig returns the column builder settings
func (c *Config) ColumnConfig() layout.ColumnConfig {
	cfg := layout.DefaultColumnConfig()
	cfg.RowTolerance = c.Columns.RowTolerance
	cfg.SuppressImageText = c.Columns.SuppressImageText
	cfg.MinLineChars = c.Columns.MinLineChars
	return cfg
}

// ReadingOrderConfig returns the reading order settings
func (c *Config) ReadingOrderConfig() layout.ReadingOrderConfig {
	return layout.ReadingOrderConfig{
		Margin:          c.Extract.Margin,
		MainWidthRatio:  c.Extract.MainWidthRatio,
		MainAspectRatio: c.Extract.MainAspectRatio,
	}
}
