package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gobwas/glob"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	API     APIConfig    `yaml:"api" json:"api"`
	Output  OutputConfig `yaml:"output" json:"output"`
	Watch   WatchConfig  `yaml:"watch" json:"watch"`
	UI      UIConfig     `yaml:"ui" json:"ui"`
}

// APIConfig configures the explanation service connection
type APIConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint"`           // service base URL
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`             // request timeout
	MaxFileSize  int64         `yaml:"max_file_size" json:"max_file_size"` // upload size limit in bytes
	DefaultQuery string        `yaml:"default_query" json:"default_query"` // query used when none is given
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|markdown|terminal|html|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	SaveDir       string `yaml:"save_dir" json:"save_dir"`             // default directory for saved output
}

// WatchConfig configures watch mode behavior
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" json:"debounce"` // delay before resubmitting after a change
	Glob     string        `yaml:"glob" json:"glob"`         // pattern limiting which files trigger a run
}

// UIConfig configures the interactive terminal UI
type UIConfig struct {
	Theme string `yaml:"theme" json:"theme"` // default|dark|light
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			Endpoint:     "http://localhost:8000",
			Timeout:      60 * time.Second,
			MaxFileSize:  32 << 20, // 32MB
			DefaultQuery: "",
		},
		Output: OutputConfig{
			DefaultFormat: "terminal",
			ColorMode:     "auto",
			Verbose:       false,
			SaveDir:       "",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
			Glob:     "",
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAPIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateWatchConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	return nil
}

// validateAPIConfig validates service connection configuration
func (c *Config) validateAPIConfig() error {
	if c.API.Endpoint != "" {
		parsed, err := url.Parse(c.API.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint URL: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("endpoint must use http or https, got %q", c.API.Endpoint)
		}
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if c.API.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"markdown": true,
			"terminal": true,
			"html":     true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, markdown, terminal, html, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateWatchConfig validates watch mode configuration
func (c *Config) validateWatchConfig() error {
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("debounce must be non-negative")
	}
	if c.Watch.Glob != "" {
		if _, err := glob.Compile(c.Watch.Glob); err != nil {
			return fmt.Errorf("invalid watch glob %q: %w", c.Watch.Glob, err)
		}
	}
	return nil
}

// validateUIConfig validates terminal UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default": true,
			"dark":    true,
			"light":   true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, dark, light)", c.UI.Theme)
		}
	}
	return nil
}
