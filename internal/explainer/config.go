package explainer

import (
	"time"
)

// Config holds client configuration for the code-explainer service
type Config struct {
	// Endpoint is the base URL of the service host
	Endpoint string `json:"endpoint"`

	// Timeout for the HTTP request
	Timeout time.Duration `json:"timeout"`

	// MaxFileSize caps the uploaded file size in bytes (0 = unlimited)
	MaxFileSize int64 `json:"max_file_size"`
}

// DefaultConfig returns a default client configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint:    "http://localhost:8000",
		Timeout:     60 * time.Second,
		MaxFileSize: 32 << 20,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return NewConfigurationError("endpoint", "endpoint is required")
	}

	if c.Timeout <= 0 {
		return NewConfigurationError("timeout", "timeout must be positive")
	}

	if c.MaxFileSize < 0 {
		return NewConfigurationError("max_file_size", "max file size cannot be negative")
	}

	return nil
}
