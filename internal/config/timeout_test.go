package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTimeoutConfigDefaults(t *testing.T) {
	config := DefaultConfig()

	// Test that timeout defaults are set correctly
	if config.API.Timeout != 60*time.Second {
		t.Errorf("Expected API timeout to be 60s, got %v", config.API.Timeout)
	}

	if config.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected watch debounce to be 500ms, got %v", config.Watch.Debounce)
	}
}

func TestTimeoutFromYAML(t *testing.T) {
	// Durations are written in Go duration syntax and decoded from the file
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "timeouts.yaml")

	configContent := `api:
  timeout: 2m
watch:
  debounce: 1500ms
`

	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.API.Timeout != 2*time.Minute {
		t.Errorf("Expected API timeout 2m, got %v", cfg.API.Timeout)
	}

	if cfg.Watch.Debounce != 1500*time.Millisecond {
		t.Errorf("Expected watch debounce 1500ms, got %v", cfg.Watch.Debounce)
	}
}

func TestTimeoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid timeouts",
			config: &Config{
				API: APIConfig{
					Timeout: 30 * time.Second,
				},
				Watch: WatchConfig{
					Debounce: 500 * time.Millisecond,
				},
			},
			wantErr: false,
		},
		{
			name: "negative request timeout",
			config: &Config{
				API: APIConfig{
					Timeout: -1 * time.Second,
				},
			},
			wantErr: true,
			errMsg:  "timeout must be non-negative",
		},
		{
			name: "negative debounce",
			config: &Config{
				Watch: WatchConfig{
					Debounce: -1 * time.Second,
				},
			},
			wantErr: true,
			errMsg:  "debounce must be non-negative",
		},
		{
			name: "zero timeouts are allowed",
			config: &Config{
				API:   APIConfig{Timeout: 0},
				Watch: WatchConfig{Debounce: 0},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Expected error message '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		})
	}
}
