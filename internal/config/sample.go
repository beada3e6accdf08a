package config

// SampleConfig returns a fully commented sample configuration file
func SampleConfig() string {
	return `# CodeSum configuration file
# Place this file at ./.codesum.yaml, ~/.codesum.yaml, or ~/.config/codesum/config.yaml
# Every value can also be set through CODESUM_* environment variables,
# e.g. CODESUM_API_ENDPOINT=http://example.com:8000

version: "1.0"

api:
  # Base URL of the code explanation service
  endpoint: "http://localhost:8000"
  # Request timeout (Go duration syntax, e.g. 30s, 2m)
  timeout: 60s
  # Maximum upload size in bytes
  max_file_size: 33554432
  # Query used when none is given on the command line.
  # Leave empty to let codesum build one from the file name.
  default_query: ""

output:
  # Default output format: json, markdown, terminal, html, csv
  default_format: "terminal"
  # Color mode: auto, always, never
  color_mode: "auto"
  # Verbose output by default
  verbose: false
  # Directory for saved output files (empty = current directory)
  save_dir: ""

watch:
  # Delay before resubmitting after a file change
  debounce: 500ms
  # Only changes matching this glob trigger a run (empty = every change)
  glob: ""

ui:
  # Interactive UI theme: default, dark, light
  theme: "default"
`
}

// MinimalSampleConfig returns a minimal sample configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"

api:
  endpoint: "http://localhost:8000"

output:
  default_format: "terminal"
`
}
