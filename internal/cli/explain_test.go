package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/CodeSum/internal/config"
)

func TestShouldUseTUIMode(t *testing.T) {
	tests := []struct {
		name           string
		noTUI          bool
		outputFormat   string
		verbose        bool
		outputFile     string
		save           bool
		expectedResult bool
	}{
		{
			name:           "should use TUI - all conditions met",
			noTUI:          false,
			outputFormat:   "terminal",
			verbose:        false,
			expectedResult: true,
		},
		{
			name:           "text alias also uses TUI",
			noTUI:          false,
			outputFormat:   "text",
			verbose:        false,
			expectedResult: true,
		},
		{
			name:           "should not use TUI - no-tui flag set",
			noTUI:          true,
			outputFormat:   "terminal",
			verbose:        false,
			expectedResult: false,
		},
		{
			name:           "should not use TUI - json output",
			noTUI:          false,
			outputFormat:   "json",
			verbose:        false,
			expectedResult: false,
		},
		{
			name:           "should not use TUI - verbose mode",
			noTUI:          false,
			outputFormat:   "terminal",
			verbose:        true,
			expectedResult: false,
		},
		{
			name:           "should not use TUI - output file requested",
			noTUI:          false,
			outputFormat:   "terminal",
			outputFile:     "out.txt",
			expectedResult: false,
		},
		{
			name:           "should not use TUI - save requested",
			noTUI:          false,
			outputFormat:   "terminal",
			save:           true,
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set up test environment
			oldNoTUI := explainNoTUI
			oldVerbose := verbose
			oldOutputFmt := outputFmt
			oldOutputFile := explainOutputFile
			oldSave := explainSave

			explainNoTUI = tt.noTUI
			verbose = tt.verbose
			outputFmt = tt.outputFormat
			explainOutputFile = tt.outputFile
			explainSave = tt.save

			defer func() {
				explainNoTUI = oldNoTUI
				verbose = oldVerbose
				outputFmt = oldOutputFmt
				explainOutputFile = oldOutputFile
				explainSave = oldSave
			}()

			result := shouldUseTUIMode()
			if result != tt.expectedResult {
				t.Errorf("shouldUseTUIMode() = %v, want %v", result, tt.expectedResult)
			}
		})
	}
}

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		expectError bool
	}{
		{name: "terminal format", format: "terminal", expectError: false},
		{name: "text alias", format: "text", expectError: false},
		{name: "empty defaults to terminal", format: "", expectError: false},
		{name: "json format", format: "json", expectError: false},
		{name: "markdown format", format: "markdown", expectError: false},
		{name: "md alias", format: "md", expectError: false},
		{name: "csv format", format: "csv", expectError: false},
		{name: "html format", format: "html", expectError: false},
		{name: "unsupported format", format: "xml", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := getFormatter(tt.format, false)

			if tt.expectError {
				if err == nil {
					t.Errorf("getFormatter(%q) expected error, got nil", tt.format)
				}
				return
			}
			if err != nil {
				t.Errorf("getFormatter(%q) unexpected error: %v", tt.format, err)
			}
			if f == nil {
				t.Errorf("getFormatter(%q) returned nil formatter", tt.format)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "source.go")
	if err := os.WriteFile(file, []byte("package main\n"), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tests := []struct {
		name        string
		path        string
		expectError bool
		errContains string
	}{
		{name: "existing file", path: file, expectError: false},
		{name: "empty path", path: "", expectError: true, errContains: "empty file path"},
		{name: "missing file", path: filepath.Join(dir, "missing.go"), expectError: true, errContains: "does not exist"},
		{name: "directory", path: dir, expectError: true, errContains: "directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.path)

			if !tt.expectError {
				if err != nil {
					t.Errorf("validateFilePath(%q) unexpected error: %v", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Errorf("validateFilePath(%q) expected error, got nil", tt.path)
				return
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("validateFilePath(%q) error = %v, want containing %q", tt.path, err, tt.errContains)
			}
		})
	}
}

func TestReadSourceFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "handler.py")
	content := []byte("def handle():\n    pass\n")
	if err := os.WriteFile(file, content, 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	path, data, err := readSourceFile(file)
	if err != nil {
		t.Fatalf("readSourceFile() unexpected error: %v", err)
	}
	if path != filepath.Clean(file) {
		t.Errorf("readSourceFile() path = %q, want %q", path, filepath.Clean(file))
	}
	if string(data) != string(content) {
		t.Errorf("readSourceFile() data = %q, want %q", data, content)
	}

	if _, _, err := readSourceFile(filepath.Join(dir, "missing.py")); err == nil {
		t.Error("readSourceFile() expected error for missing file, got nil")
	}
}

func TestResolveQuery(t *testing.T) {
	tests := []struct {
		name       string
		flagQuery  string
		configured string
		path       string
		want       string
		generated  bool
	}{
		{
			name:      "flag wins",
			flagQuery: "how does retry work",
			want:      "how does retry work",
		},
		{
			name:       "configured default when no flag",
			configured: "summarize this file",
			want:       "summarize this file",
		},
		{
			name:      "generated when nothing is set",
			path:      "server.go",
			generated: true,
		},
		{
			name:      "blank flag falls through",
			flagQuery: "   ",
			path:      "server.go",
			generated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldQuery := explainQuery
			explainQuery = tt.flagQuery
			defer func() { explainQuery = oldQuery }()

			got := resolveQuery(tt.configured, tt.path)

			if tt.generated {
				if !strings.Contains(got, "server.go") {
					t.Errorf("resolveQuery() = %q, want generated query naming the file", got)
				}
				if !strings.Contains(got, "Go") {
					t.Errorf("resolveQuery() = %q, want generated query naming the language", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("resolveQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatExtension(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: "json"},
		{format: "markdown", want: "md"},
		{format: "md", want: "md"},
		{format: "csv", want: "csv"},
		{format: "html", want: "html"},
		{format: "terminal", want: "txt"},
		{format: "", want: "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := formatExtension(tt.format); got != tt.want {
				t.Errorf("formatExtension(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestSavePath(t *testing.T) {
	oldConfig := globalConfig
	oldOutputFmt := outputFmt

	globalConfig = config.DefaultConfig()
	globalConfig.Output.SaveDir = filepath.Join("out", "explanations")
	outputFmt = "json"

	defer func() {
		globalConfig = oldConfig
		outputFmt = oldOutputFmt
	}()

	got := savePath(filepath.Join("src", "handler.go"))
	want := filepath.Join("out", "explanations", "handler.explanation.json")
	if got != want {
		t.Errorf("savePath() = %q, want %q", got, want)
	}

	// Without a configured directory the file lands next to the caller
	globalConfig.Output.SaveDir = ""
	got = savePath("handler.go")
	want = "handler.explanation.json"
	if got != want {
		t.Errorf("savePath() = %q, want %q", got, want)
	}
}

func TestWriteOutputToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "result.json")
	content := []byte(`{"ok":true}`)

	if err := writeOutputToFile(content, target); err != nil {
		t.Fatalf("writeOutputToFile() unexpected error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("written content = %q, want %q", data, content)
	}
}

func TestHandleOutputDestinationToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "explanation.md")

	oldOutputFile := explainOutputFile
	oldSave := explainSave
	explainOutputFile = target
	explainSave = false

	defer func() {
		explainOutputFile = oldOutputFile
		explainSave = oldSave
	}()

	if err := handleOutputDestination([]byte("# Explanation\n"), "handler.go"); err != nil {
		t.Fatalf("handleOutputDestination() unexpected error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if string(data) != "# Explanation\n" {
		t.Errorf("output file content = %q, want %q", data, "# Explanation\n")
	}
}

func TestHandleOutputDestinationToStdout(t *testing.T) {
	oldOutputFile := explainOutputFile
	oldSave := explainSave
	explainOutputFile = ""
	explainSave = false

	defer func() {
		explainOutputFile = oldOutputFile
		explainSave = oldSave
	}()

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	if err := handleOutputDestination([]byte("plain output\n"), "handler.go"); err != nil {
		t.Fatalf("handleOutputDestination() unexpected error: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("failed to close pipe writer: %v", err)
	}
	output := make([]byte, 1000)
	n, _ := r.Read(output)

	if string(output[:n]) != "plain output\n" {
		t.Errorf("stdout = %q, want %q", output[:n], "plain output\n")
	}
}

func TestGetGlobalConfigFallsBackToDefaults(t *testing.T) {
	oldConfig := globalConfig
	globalConfig = nil
	defer func() { globalConfig = oldConfig }()

	cfg := GetGlobalConfig()
	if cfg == nil {
		t.Fatal("GetGlobalConfig() returned nil")
	}
	if cfg.API.Endpoint != "http://localhost:8000" {
		t.Errorf("default endpoint = %q, want %q", cfg.API.Endpoint, "http://localhost:8000")
	}
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name      string
		noColor   bool
		colorMode string
		want      bool
	}{
		{name: "no-color flag wins", noColor: true, colorMode: "always", want: false},
		{name: "mode never", noColor: false, colorMode: "never", want: false},
		{name: "mode always", noColor: false, colorMode: "always", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldNoColor := noColor
			oldConfig := globalConfig

			noColor = tt.noColor
			globalConfig = config.DefaultConfig()
			globalConfig.Output.ColorMode = tt.colorMode

			defer func() {
				noColor = oldNoColor
				globalConfig = oldConfig
			}()

			if got := colorEnabled(); got != tt.want {
				t.Errorf("colorEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
