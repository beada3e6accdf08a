package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/CodeSum/internal/explainer"
	"github.com/yildizm/CodeSum/internal/formatter"
	"github.com/yildizm/CodeSum/internal/logger"
	"github.com/yildizm/CodeSum/internal/ui"
)

var (
	explainQuery      string
	explainEndpoint   string
	explainTimeout    time.Duration
	explainOutputFile string
	explainSave       bool
	explainNoTUI      bool
)

func newExplainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [file]",
		Short: "Explain a source file",
		Long: `Send a source file to the code explainer service and render the
returned explanation.

The query guides what the explanation focuses on. When no query is
given, one is generated from the file name and its language.

Examples:
  codesum explain main.go
  codesum explain -q "how does the retry loop work" client.go
  codesum explain --output json handler.py
  codesum explain --save parser.rs`,
		Args: cobra.ExactArgs(1),
		RunE: runExplain,
	}

	cmd.Flags().StringVarP(&explainQuery, "query", "q", "", "question to ask about the file")
	cmd.Flags().StringVar(&explainEndpoint, "endpoint", "", "explainer service base URL")
	cmd.Flags().DurationVar(&explainTimeout, "timeout", 60*time.Second, "request timeout")
	cmd.Flags().StringVar(&explainOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().BoolVar(&explainSave, "save", false, "save output to the configured save directory")
	cmd.Flags().BoolVar(&explainNoTUI, "no-tui", false, "disable interactive UI, print formatted output")

	return cmd
}

// shouldUseTUIMode reports whether the interactive UI should present
// the result instead of the plain formatter
func shouldUseTUIMode() bool {
	if explainNoTUI || explainOutputFile != "" || explainSave {
		return false
	}
	format := getOutputFormat()
	return (format == "terminal" || format == "text") && !isVerbose()
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := getLogger("explain")

	// Use config values if flags weren't explicitly set
	if !cmd.Flag("timeout").Changed {
		explainTimeout = cfg.API.Timeout
	}
	endpoint := explainEndpoint
	if endpoint == "" {
		endpoint = cfg.API.Endpoint
	}

	path, data, err := readSourceFile(args[0])
	if err != nil {
		return err
	}

	log.DebugWithFields("read source file", []logger.Field{
		logger.Path(path),
		logger.Size(int64(len(data))),
	})

	client, err := explainer.NewClient(&explainer.Config{
		Endpoint:    endpoint,
		Timeout:     explainTimeout,
		MaxFileSize: cfg.API.MaxFileSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	query := resolveQuery(cfg.API.DefaultQuery, path)
	ctrl := explainer.NewController(client)

	if shouldUseTUIMode() {
		return ui.Run(ctrl, query, path)
	}

	ctrl.SetQuery(query)
	ctrl.SetFile(filepath.Base(path), data)

	ctx, cancel := context.WithTimeout(context.Background(), explainTimeout)
	defer cancel()

	start := time.Now()
	snap := ctrl.Submit(ctx)

	log.DebugWithFields("request settled", []logger.Field{
		logger.F("state", snap.State.String()),
		logger.Duration(time.Since(start)),
	})

	if snap.State != explainer.StateSucceeded {
		return snap.Err
	}

	return formatAndOutputResult(snap.Result, path)
}

// readSourceFile validates the path and reads the file bytes
func readSourceFile(filename string) (string, []byte, error) {
	if err := validateFilePath(filename); err != nil {
		return "", nil, fmt.Errorf("invalid file path: %w", err)
	}

	cleanPath := filepath.Clean(filename)

	data, err := os.ReadFile(cleanPath) // #nosec G304 - path is validated above
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return cleanPath, data, nil
}

// resolveQuery picks the query from the flag, the configured default,
// or a prompt generated from the file name
func resolveQuery(configured, path string) string {
	if strings.TrimSpace(explainQuery) != "" {
		return explainQuery
	}
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return explainer.DefaultQuery(path)
}

func formatAndOutputResult(result *explainer.ExplainResult, sourcePath string) error {
	formatterInstance, err := getFormatter(getOutputFormat(), colorEnabled())
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := formatterInstance.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(output, sourcePath)
}

// handleOutputDestination writes output to a file or stdout
func handleOutputDestination(output []byte, sourcePath string) error {
	target := explainOutputFile
	if target == "" && explainSave {
		target = savePath(sourcePath)
	}

	if target == "" {
		fmt.Print(string(output))
		return nil
	}

	if err := writeOutputToFile(output, target); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", target)
	}
	return nil
}

// savePath derives the save location from the configured directory,
// the source file name, and the output format
func savePath(sourcePath string) string {
	dir := GetGlobalConfig().Output.SaveDir
	if dir == "" {
		dir = "."
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(dir, base+".explanation."+formatExtension(getOutputFormat()))
}

// formatExtension maps an output format to a file extension
func formatExtension(format string) string {
	switch format {
	case "json":
		return "json"
	case "markdown", "md":
		return "md"
	case "csv":
		return "csv"
	case "html":
		return "html"
	default:
		return "txt"
	}
}

// getFormatter returns the appropriate formatter for the given format
func getFormatter(format string, color bool) (formatter.Formatter, error) {
	switch format {
	case "json":
		return formatter.NewJSON(), nil
	case "markdown", "md":
		return formatter.NewMarkdown(), nil
	case "csv":
		return formatter.NewCSV(), nil
	case "html":
		return formatter.NewHTML(), nil
	case "terminal", "text", "":
		return formatter.NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: terminal, json, markdown, csv, html)", format)
	}
}

// writeOutputToFile writes output to a file with proper error handling
func writeOutputToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(cleanPath) // #nosec G304 - user-requested output path
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}

// validateFilePath checks that a path names a readable regular file
func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}
