package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/yildizm/CodeSum/internal/explainer"
)

// csvFormatter formats analyzed functions as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(result *explainer.ExplainResult) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	// CSV headers
	headers := []string{
		"File",
		"Function",
		"Fan In",
		"Fan Out",
		"Entry Point",
		"Docstring",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	// Stable row order across runs
	files := make([]explainer.FileAnalysis, 0, len(result.Analysis.Results))
	for _, file := range result.Analysis.Results {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].File < files[j].File
	})

	for _, file := range files {
		for _, fn := range file.Functions {
			record := []string{
				file.File,
				fn.Name,
				fmt.Sprintf("%d", fn.FanIn),
				fmt.Sprintf("%d", fn.FanOut),
				fmt.Sprintf("%t", fn.IsEntryPoint),
				escapeCSVString(fn.Docstring),
			}

			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// escapeCSVString properly escapes strings for CSV
func escapeCSVString(s string) string {
	// Remove newlines and truncate long docstrings
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	if len(s) > 100 {
		s = s[:97] + "..."
	}

	return s
}
