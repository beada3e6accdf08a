package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/yildizm/CodeSum/internal/explainer"
)

func sampleResult() *explainer.ExplainResult {
	return &explainer.ExplainResult{
		Explanation: explainer.Explanation{
			Markdown:        "# Parser Overview\n\nThe parser walks the tree.",
			OverallAnalysis: "A small recursive descent parser.",
			ImportantFunctions: []explainer.ImportantFunction{
				{
					Name:        "Parse",
					Code:        "func Parse(src string) (*Node, error) {\n\treturn parseExpr(src)\n}",
					Explanation: "Top-level entry into the parser.",
				},
			},
		},
		Analysis: explainer.Analysis{
			Results: map[string]explainer.FileAnalysis{
				"b2": {
					File: "parser.go",
					Functions: []explainer.FunctionInfo{
						{Name: "Parse", Docstring: "Parse parses source text.", FanIn: 0, FanOut: 4, IsEntryPoint: true},
						{Name: "parseExpr", FanIn: 3, FanOut: 2},
					},
				},
				"a1": {
					File: "lexer.go",
					Functions: []explainer.FunctionInfo{
						{Name: "nextToken", FanIn: 5, FanOut: 1},
					},
				},
			},
		},
	}
}

func TestJSONFormatter(t *testing.T) {
	data, err := NewJSON().Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var output JSONOutput
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if output.Summary.Files != 2 {
		t.Errorf("Expected 2 files, got %d", output.Summary.Files)
	}
	if output.Summary.Functions != 3 {
		t.Errorf("Expected 3 functions, got %d", output.Summary.Functions)
	}
	if output.Summary.EntryPoints != 1 {
		t.Errorf("Expected 1 entry point, got %d", output.Summary.EntryPoints)
	}
	if output.Summary.MaxFanIn != 5 {
		t.Errorf("Expected max fan-in 5, got %d", output.Summary.MaxFanIn)
	}

	if output.Explanation.Markdown != "# Parser Overview\n\nThe parser walks the tree." {
		t.Errorf("Explanation markdown not preserved: %q", output.Explanation.Markdown)
	}

	if len(output.Files) != 2 {
		t.Fatalf("Expected 2 file outputs, got %d", len(output.Files))
	}

	// Files are sorted by name for stable output
	if output.Files[0].File != "lexer.go" || output.Files[1].File != "parser.go" {
		t.Errorf("Expected sorted file order, got %s, %s", output.Files[0].File, output.Files[1].File)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	data, err := NewMarkdown().Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	output := string(data)

	for _, want := range []string{
		"# Code Explanation Report",
		"## Summary",
		"## Explanation",
		"A small recursive descent parser.",
		"# Parser Overview",
		"## Important Functions",
		"### `Parse`",
		"| Function | Fan-In | Fan-Out | Entry Point |",
		"## Where To Start Reading",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestCSVFormatter(t *testing.T) {
	data, err := NewCSV().Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	// Header plus one row per function
	if len(records) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(records))
	}

	if records[0][0] != "File" || records[0][1] != "Function" {
		t.Errorf("Unexpected header row: %v", records[0])
	}

	// lexer.go sorts first
	if records[1][0] != "lexer.go" || records[1][1] != "nextToken" {
		t.Errorf("Unexpected first row: %v", records[1])
	}

	if records[2][4] != "true" {
		t.Errorf("Expected Parse to be marked as entry point, got %v", records[2])
	}
}

func TestHTMLFormatter(t *testing.T) {
	data, err := NewHTML().Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	output := string(data)

	if !strings.HasPrefix(output, "<!DOCTYPE html>") {
		t.Error("Expected a standalone HTML document")
	}

	// The markdown heading is rendered to an h1 element
	if !strings.Contains(output, "Parser Overview</h1>") {
		t.Error("Expected rendered markdown heading in output")
	}

	for _, want := range []string{
		"Code Explanation Report",
		"parser.go",
		"nextToken",
		"class=\"entry\"",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestTerminalFormatter(t *testing.T) {
	data, err := NewTerminal(false).Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	output := string(data)

	for _, want := range []string{
		"Code Explanation Summary",
		"Overview",
		"Most Connected Functions",
		"nextToken",
		"Where To Start",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}
