package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yildizm/CodeSum/internal/explainer"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(result *explainer.ExplainResult) ([]byte, error) {
	var b strings.Builder

	// Header with generation timestamp
	b.WriteString("# Code Explanation Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	// Table of Contents
	f.writeTableOfContents(&b, result)

	// Summary with statistics table
	f.writeSummaryTable(&b, result)

	// The service's narrative answer, verbatim
	f.writeExplanationSection(&b, &result.Explanation)

	// Highlighted functions with code samples
	if len(result.Explanation.ImportantFunctions) > 0 {
		f.writeImportantFunctionSections(&b, result.Explanation.ImportantFunctions)
	}

	// Per-file function tables
	if len(result.Analysis.Results) > 0 {
		f.writeFileSections(&b, &result.Analysis)
	}

	// Reading hints
	f.writeHighlights(&b, result)

	return []byte(b.String()), nil
}

// writeTableOfContents writes a professional table of contents
func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, result *explainer.ExplainResult) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Summary](#summary)\n")
	b.WriteString("- [Explanation](#explanation)\n")

	if len(result.Explanation.ImportantFunctions) > 0 {
		b.WriteString("- [Important Functions](#important-functions)\n")
	}

	if len(result.Analysis.Results) > 0 {
		b.WriteString("- [File Analysis](#file-analysis)\n")
	}

	b.WriteString("- [Where To Start Reading](#where-to-start-reading)\n\n")
}

// writeSummaryTable writes a summary table from computed statistics
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, result *explainer.ExplainResult) {
	b.WriteString("## Summary\n\n")

	fs := explainer.ComputeFanStats(&result.Analysis)

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Files Analyzed | %s |\n", formatNumber(fs.Files))
	fmt.Fprintf(b, "| Functions | %s |\n", formatNumber(fs.Functions))
	fmt.Fprintf(b, "| Entry Points | %d |\n", fs.EntryPoints)
	fmt.Fprintf(b, "| Mean Fan-In | %.1f |\n", fs.MeanFanIn)
	fmt.Fprintf(b, "| Mean Fan-Out | %.1f |\n", fs.MeanFanOut)
	fmt.Fprintf(b, "| Important Functions | %d |\n\n", len(result.Explanation.ImportantFunctions))
}

// writeExplanationSection embeds the returned explanation without rewriting it
func (f *markdownFormatter) writeExplanationSection(b *strings.Builder, explanation *explainer.Explanation) {
	b.WriteString("## Explanation\n\n")

	if explanation.OverallAnalysis != "" {
		fmt.Fprintf(b, "**Overall**: %s\n\n", explanation.OverallAnalysis)
	}

	if explanation.Markdown != "" {
		b.WriteString(explanation.Markdown)
		if !strings.HasSuffix(explanation.Markdown, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

// writeImportantFunctionSections writes highlighted functions with code fences
func (f *markdownFormatter) writeImportantFunctionSections(b *strings.Builder, functions []explainer.ImportantFunction) {
	b.WriteString("## Important Functions\n\n")

	for _, fn := range functions {
		fmt.Fprintf(b, "### `%s`\n\n", fn.Name)

		if fn.Explanation != "" {
			b.WriteString(fn.Explanation + "\n\n")
		}

		if fn.Code != "" {
			b.WriteString("```\n")
			b.WriteString(fn.Code)
			if !strings.HasSuffix(fn.Code, "\n") {
				b.WriteString("\n")
			}
			b.WriteString("```\n\n")
		}
	}
}

// writeFileSections writes per-file function tables, sorted by file name
func (f *markdownFormatter) writeFileSections(b *strings.Builder, analysis *explainer.Analysis) {
	b.WriteString("## File Analysis\n\n")

	files := make([]explainer.FileAnalysis, 0, len(analysis.Results))
	for _, file := range analysis.Results {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].File < files[j].File
	})

	for _, file := range files {
		fmt.Fprintf(b, "### %s\n\n", file.File)

		if len(file.Functions) == 0 {
			b.WriteString("No functions found.\n\n")
			continue
		}

		b.WriteString("| Function | Fan-In | Fan-Out | Entry Point |\n")
		b.WriteString("|----------|--------|---------|-------------|\n")
		for _, fn := range file.Functions {
			entry := ""
			if fn.IsEntryPoint {
				entry = "yes"
			}
			fmt.Fprintf(b, "| `%s` | %d | %d | %s |\n", fn.Name, fn.FanIn, fn.FanOut, entry)
		}
		b.WriteString("\n")

		// Docstrings as blockquotes under the table
		for _, fn := range file.Functions {
			if fn.Docstring != "" {
				fmt.Fprintf(b, "> **%s**: %s\n", fn.Name, strings.ReplaceAll(fn.Docstring, "\n", " "))
			}
		}
		b.WriteString("\n")
	}
}

// writeHighlights writes reading hints derived from the analysis
func (f *markdownFormatter) writeHighlights(b *strings.Builder, result *explainer.ExplainResult) {
	b.WriteString("## Where To Start Reading\n\n")

	highlights := generateHighlights(result)

	for i, h := range highlights {
		fmt.Fprintf(b, "%d. %s\n", i+1, h)
	}

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by CodeSum - Code Explanation Client*\n")
}
