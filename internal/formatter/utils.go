package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/CodeSum/internal/emoji"
	"github.com/yildizm/CodeSum/internal/explainer"
	"github.com/yildizm/go-termfmt"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// getFunctionEmoji returns the marker for a function's role
func getFunctionEmoji(fn *explainer.FunctionInfo) string {
	if fn.IsEntryPoint {
		return emoji.GetEmoji("entry_point")
	}
	return emoji.GetEmoji("function")
}

// createConnectivityBar renders a bar for a function's connectivity share
// relative to the most connected function
func createConnectivityBar(connectivity, maxConnectivity int) string {
	opts := termfmt.DefaultOptions()
	ratio := 0.0
	if maxConnectivity > 0 {
		ratio = float64(connectivity) / float64(maxConnectivity)
	}
	return termfmt.CreateConfidenceBar(ratio, opts)
}

// generateHighlights derives reading hints from the analysis
func generateHighlights(result *explainer.ExplainResult) []string {
	var highlights []string

	// Entry points come first
	entries := result.Analysis.EntryPoints()
	if len(entries) > 0 {
		names := make([]string, 0, len(entries))
		for _, fn := range entries {
			names = append(names, fn.Name)
		}
		highlights = append(highlights,
			fmt.Sprintf("Start with the entry point(s): %s", strings.Join(names, ", ")))
	}

	// The most connected function is usually the heart of the design
	if top := explainer.TopFunctions(&result.Analysis, 1); len(top) > 0 && top[0].Connectivity() > 0 {
		highlights = append(highlights,
			fmt.Sprintf("%s is the most connected function (fan-in %d, fan-out %d)",
				top[0].Function.Name, top[0].Function.FanIn, top[0].Function.FanOut))
	}

	// Functions the service itself called out
	if n := len(result.Explanation.ImportantFunctions); n > 0 {
		highlights = append(highlights,
			fmt.Sprintf("Review the %d function(s) highlighted in the explanation", n))
	}

	// Generic hints if nothing specific was found
	if len(highlights) == 0 {
		highlights = append(highlights,
			"Read the explanation above for an overview",
			"Resubmit with a more specific query to drill into details")
	}

	return highlights
}
