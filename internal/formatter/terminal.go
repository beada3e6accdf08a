package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/CodeSum/internal/explainer"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(result *explainer.ExplainResult) ([]byte, error) {
	var b strings.Builder

	// Header with custom box drawing
	f.writeHeader(&b)

	// Overview section with tree view
	f.writeOverview(&b, result)

	// The service's narrative answer
	f.writeExplanation(&b, &result.Explanation)

	// Most connected functions
	if result.Analysis.FunctionCount() > 0 {
		f.writeHubFunctions(&b, &result.Analysis)
	}

	// Functions the service called out
	if len(result.Explanation.ImportantFunctions) > 0 {
		f.writeImportantFunctions(&b, result.Explanation.ImportantFunctions)
	}

	// Reading hints
	f.writeTextHighlights(&b, result)

	return []byte(b.String()), nil
}

// writeHeader writes a header with box drawing
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Code Explanation Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeOverview writes analysis statistics with tree-style formatting using go-termfmt
func (f *terminalFormatter) writeOverview(b *strings.Builder, result *explainer.ExplainResult) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Overview\n")

	fs := explainer.ComputeFanStats(&result.Analysis)

	items := []termfmt.TreeItem{
		{Label: "Files Analyzed", Value: formatNumber(fs.Files)},
		{Label: "Functions", Value: formatNumber(fs.Functions)},
		{Label: "Entry Points", Value: fmt.Sprintf("%d", fs.EntryPoints)},
		{Label: "Mean Fan-In / Fan-Out", Value: fmt.Sprintf("%.1f / %.1f", fs.MeanFanIn, fs.MeanFanOut), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeExplanation writes the returned explanation text
func (f *terminalFormatter) writeExplanation(b *strings.Builder, explanation *explainer.Explanation) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " Explanation\n")

	if explanation.OverallAnalysis != "" {
		b.WriteString(explanation.OverallAnalysis + "\n\n")
	}

	if explanation.Markdown != "" {
		b.WriteString(explanation.Markdown)
		if !strings.HasSuffix(explanation.Markdown, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

// writeHubFunctions writes the most connected functions with visual indicators
func (f *terminalFormatter) writeHubFunctions(b *strings.Builder, analysis *explainer.Analysis) {
	// Use fallback symbol so the section marker stays plain ASCII
	opts := termfmt.DefaultOptions()
	opts.Emoji = false // Force fallback
	symbol := termfmt.GetEmoji("help", opts)
	b.WriteString(symbol + " Most Connected Functions\n")

	ranked := explainer.TopFunctions(analysis, 5)

	maxConnectivity := 0
	if len(ranked) > 0 {
		maxConnectivity = ranked[0].Connectivity()
	}

	for i, fn := range ranked {
		bar := createConnectivityBar(fn.Connectivity(), maxConnectivity)
		marker := getFunctionEmoji(&fn.Function)

		if i == len(ranked)-1 {
			fmt.Fprintf(b, "└─ %s %s %s (fan-in %d, fan-out %d)\n",
				bar, marker, fn.Function.Name, fn.Function.FanIn, fn.Function.FanOut)
		} else {
			fmt.Fprintf(b, "├─ %s %s %s (fan-in %d, fan-out %d)\n",
				bar, marker, fn.Function.Name, fn.Function.FanIn, fn.Function.FanOut)
		}
	}
	b.WriteString("\n")
}

// writeImportantFunctions writes highlighted functions using go-termfmt tree view
func (f *terminalFormatter) writeImportantFunctions(b *strings.Builder, functions []explainer.ImportantFunction) {
	symbol := termfmt.GetEmoji("insight", f.opts)
	b.WriteString(symbol + " Important Functions\n")

	items := make([]termfmt.TreeItem, 0, len(functions))
	for i, fn := range functions {
		item := termfmt.TreeItem{
			Label: fn.Name,
			Value: "",
			Children: []termfmt.TreeItem{
				{Label: firstLine(fn.Explanation), Value: ""},
			},
			Last: i == len(functions)-1,
		}
		items = append(items, item)
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeTextHighlights writes reading hints using go-termfmt
func (f *terminalFormatter) writeTextHighlights(b *strings.Builder, result *explainer.ExplainResult) {
	highlights := generateHighlights(result)

	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " Where To Start\n")

	for i, h := range highlights {
		if i < 3 { // Limit to top 3 hints for terminal format
			b.WriteString("• " + h + "\n")
		}
	}
}

// firstLine truncates a text to its first line for compact tree display
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
