package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CodeSum/internal/explainer"
)

// FunctionViewer presents ranked functions one at a time with their
// explanation and source code.
type FunctionViewer struct {
	Title        string
	Functions    []explainer.ImportantFunction
	CurrentIndex int
	Width        int
	Height       int
	ShowLineNo   bool
	maxCodeLines int
}

// NewFunctionViewer creates a new function viewer
func NewFunctionViewer(title string, width, height int) *FunctionViewer {
	return &FunctionViewer{
		Title:        title,
		Width:        width,
		Height:       height,
		ShowLineNo:   true,
		maxCodeLines: 20,
	}
}

// SetFunctions sets the functions to display
func (v *FunctionViewer) SetFunctions(functions []explainer.ImportantFunction) {
	v.Functions = functions
	v.CurrentIndex = 0
}

// SetMaxCodeLines caps how many source lines are shown per function
func (v *FunctionViewer) SetMaxCodeLines(lines int) {
	if lines < 1 {
		lines = 1
	}
	v.maxCodeLines = lines
}

// Next moves to the next function
func (v *FunctionViewer) Next() bool {
	if v.CurrentIndex < len(v.Functions)-1 {
		v.CurrentIndex++
		return true
	}
	return false
}

// Previous moves to the previous function
func (v *FunctionViewer) Previous() bool {
	if v.CurrentIndex > 0 {
		v.CurrentIndex--
		return true
	}
	return false
}

// GetCurrentFunction returns the current function
func (v *FunctionViewer) GetCurrentFunction() *explainer.ImportantFunction {
	if v.CurrentIndex >= 0 && v.CurrentIndex < len(v.Functions) {
		return &v.Functions[v.CurrentIndex]
	}
	return nil
}

// Render renders the function viewer
func (v *FunctionViewer) Render() string {
	if len(v.Functions) == 0 {
		return v.renderEmpty()
	}

	primaryColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)
	panelStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(secondaryColor).Padding(0, 1)

	fn := v.Functions[v.CurrentIndex]

	var content []string

	title := fmt.Sprintf("%s (%d/%d)", v.Title, v.CurrentIndex+1, len(v.Functions))
	content = append(content, headerStyle.Render(title), "")

	content = append(content, headerStyle.Render(fn.Name))
	content = append(content, v.renderExplanation(&fn)...)
	content = append(content, "")
	content = append(content, v.renderCode(&fn)...)

	if len(v.Functions) > 1 {
		help := "Use ←/→ or j/k to move between functions"
		content = append(content, "", mutedStyle.Render(help))
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	return panelStyle.Width(v.Width).Render(joined)
}

// renderEmpty renders an empty function viewer
func (v *FunctionViewer) renderEmpty() string {
	primaryColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)
	panelStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(secondaryColor).Padding(0, 1)

	content := []string{
		headerStyle.Render(v.Title),
		"",
		mutedStyle.Render("The service ranked no functions for this file"),
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	return panelStyle.Width(v.Width).Render(joined)
}

// renderExplanation renders the wrapped explanation block
func (v *FunctionViewer) renderExplanation(fn *explainer.ImportantFunction) []string {
	secondaryColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	bodyStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	if strings.TrimSpace(fn.Explanation) == "" {
		return nil
	}

	width := v.Width - 6
	if width < 20 {
		width = 20
	}

	var lines []string
	for _, line := range strings.Split(wrapWords(fn.Explanation, width), "\n") {
		lines = append(lines, bodyStyle.Render(line))
	}
	return lines
}

// renderCode renders the function source with optional line numbers
func (v *FunctionViewer) renderCode(fn *explainer.ImportantFunction) []string {
	secondaryColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	codeColor := lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FCD34D"}

	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)
	codeStyle := lipgloss.NewStyle().Foreground(codeColor)

	code := strings.TrimRight(fn.Code, "\n")
	if code == "" {
		return []string{mutedStyle.Render("(no source available)")}
	}

	codeLines := strings.Split(code, "\n")
	shown := codeLines
	if len(shown) > v.maxCodeLines {
		shown = shown[:v.maxCodeLines]
	}

	lines := make([]string, 0, len(shown)+1)
	for i, line := range shown {
		if v.ShowLineNo {
			lineNo := mutedStyle.Render(fmt.Sprintf("%4d ", i+1))
			lines = append(lines, lineNo+codeStyle.Render(line))
		} else {
			lines = append(lines, codeStyle.Render(line))
		}
	}

	if len(codeLines) > len(shown) {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("     ... %d more lines", len(codeLines)-len(shown))))
	}

	return lines
}

// DetailViewer represents a detailed view of a specific item
type DetailViewer struct {
	Title   string
	Content []DetailSection
	Width   int
	Height  int
}

// DetailSection represents a section in the detail view
type DetailSection struct {
	Title   string
	Content []string
	Style   string // "info", "warning", "error", "success"
}

// NewDetailViewer creates a new detail viewer
func NewDetailViewer(title string, width, height int) *DetailViewer {
	return &DetailViewer{
		Title:  title,
		Width:  width,
		Height: height,
	}
}

// AddSection adds a section to the detail view
func (d *DetailViewer) AddSection(section DetailSection) {
	d.Content = append(d.Content, section)
}

// Clear clears all content
func (d *DetailViewer) Clear() {
	d.Content = d.Content[:0]
}

// Render renders the detail viewer
func (d *DetailViewer) Render() string {
	primaryColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	panelStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(secondaryColor).Padding(0, 1)

	content := make([]string, 0, len(d.Content)+5)

	content = append(content, headerStyle.Render(d.Title), "")

	for _, section := range d.Content {
		content = append(content, d.renderSection(section)...)
		content = append(content, "")
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	return panelStyle.Width(d.Width).Render(joined)
}

// renderSection renders a detail section
func (d *DetailViewer) renderSection(section DetailSection) []string {
	successColor := lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor := lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor := lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	infoColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	lines := make([]string, 0, len(section.Content)+1)

	var titleStyle lipgloss.Style
	switch section.Style {
	case "success":
		titleStyle = lipgloss.NewStyle().Foreground(successColor)
	case "warning":
		titleStyle = lipgloss.NewStyle().Foreground(warningColor)
	case "error":
		titleStyle = lipgloss.NewStyle().Foreground(errorColor)
	case "info":
		titleStyle = lipgloss.NewStyle().Foreground(infoColor)
	default:
		titleStyle = lipgloss.NewStyle().Foreground(bodyColor)
	}

	lines = append(lines, titleStyle.Bold(true).Render(section.Title))

	bodyStyle := lipgloss.NewStyle().Foreground(bodyColor)
	for _, line := range section.Content {
		lines = append(lines, bodyStyle.Render("  "+line))
	}

	return lines
}

// wrapWords wraps plain text at word boundaries
func wrapWords(text string, width int) string {
	if width <= 0 {
		width = 80
	}

	var out strings.Builder
	var line strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > width {
			out.WriteString(line.String())
			out.WriteString("\n")
			line.Reset()
			lineLen = 0
		}

		if lineLen > 0 {
			line.WriteString(" ")
			lineLen++
		}

		line.WriteString(word)
		lineLen += len(word)
	}

	out.WriteString(line.String())
	return out.String()
}
