package components

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CodeSum/internal/explainer"
)

// ConnectivityChart draws one bar per analyzed file, scaled by function
// count. The entry-point share of each bar is colored separately.
type ConnectivityChart struct {
	Title    string
	Files    []explainer.FileAnalysis
	Width    int
	Height   int
	ShowAxis bool
}

// NewConnectivityChart creates a new connectivity chart
func NewConnectivityChart(title string, files []explainer.FileAnalysis, width, height int) *ConnectivityChart {
	return &ConnectivityChart{
		Title:    title,
		Files:    files,
		Width:    width,
		Height:   height,
		ShowAxis: true,
	}
}

// Render renders the chart
func (c *ConnectivityChart) Render() string {
	if len(c.Files) == 0 {
		return c.renderEmpty()
	}

	var content []string

	// Add title
	content = append(content, lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}).Bold(true).Render(c.Title), "")

	// Render chart
	chart := c.renderChart()
	content = append(content, chart)

	// Add file axis if enabled
	if c.ShowAxis {
		axis := c.renderFileAxis()
		content = append(content, axis)
	}

	// Add summary
	summary := c.renderSummary()
	content = append(content, "", summary)

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Padding(1).Width(c.Width).Render(joined)
}

// renderEmpty renders an empty chart
func (c *ConnectivityChart) renderEmpty() string {
	content := []string{
		lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}).Bold(true).Render(c.Title),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Render("No analyzed files available"),
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Padding(1).Width(c.Width).Render(joined)
}

// barWidth returns the column width for one file bar
func (c *ConnectivityChart) barWidth() int {
	chartWidth := c.Width - 10
	width := chartWidth/len(c.Files) - 1
	if width < 1 {
		width = 1
	}
	if width > 5 {
		width = 5
	}
	return width
}

// renderChart renders the main chart area
func (c *ConnectivityChart) renderChart() string {
	chartWidth := c.Width - 10  // Leave space for Y-axis labels
	chartHeight := c.Height - 8 // Leave space for title, axis, and summary

	if chartHeight < 3 {
		chartHeight = 3
	}

	// Find max function count for scaling
	maxTotal := 0
	for _, file := range c.Files {
		if len(file.Functions) > maxTotal {
			maxTotal = len(file.Functions)
		}
	}

	if maxTotal == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Render("No functions to display")
	}

	barWidth := c.barWidth()

	var lines []string

	// Render chart from top to bottom
	for row := chartHeight - 1; row >= 0; row-- {
		var line strings.Builder

		// Y-axis label
		value := int(float64(maxTotal) * float64(row) / float64(chartHeight-1))
		label := fmt.Sprintf("%4d │", value)
		line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Render(label))

		// Chart bars
		column := 0
		for _, file := range c.Files {
			if column+barWidth > chartWidth {
				break
			}

			entryPoints := 0
			for _, fn := range file.Functions {
				if fn.IsEntryPoint {
					entryPoints++
				}
			}

			// Calculate bar heights
			totalHeight := int(float64(len(file.Functions)) * float64(chartHeight-1) / float64(maxTotal))
			entryHeight := int(float64(entryPoints) * float64(chartHeight-1) / float64(maxTotal))

			char := " "
			style := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})

			if row <= totalHeight && len(file.Functions) > 0 {
				if row <= entryHeight && entryPoints > 0 {
					// Entry-point portion
					char = "█"
					style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"})
				} else {
					// Remaining functions
					char = "█"
					style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"})
				}
			}

			line.WriteString(style.Render(strings.Repeat(char, barWidth)))
			line.WriteString(" ")
			column += barWidth + 1
		}

		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

// renderFileAxis renders the file index labels
func (c *ConnectivityChart) renderFileAxis() string {
	chartWidth := c.Width - 10

	var line strings.Builder
	line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Render("     └"))

	// Add horizontal line
	for i := 0; i < chartWidth; i++ {
		line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Render("─"))
	}

	// Index labels under the bar centers, matching the file list order
	barWidth := c.barWidth()
	labels := []string{"     "}

	for i := range c.Files {
		pos := 6 + i*(barWidth+1) + barWidth/2
		if pos >= chartWidth+6 {
			break
		}

		for len(labels)-1 < pos {
			labels = append(labels, " ")
		}
		labels[pos] = strconv.Itoa(i + 1)
	}

	fileAxis := strings.Join(labels, "")

	return line.String() + "\n" + lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Render(fileAxis)
}

// renderSummary renders chart summary information
func (c *ConnectivityChart) renderSummary() string {
	totalFunctions := 0
	totalEntries := 0
	largest := ""
	largestCount := 0

	for _, file := range c.Files {
		totalFunctions += len(file.Functions)
		for _, fn := range file.Functions {
			if fn.IsEntryPoint {
				totalEntries++
			}
		}
		if len(file.Functions) > largestCount {
			largestCount = len(file.Functions)
			largest = file.File
		}
	}

	summary := []string{
		fmt.Sprintf("Files: %d", len(c.Files)),
		fmt.Sprintf("Functions: %d (%d entry points)", totalFunctions, totalEntries),
	}

	if largest != "" {
		summary = append(summary, fmt.Sprintf("Largest: %s (%d)", filepath.Base(largest), largestCount))
	}

	return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}).Render(strings.Join(summary, " | "))
}

// SparklineChart represents a compact sparkline chart
type SparklineChart struct {
	Values []float64
	Width  int
	Min    float64
	Max    float64
}

// NewSparklineChart creates a new sparkline chart
func NewSparklineChart(values []float64, width int) *SparklineChart {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)

	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	return &SparklineChart{
		Values: values,
		Width:  width,
		Min:    minVal,
		Max:    maxVal,
	}
}

// Render renders the sparkline chart
func (s *SparklineChart) Render() string {
	if len(s.Values) == 0 {
		return ""
	}

	// Sparkline characters (from lowest to highest)
	chars := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

	var result strings.Builder

	step := len(s.Values) / s.Width
	if step == 0 {
		step = 1
	}

	for i := 0; i < s.Width && i*step < len(s.Values); i++ {
		value := s.Values[i*step]

		// Normalize value to 0-1 range
		normalized := 0.0
		if s.Max > s.Min {
			normalized = (value - s.Min) / (s.Max - s.Min)
		}

		// Map to character index
		charIndex := int(normalized * float64(len(chars)-1))
		if charIndex >= len(chars) {
			charIndex = len(chars) - 1
		}

		result.WriteString(chars[charIndex])
	}

	return result.String()
}
