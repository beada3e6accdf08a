package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingPattern     = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	orderedItemPattern = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	inlineCodePattern  = regexp.MustCompile("`([^`]+)`")
	inlineBoldPattern  = regexp.MustCompile(`(\*\*|__)([^*_]+)(\*\*|__)`)
)

// RenderMarkdown renders explanation markdown as styled terminal text
// wrapped to the given width. Code blocks keep their original line
// layout; everything else is reflowed into paragraphs.
func RenderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 80
	}

	styles := GetStyles()
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out strings.Builder
	var paragraph []string
	inCodeBlock := false

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		joined := strings.Join(paragraph, " ")
		out.WriteString(wrapText(renderInlineSpans(joined, styles), width))
		out.WriteString("\n")
		paragraph = paragraph[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		// Code fences toggle verbatim mode
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			flush()
			inCodeBlock = !inCodeBlock
			if inCodeBlock {
				lang := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(trimmed, "```"), "~~~"))
				if lang != "" {
					out.WriteString(styles.Subheader.Render("[" + strings.ToUpper(lang) + "]"))
					out.WriteString("\n")
				}
			} else {
				out.WriteString("\n")
			}
			continue
		}

		if inCodeBlock {
			out.WriteString(styles.Code.Render(strings.TrimRight(line, " \t")))
			out.WriteString("\n")
			continue
		}

		switch {
		case trimmed == "":
			flush()
			out.WriteString("\n")
		case headingPattern.MatchString(trimmed):
			flush()
			match := headingPattern.FindStringSubmatch(trimmed)
			out.WriteString(styles.Header.Underline(true).Render(match[1]))
			out.WriteString("\n")
		case isListItem(trimmed):
			flush()
			out.WriteString("  " + renderListItem(trimmed, width-4, styles))
			out.WriteString("\n")
		default:
			paragraph = append(paragraph, trimmed)
		}
	}
	flush()

	return strings.Trim(out.String(), "\n")
}

// isListItem checks if a line is a list item
func isListItem(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return true
	}
	return orderedItemPattern.MatchString(line)
}

// renderListItem renders a bullet or numbered item with inline styling
func renderListItem(line string, width int, styles *Styles) string {
	bullet := "•"
	content := line

	switch {
	case strings.HasPrefix(line, "- "):
		content = strings.TrimPrefix(line, "- ")
	case strings.HasPrefix(line, "* "):
		content = strings.TrimPrefix(line, "* ")
	case strings.HasPrefix(line, "+ "):
		content = strings.TrimPrefix(line, "+ ")
	default:
		if match := orderedItemPattern.FindStringSubmatch(line); match != nil {
			bullet = match[1] + "."
			content = match[2]
		}
	}

	marker := lipgloss.NewStyle().Foreground(styles.Theme.Accent).Render(bullet)
	return marker + " " + wrapText(renderInlineSpans(content, styles), width)
}

// renderInlineSpans styles inline `code` and **bold** spans
func renderInlineSpans(text string, styles *Styles) string {
	text = inlineCodePattern.ReplaceAllStringFunc(text, func(match string) string {
		return styles.Code.Render(strings.Trim(match, "`"))
	})

	return inlineBoldPattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := inlineBoldPattern.FindStringSubmatch(match)
		if len(inner) > 2 {
			return styles.Body.Bold(true).Render(inner[2])
		}
		return match
	})
}

// wrapText wraps text at word boundaries. Widths are measured with
// lipgloss so ANSI sequences from earlier styling do not count.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = 80
	}

	var out strings.Builder
	var line strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := lipgloss.Width(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > width {
			out.WriteString(line.String())
			out.WriteString("\n")
			line.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			line.WriteString(" ")
			lineWidth++
		}

		line.WriteString(word)
		lineWidth += wordWidth
	}

	out.WriteString(line.String())
	return out.String()
}
