package explainer

import (
	"path/filepath"
	"strings"

	"github.com/yildizm/go-promptfmt"
)

// ExplainPattern builds the default query used when the caller does
// not supply one
type ExplainPattern struct {
	promptfmt.BasePattern
	FileName string
	Language string
	Focus    []string
}

// NewExplainPattern creates a general code explanation pattern
func NewExplainPattern() *ExplainPattern {
	return &ExplainPattern{
		BasePattern: promptfmt.BasePattern{
			Description: "Asks for a structural explanation of one source file",
			Tags:        []string{"code-explanation", "codesum"},
		},
	}
}

// WithFileName attaches the uploaded file's name to the query
func (ep *ExplainPattern) WithFileName(name string) *ExplainPattern {
	ep.FileName = name
	return ep
}

// WithLanguage names the source language in the query
func (ep *ExplainPattern) WithLanguage(language string) *ExplainPattern {
	ep.Language = language
	return ep
}

// WithFocus adds aspects the explanation should concentrate on
func (ep *ExplainPattern) WithFocus(aspects ...string) *ExplainPattern {
	ep.Focus = append(ep.Focus, aspects...)
	return ep
}

// Build assembles the prompt
func (ep *ExplainPattern) Build() *promptfmt.Prompt {
	pb := promptfmt.New().
		System("You are a code explanation assistant. Describe what code does in clear, plain language.")

	subject := "this code"
	if ep.FileName != "" {
		subject = ep.FileName
	}

	if ep.Language != "" {
		pb = pb.User("Explain what the %s file %s does, how it is structured, and which functions matter most.",
			ep.Language, subject)
	} else {
		pb = pb.User("Explain what %s does, how it is structured, and which functions matter most.",
			subject)
	}

	if len(ep.Focus) > 0 {
		pb = pb.User("Focus on: %s.", strings.Join(ep.Focus, ", "))
	}

	return pb.Build()
}

// DefaultQuery returns the query text used when none was supplied,
// derived from the uploaded file's name and extension.
func DefaultQuery(fileName string) string {
	pattern := NewExplainPattern().WithFileName(filepath.Base(fileName))

	if language := DetectLanguage(fileName); language != "" {
		pattern = pattern.WithLanguage(language)
	}

	return pattern.Build().String()
}

// DetectLanguage maps a file extension to a language name for the
// generated query. Unknown extensions return an empty string.
func DetectLanguage(fileName string) string {
	languages := map[string]string{
		".go":    "Go",
		".py":    "Python",
		".js":    "JavaScript",
		".jsx":   "JavaScript",
		".ts":    "TypeScript",
		".tsx":   "TypeScript",
		".rs":    "Rust",
		".java":  "Java",
		".rb":    "Ruby",
		".c":     "C",
		".h":     "C",
		".cpp":   "C++",
		".cc":    "C++",
		".cs":    "C#",
		".php":   "PHP",
		".swift": "Swift",
		".kt":    "Kotlin",
		".sh":    "shell",
	}

	return languages[strings.ToLower(filepath.Ext(fileName))]
}
