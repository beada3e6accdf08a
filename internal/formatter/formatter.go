package formatter

import "github.com/yildizm/CodeSum/internal/explainer"

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *explainer.ExplainResult) ([]byte, error)
}
