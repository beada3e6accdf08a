package explainer

import (
	"strings"
)

// ExplainRequest carries one query/file pair to the code-explainer service
type ExplainRequest struct {
	// Query is the natural-language question about the file
	Query string `json:"query"`

	// FileName is the original name of the uploaded file
	FileName string `json:"file_name"`

	// FileData holds the file content, transmitted byte for byte
	FileData []byte `json:"-"`
}

// Validate checks that the request satisfies the submit preconditions.
// The query must be non-empty after trimming and a file must be
// attached. An attached zero-byte file is valid.
func (r *ExplainRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return NewValidationError("query", "Please enter a query")
	}
	if r.FileData == nil {
		return NewValidationError("file", "Please choose a file")
	}
	return nil
}

// ExplainResult is the parsed response body of a successful request
type ExplainResult struct {
	// Explanation holds the human-readable explanation blocks
	Explanation Explanation `json:"explanation"`

	// Analysis holds the raw per-file analysis data
	Analysis Analysis `json:"analysis"`
}

// Explanation contains the rendered text the service produced
type Explanation struct {
	// Markdown is the formatted description of the codebase
	Markdown string `json:"markdown"`

	// OverallAnalysis is a higher-level summary
	OverallAnalysis string `json:"overall_analysis"`

	// ImportantFunctions lists the functions the service ranked as
	// most relevant, in service order
	ImportantFunctions []ImportantFunction `json:"important_functions"`
}

// ImportantFunction is one ranked function with its explanation
type ImportantFunction struct {
	// Name is the function identifier
	Name string `json:"name"`

	// Code is the function source as the service extracted it
	Code string `json:"code"`

	// Explanation describes what the function does
	Explanation string `json:"explanation"`
}

// Analysis groups the structural analysis results keyed by an
// opaque identifier chosen by the service
type Analysis struct {
	Results map[string]FileAnalysis `json:"results"`
}

// FileAnalysis holds the analyzed functions of one file
type FileAnalysis struct {
	// File is the path the service associated with these functions
	File string `json:"file"`

	// Functions lists every analyzed function in the file
	Functions []FunctionInfo `json:"functions"`
}

// FunctionInfo describes one analyzed function
type FunctionInfo struct {
	// Name is the function identifier
	Name string `json:"name"`

	// Code is the function source
	Code string `json:"code"`

	// Docstring is the documentation attached to the function
	Docstring string `json:"docstring"`

	// FanIn counts call sites referencing this function
	FanIn int `json:"fan_in"`

	// FanOut counts functions this function calls
	FanOut int `json:"fan_out"`

	// IsEntryPoint marks a program starting point
	IsEntryPoint bool `json:"is_entry_point"`
}

// FunctionCount returns the total number of analyzed functions
// across all files.
func (a *Analysis) FunctionCount() int {
	count := 0
	for _, result := range a.Results {
		count += len(result.Functions)
	}
	return count
}

// EntryPoints returns every function flagged as an entry point.
func (a *Analysis) EntryPoints() []FunctionInfo {
	var entries []FunctionInfo
	for _, result := range a.Results {
		for _, fn := range result.Functions {
			if fn.IsEntryPoint {
				entries = append(entries, fn)
			}
		}
	}
	return entries
}
