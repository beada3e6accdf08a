package formatter

import (
	"encoding/json"
	"sort"

	"github.com/yildizm/CodeSum/internal/explainer"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(result *explainer.ExplainResult) ([]byte, error) {
	output := &JSONOutput{
		Summary:            createSummary(result),
		Explanation:        createExplanationOutput(&result.Explanation),
		ImportantFunctions: createImportantFunctionOutputs(result.Explanation.ImportantFunctions),
		Files:              createFileOutputs(&result.Analysis),
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput represents the report-oriented JSON structure
type JSONOutput struct {
	Summary            *SummaryOutput             `json:"summary"`
	Explanation        *ExplanationOutput         `json:"explanation"`
	ImportantFunctions []*ImportantFunctionOutput `json:"important_functions"`
	Files              []*FileOutput              `json:"files"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Files       int     `json:"files"`
	Functions   int     `json:"functions"`
	EntryPoints int     `json:"entry_points"`
	MeanFanIn   float64 `json:"mean_fan_in"`
	MeanFanOut  float64 `json:"mean_fan_out"`
	MaxFanIn    int     `json:"max_fan_in"`
	MaxFanOut   int     `json:"max_fan_out"`
}

// ExplanationOutput carries the service's narrative answer
type ExplanationOutput struct {
	Markdown        string `json:"markdown"`
	OverallAnalysis string `json:"overall_analysis"`
}

// ImportantFunctionOutput represents one highlighted function
type ImportantFunctionOutput struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
}

// FileOutput represents per-file analysis results
type FileOutput struct {
	File      string            `json:"file"`
	Functions []*FunctionOutput `json:"functions"`
}

// FunctionOutput represents one analyzed function
type FunctionOutput struct {
	Name         string `json:"name"`
	Docstring    string `json:"docstring,omitempty"`
	FanIn        int    `json:"fan_in"`
	FanOut       int    `json:"fan_out"`
	IsEntryPoint bool   `json:"is_entry_point"`
}

// Helper functions for JSON output

// createSummary creates the summary section from computed statistics
func createSummary(result *explainer.ExplainResult) *SummaryOutput {
	fs := explainer.ComputeFanStats(&result.Analysis)
	return &SummaryOutput{
		Files:       fs.Files,
		Functions:   fs.Functions,
		EntryPoints: fs.EntryPoints,
		MeanFanIn:   fs.MeanFanIn,
		MeanFanOut:  fs.MeanFanOut,
		MaxFanIn:    fs.MaxFanIn,
		MaxFanOut:   fs.MaxFanOut,
	}
}

// createExplanationOutput copies the narrative fields
func createExplanationOutput(explanation *explainer.Explanation) *ExplanationOutput {
	return &ExplanationOutput{
		Markdown:        explanation.Markdown,
		OverallAnalysis: explanation.OverallAnalysis,
	}
}

// createImportantFunctionOutputs converts highlighted functions
func createImportantFunctionOutputs(functions []explainer.ImportantFunction) []*ImportantFunctionOutput {
	outputs := make([]*ImportantFunctionOutput, 0, len(functions))

	for _, fn := range functions {
		outputs = append(outputs, &ImportantFunctionOutput{
			Name:        fn.Name,
			Code:        fn.Code,
			Explanation: fn.Explanation,
		})
	}

	return outputs
}

// createFileOutputs converts per-file results, sorted by file name
// so output is stable across runs
func createFileOutputs(analysis *explainer.Analysis) []*FileOutput {
	outputs := make([]*FileOutput, 0, len(analysis.Results))

	for _, file := range analysis.Results {
		functions := make([]*FunctionOutput, 0, len(file.Functions))
		for _, fn := range file.Functions {
			functions = append(functions, &FunctionOutput{
				Name:         fn.Name,
				Docstring:    fn.Docstring,
				FanIn:        fn.FanIn,
				FanOut:       fn.FanOut,
				IsEntryPoint: fn.IsEntryPoint,
			})
		}

		outputs = append(outputs, &FileOutput{
			File:      file.File,
			Functions: functions,
		})
	}

	sort.Slice(outputs, func(i, j int) bool {
		return outputs[i].File < outputs[j].File
	})

	return outputs
}
