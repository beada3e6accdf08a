package formatter

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/yildizm/CodeSum/internal/explainer"
)

// htmlFormatter renders a standalone HTML report
type htmlFormatter struct{}

// NewHTML creates a new HTML formatter
func NewHTML() Formatter {
	return &htmlFormatter{}
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Code Explanation Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
h1, h2, h3 { line-height: 1.25; }
pre { background: #f6f8fa; padding: 1rem; border-radius: 6px; overflow-x: auto; }
code { background: #f6f8fa; padding: 0.1rem 0.3rem; border-radius: 4px; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #d1d9e0; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f6f8fa; }
.entry { color: #1a7f37; font-weight: 600; }
footer { margin-top: 3rem; color: #59636e; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Code Explanation Report</h1>
<p>Generated: {{.Generated}}</p>

<h2>Summary</h2>
<table>
<tr><th>Metric</th><th>Value</th></tr>
<tr><td>Files Analyzed</td><td>{{.Stats.Files}}</td></tr>
<tr><td>Functions</td><td>{{.Stats.Functions}}</td></tr>
<tr><td>Entry Points</td><td>{{.Stats.EntryPoints}}</td></tr>
<tr><td>Mean Fan-In</td><td>{{printf "%.1f" .Stats.MeanFanIn}}</td></tr>
<tr><td>Mean Fan-Out</td><td>{{printf "%.1f" .Stats.MeanFanOut}}</td></tr>
</table>

<h2>Explanation</h2>
{{if .Overall}}<p><strong>{{.Overall}}</strong></p>{{end}}
{{.Explanation}}

{{if .ImportantFunctions}}
<h2>Important Functions</h2>
{{range .ImportantFunctions}}
<h3><code>{{.Name}}</code></h3>
{{if .Explanation}}<p>{{.Explanation}}</p>{{end}}
{{if .Code}}<pre><code>{{.Code}}</code></pre>{{end}}
{{end}}
{{end}}

{{if .Files}}
<h2>File Analysis</h2>
{{range .Files}}
<h3>{{.File}}</h3>
<table>
<tr><th>Function</th><th>Fan-In</th><th>Fan-Out</th><th>Entry Point</th><th>Docstring</th></tr>
{{range .Functions}}
<tr><td><code>{{.Name}}</code></td><td>{{.FanIn}}</td><td>{{.FanOut}}</td><td>{{if .IsEntryPoint}}<span class="entry">yes</span>{{end}}</td><td>{{.Docstring}}</td></tr>
{{end}}
</table>
{{end}}
{{end}}

<footer>Report generated by CodeSum - Code Explanation Client</footer>
</body>
</html>
`

// htmlReportData is the template input for the HTML report
type htmlReportData struct {
	Generated          string
	Overall            string
	Explanation        template.HTML
	Stats              *explainer.FanStats
	ImportantFunctions []explainer.ImportantFunction
	Files              []explainer.FileAnalysis
}

func (f *htmlFormatter) Format(result *explainer.ExplainResult) ([]byte, error) {
	tmpl, err := template.New("report").Parse(htmlReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML template: %w", err)
	}

	files := make([]explainer.FileAnalysis, 0, len(result.Analysis.Results))
	for _, file := range result.Analysis.Results {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].File < files[j].File
	})

	data := &htmlReportData{
		Generated:          time.Now().Format("2006-01-02 15:04:05"),
		Overall:            result.Explanation.OverallAnalysis,
		Explanation:        renderMarkdownHTML(result.Explanation.Markdown),
		Stats:              explainer.ComputeFanStats(&result.Analysis),
		ImportantFunctions: result.Explanation.ImportantFunctions,
		Files:              files,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML report: %w", err)
	}

	return buf.Bytes(), nil
}

// renderMarkdownHTML converts the explanation markdown to an HTML fragment
func renderMarkdownHTML(md string) template.HTML {
	if md == "" {
		return ""
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	opts := mdhtml.RendererOptions{Flags: mdhtml.CommonFlags}
	renderer := mdhtml.NewRenderer(opts)

	// #nosec G203 - markdown comes from the explanation service and is rendered for local viewing
	return template.HTML(markdown.Render(doc, renderer))
}
