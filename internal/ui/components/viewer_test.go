package components

import (
	"strings"
	"testing"

	"github.com/yildizm/CodeSum/internal/explainer"
)

func rankedFunctions() []explainer.ImportantFunction {
	return []explainer.ImportantFunction{
		{Name: "handle", Code: "func handle() {\n\tparse()\n}", Explanation: "Drives the request flow."},
		{Name: "parse", Code: "func parse() {}", Explanation: "Splits the multipart fields."},
		{Name: "render", Code: "func render() {}", Explanation: "Writes the response."},
	}
}

func TestFunctionViewerNavigation(t *testing.T) {
	v := NewFunctionViewer("Important Functions", 80, 24)
	v.SetFunctions(rankedFunctions())

	if v.CurrentIndex != 0 {
		t.Fatalf("expected start at first function, got %d", v.CurrentIndex)
	}

	if !v.Next() || v.CurrentIndex != 1 {
		t.Errorf("expected Next to advance, index %d", v.CurrentIndex)
	}
	if !v.Next() || v.CurrentIndex != 2 {
		t.Errorf("expected Next to advance again, index %d", v.CurrentIndex)
	}
	if v.Next() {
		t.Error("expected Next to stop at the last function")
	}

	v.Previous()
	v.Previous()
	if v.CurrentIndex != 0 {
		t.Errorf("expected Previous to return to start, index %d", v.CurrentIndex)
	}
	if v.Previous() {
		t.Error("expected Previous to stop at the first function")
	}
}

func TestFunctionViewerSetFunctionsResetsIndex(t *testing.T) {
	v := NewFunctionViewer("Important Functions", 80, 24)
	v.SetFunctions(rankedFunctions())
	v.Next()

	v.SetFunctions(rankedFunctions()[:1])
	if v.CurrentIndex != 0 {
		t.Errorf("expected index reset, got %d", v.CurrentIndex)
	}
}

func TestFunctionViewerRender(t *testing.T) {
	v := NewFunctionViewer("Important Functions", 80, 24)
	v.SetFunctions(rankedFunctions())

	out := v.Render()

	if !strings.Contains(out, "(1/3)") {
		t.Errorf("expected position indicator, got:\n%s", out)
	}
	if !strings.Contains(out, "handle") {
		t.Errorf("expected function name, got:\n%s", out)
	}
	if !strings.Contains(out, "Drives the request flow.") {
		t.Errorf("expected explanation, got:\n%s", out)
	}
	if !strings.Contains(out, "   1 ") {
		t.Errorf("expected line numbers, got:\n%s", out)
	}

	v.Next()
	if out := v.Render(); !strings.Contains(out, "(2/3)") {
		t.Errorf("expected updated position, got:\n%s", out)
	}
}

func TestFunctionViewerTruncatesLongCode(t *testing.T) {
	code := strings.Join([]string{"a", "b", "c", "d", "e", "f"}, "\n")
	v := NewFunctionViewer("Important Functions", 80, 24)
	v.SetFunctions([]explainer.ImportantFunction{{Name: "long", Code: code}})
	v.SetMaxCodeLines(2)

	out := v.Render()

	if !strings.Contains(out, "... 4 more lines") {
		t.Errorf("expected truncation marker, got:\n%s", out)
	}
	if strings.Contains(out, "   3 ") {
		t.Errorf("expected third code line hidden, got:\n%s", out)
	}
}

func TestFunctionViewerEmpty(t *testing.T) {
	v := NewFunctionViewer("Important Functions", 80, 24)

	if v.GetCurrentFunction() != nil {
		t.Error("expected nil current function for empty viewer")
	}
	if out := v.Render(); !strings.Contains(out, "ranked no functions") {
		t.Errorf("expected empty message, got:\n%s", out)
	}
}

func TestFunctionViewerMissingSource(t *testing.T) {
	v := NewFunctionViewer("Important Functions", 80, 24)
	v.SetFunctions([]explainer.ImportantFunction{{Name: "ghost", Explanation: "No code came back."}})

	if out := v.Render(); !strings.Contains(out, "(no source available)") {
		t.Errorf("expected missing source marker, got:\n%s", out)
	}
}

func TestDetailViewerSections(t *testing.T) {
	d := NewDetailViewer("handler.go", 70, 0)
	d.AddSection(DetailSection{
		Title:   "Functions",
		Content: []string{"handle (fan-in 2, fan-out 1)"},
		Style:   "info",
	})
	d.AddSection(DetailSection{
		Title:   "Connectivity",
		Content: []string{"sparkline"},
		Style:   "success",
	})

	out := d.Render()

	if !strings.Contains(out, "handler.go") {
		t.Errorf("expected viewer title, got:\n%s", out)
	}
	if !strings.Contains(out, "Functions") || !strings.Contains(out, "Connectivity") {
		t.Errorf("expected section titles, got:\n%s", out)
	}
	if !strings.Contains(out, "handle (fan-in 2, fan-out 1)") {
		t.Errorf("expected section content, got:\n%s", out)
	}
}

func TestDetailViewerClear(t *testing.T) {
	d := NewDetailViewer("handler.go", 70, 0)
	d.AddSection(DetailSection{Title: "Functions", Content: []string{"x"}})
	d.Clear()

	if len(d.Content) != 0 {
		t.Errorf("expected cleared sections, got %d", len(d.Content))
	}
}

func TestWrapWords(t *testing.T) {
	out := wrapWords("one two three four five", 9)

	for _, line := range strings.Split(out, "\n") {
		if len(line) > 9 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
	if !strings.Contains(out, "\n") {
		t.Error("expected wrapped output")
	}
}
