package tests

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yildizm/CodeSum/internal/explainer"
	"github.com/yildizm/CodeSum/internal/formatter"
)

// newService returns a test server that speaks the explain wire
// protocol and records what the client sent.
func newService(t *testing.T, result *explainer.ExplainResult) (*httptest.Server, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if r.URL.Path != "/code-explainer/all-in-one" {
			t.Errorf("Expected explain path, got %s", r.URL.Path)
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("Failed to parse multipart form: %v", err)
			return
		}

		rec.query = r.FormValue("query")

		files := r.MultipartForm.File["file"]
		if len(files) != 1 {
			t.Errorf("Expected exactly one file part, got %d", len(files))
			return
		}
		rec.fileName = files[0].Filename

		f, err := files[0].Open()
		if err != nil {
			t.Errorf("Failed to open file part: %v", err)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			t.Errorf("Failed to read file part: %v", err)
		}
		rec.fileData = data

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}))

	t.Cleanup(server.Close)
	return server, rec
}

type recordedRequest struct {
	query    string
	fileName string
	fileData []byte
}

func sampleResult() *explainer.ExplainResult {
	return &explainer.ExplainResult{
		Explanation: explainer.Explanation{
			Markdown:        "# handler.go\n\nParses requests and dispatches them.",
			OverallAnalysis: "The file wires HTTP handling to the dispatcher.",
			ImportantFunctions: []explainer.ImportantFunction{
				{Name: "handle", Code: "func handle() {}", Explanation: "Routes incoming requests."},
			},
		},
		Analysis: explainer.Analysis{
			Results: map[string]explainer.FileAnalysis{
				"0": {
					File: "handler.go",
					Functions: []explainer.FunctionInfo{
						{Name: "handle", FanIn: 0, FanOut: 2, IsEntryPoint: true},
						{Name: "parse", FanIn: 1, FanOut: 0},
					},
				},
			},
		},
	}
}

func newController(t *testing.T, endpoint string) *explainer.Controller {
	t.Helper()

	client, err := explainer.NewClient(&explainer.Config{
		Endpoint:    endpoint,
		Timeout:     5 * time.Second,
		MaxFileSize: 32 << 20,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return explainer.NewController(client)
}

// TestExplainPipeline drives the full client path: stage inputs,
// submit over HTTP, and render the settled result.
func TestExplainPipeline(t *testing.T) {
	server, rec := newService(t, sampleResult())

	source := []byte("func handle() {\n\tparse()\n}\n\nfunc parse() {}\n")

	ctrl := newController(t, server.URL)
	ctrl.SetQuery("what does this file do")
	ctrl.SetFile("handler.go", source)

	snap := ctrl.Submit(context.Background())

	if snap.State != explainer.StateSucceeded {
		t.Fatalf("Submit() state = %v, err = %v, want succeeded", snap.State, snap.Err)
	}
	if snap.Result == nil {
		t.Fatal("Submit() returned nil result on success")
	}

	// The service must have received the staged inputs unchanged
	if rec.query != "what does this file do" {
		t.Errorf("Service received query %q, want %q", rec.query, "what does this file do")
	}
	if rec.fileName != "handler.go" {
		t.Errorf("Service received file name %q, want %q", rec.fileName, "handler.go")
	}
	if string(rec.fileData) != string(source) {
		t.Errorf("Service received file bytes %q, want %q", rec.fileData, source)
	}

	// The settled result renders through every formatter
	for _, format := range []struct {
		name string
		f    formatter.Formatter
		want string
	}{
		{name: "json", f: formatter.NewJSON(), want: `"overall_analysis"`},
		{name: "markdown", f: formatter.NewMarkdown(), want: "handle"},
		{name: "csv", f: formatter.NewCSV(), want: "handle"},
		{name: "html", f: formatter.NewHTML(), want: "<html"},
		{name: "terminal", f: formatter.NewTerminal(false), want: "handle"},
	} {
		output, err := format.f.Format(snap.Result)
		if err != nil {
			t.Errorf("%s formatter failed: %v", format.name, err)
			continue
		}
		if !strings.Contains(string(output), format.want) {
			t.Errorf("%s output missing %q", format.name, format.want)
		}
	}
}

// TestExplainPipelineJSONReport checks that the JSON report reflects
// the result the service sent.
func TestExplainPipelineJSONReport(t *testing.T) {
	server, _ := newService(t, sampleResult())

	ctrl := newController(t, server.URL)
	ctrl.SetQuery("report")
	ctrl.SetFile("handler.go", []byte("func handle() {}\n"))

	snap := ctrl.Submit(context.Background())
	if snap.State != explainer.StateSucceeded {
		t.Fatalf("Submit() state = %v, err = %v", snap.State, snap.Err)
	}

	output, err := formatter.NewJSON().Format(snap.Result)
	if err != nil {
		t.Fatalf("JSON formatter failed: %v", err)
	}

	var report formatter.JSONOutput
	if err := json.Unmarshal(output, &report); err != nil {
		t.Fatalf("Failed to decode formatter output: %v", err)
	}

	if report.Explanation.OverallAnalysis != snap.Result.Explanation.OverallAnalysis {
		t.Errorf("Report changed overall analysis: %q", report.Explanation.OverallAnalysis)
	}
	if report.Summary.Functions != 2 || report.Summary.EntryPoints != 1 {
		t.Errorf("Report summary mismatch: %+v", report.Summary)
	}
	if len(report.Files) != 1 || report.Files[0].File != "handler.go" {
		t.Errorf("Report files mismatch: %+v", report.Files)
	}
}

// TestExplainPipelineServerError checks that a failing service surfaces
// as a protocol error carrying the status but not the body.
func TestExplainPipelineServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "secret stack trace", http.StatusInternalServerError)
	}))
	defer server.Close()

	ctrl := newController(t, server.URL)
	ctrl.SetQuery("will fail")
	ctrl.SetFile("handler.go", []byte("func handle() {}\n"))

	snap := ctrl.Submit(context.Background())

	if snap.State != explainer.StateFailed {
		t.Fatalf("Submit() state = %v, want failed", snap.State)
	}
	if snap.Result != nil {
		t.Error("Failed submit kept a result")
	}

	var clientErr *explainer.ClientError
	if !errors.As(snap.Err, &clientErr) {
		t.Fatalf("Submit() err = %T, want *ClientError", snap.Err)
	}
	if clientErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want %d", clientErr.StatusCode, http.StatusInternalServerError)
	}
	if !explainer.IsProtocolError(snap.Err) {
		t.Errorf("IsProtocolError() = false for %v", snap.Err)
	}

	// The body is not interpreted, so it must not leak into the error
	if strings.Contains(snap.Err.Error(), "secret stack trace") {
		t.Errorf("Protocol error leaked response body: %v", snap.Err)
	}
}

// TestExplainPipelineInFlight checks that a second submission is
// refused while a request is on the wire.
func TestExplainPipelineInFlight(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sampleResult())
	}))
	defer server.Close()

	ctrl := newController(t, server.URL)
	ctrl.SetQuery("long request")
	ctrl.SetFile("handler.go", []byte("func handle() {}\n"))

	snap, ok := ctrl.StartSubmit()
	if !ok {
		t.Fatalf("StartSubmit() refused, state = %v, err = %v", snap.State, snap.Err)
	}
	if snap.State != explainer.StateLoading {
		t.Fatalf("StartSubmit() state = %v, want loading", snap.State)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan explainer.Snapshot, 1)
	go func() {
		defer wg.Done()
		done <- ctrl.FinishSubmit(context.Background())
	}()

	// While the request is in flight further submissions are inert
	if again, ok := ctrl.StartSubmit(); ok {
		t.Errorf("StartSubmit() accepted while loading, state = %v", again.State)
	}

	close(release)
	wg.Wait()

	settled := <-done
	if settled.State != explainer.StateSucceeded {
		t.Fatalf("FinishSubmit() state = %v, err = %v", settled.State, settled.Err)
	}

	// After settling, the next submission goes through again
	ctrl.SetQuery("second run")
	ctrl.SetFile("handler.go", []byte("func handle() {}\n"))
	if _, ok := ctrl.StartSubmit(); !ok {
		t.Error("StartSubmit() refused after the previous request settled")
	}
	_ = ctrl.FinishSubmit(context.Background())
}
