package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/CodeSum/internal/explainer"
)

// explainDoneMsg carries the settled state of a submission. The
// snapshot holds the result on success and the error on failure.
type explainDoneMsg struct {
	snapshot explainer.Snapshot
}

// createExplainCommand creates a tea command that performs the request
// staged by StartSubmit and reports the outcome
func createExplainCommand(ctrl *explainer.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return explainDoneMsg{snapshot: ctrl.FinishSubmit(ctx)}
	}
}
