package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/CodeSum/internal/explainer"
	"github.com/yildizm/CodeSum/internal/ui"
)

var (
	tuiQuery    string
	tuiEndpoint string
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Interactive explanation session",
		Long: `Open an interactive terminal session for exploring explanations.

The form collects a query and a file path. After a successful request
the explanation, its ranked functions, and the per-file analysis are
browsable without leaving the terminal.

Examples:
  codesum tui
  codesum tui main.go
  codesum tui -q "what drives the event loop" app.go`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTUI,
	}

	cmd.Flags().StringVarP(&tuiQuery, "query", "q", "", "prefill the query field")
	cmd.Flags().StringVar(&tuiEndpoint, "endpoint", "", "explainer service base URL")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	endpoint := tuiEndpoint
	if endpoint == "" {
		endpoint = cfg.API.Endpoint
	}

	client, err := explainer.NewClient(&explainer.Config{
		Endpoint:    endpoint,
		Timeout:     cfg.API.Timeout,
		MaxFileSize: cfg.API.MaxFileSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	query := tuiQuery
	if query == "" {
		query = cfg.API.DefaultQuery
	}

	return ui.Run(explainer.NewController(client), query, filePath)
}
