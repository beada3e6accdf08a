package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/CodeSum/internal/explainer"
)

var (
	queryLanguage string
	queryFocus    []string
)

func newQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [file]",
		Short: "Show the query generated for a file",
		Long: `Print the query that would be sent for a file when none is supplied.

The query is derived from the file name and its language. Use --focus
to add aspects the explanation should concentrate on, or --language to
override the detected language.

Examples:
  codesum query main.go
  codesum query --focus "error handling" --focus concurrency server.go
  codesum query --language Python scripts/deploy`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&queryLanguage, "language", "", "override the detected language")
	cmd.Flags().StringSliceVar(&queryFocus, "focus", nil, "aspect the explanation should concentrate on")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	fileName := args[0]

	language := queryLanguage
	if language == "" {
		language = explainer.DetectLanguage(fileName)
		if language == "" && isVerbose() {
			fmt.Fprintf(os.Stderr, "No language detected for %s\n", fileName)
		}
	}

	pattern := explainer.NewExplainPattern().WithFileName(filepath.Base(fileName))
	if language != "" {
		pattern = pattern.WithLanguage(language)
	}
	if len(queryFocus) > 0 {
		pattern = pattern.WithFocus(queryFocus...)
	}

	fmt.Println(pattern.Build().String())
	return nil
}
