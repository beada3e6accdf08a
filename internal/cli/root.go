package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/CodeSum/internal/config"
	"github.com/yildizm/CodeSum/internal/emoji"
	"github.com/yildizm/CodeSum/internal/logger"
	"github.com/yildizm/CodeSum/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codesum",
		Short: "Code Explanation Client",
		Long: `CodeSum sends a source file together with a question to a code
explainer service and renders the returned explanation.

The service analyzes the file's call graph, ranks its most important
functions, and writes a natural-language walkthrough. CodeSum presents
the result in the terminal, in an interactive TUI, or in one of several
export formats.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			// Set emoji state for all components
			emoji.SetEmojiDisabled(noEmoji)

			loadGlobalConfig()

			cfg := GetGlobalConfig()
			if !cmd.Flag("verbose").Changed {
				verbose = cfg.Output.Verbose
			}
			if !cmd.Flag("output").Changed && cfg.Output.DefaultFormat != "" {
				outputFmt = cfg.Output.DefaultFormat
			}
			ui.SetThemeByName(cfg.UI.Theme)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "terminal", "output format (terminal, json, markdown, csv, html)")

	// Add subcommands
	rootCmd.AddCommand(newExplainCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newQueryCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("CodeSum %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadGlobalConfig resolves the configuration for this invocation. A
// broken config file falls back to defaults so commands like
// "config validate" can still run and report the problem.
func loadGlobalConfig() {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		}
		cfg = config.DefaultConfig()
	}
	globalConfig = cfg
}

// GetGlobalConfig returns the configuration loaded for this invocation
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

func isEmojiDisabled() bool {
	return noEmoji
}

// colorEnabled resolves the configured color mode against the
// --no-color flag and the terminal environment
func colorEnabled() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return !ui.IsColorDisabled()
	}
}

func getLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}
