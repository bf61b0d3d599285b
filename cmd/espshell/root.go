package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/espshell/espshell/internal/domain/config"
	"github.com/espshell/espshell/internal/domain/platform"
)

var (
	// Global flags
	configPath   string
	platformFlag string
	verbose      bool
	yesFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "espshell",
	Short: "A declarative ESP32 Rust dev shell bootstrapper",
	Long: `espshell bootstraps an ESP32 Rust development environment from a
declarative manifest.

It pins the Rust toolchain through rustup, runs the espup installer for
the Espressif toolchains, registers shell aliases, and installs project
tooling crates, in one strictly ordered sequence:
  toolchain → components → espup → aliases → tools`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "espshell.yaml", "path to the manifest")
	rootCmd.PersistentFlags().StringVar(&platformFlag, "platform", "", "target platform (default: detect host)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "auto-confirm all prompts")

	_ = rootCmd.RegisterFlagCompletionFunc("platform", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		supported := platform.Supported()
		ids := make([]string, len(supported))
		for i, id := range supported {
			ids[i] = id.String()
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(versionCmd)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	if errors.Is(err, platform.ErrUnsupportedPlatform) {
		return fmt.Sprintf("%v\n\nSupported platforms: %v", err, platform.Supported())
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
