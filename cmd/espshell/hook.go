package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Print an eval-able shell snippet for the session environment",
	Long: `Hook replays the session-mutating steps (export script sourcing and
alias registration) and prints the recorded environment as a POSIX
shell snippet on stdout. It never runs installers, so it is safe and
fast to eval on shell startup after 'espshell up' has completed:

  eval "$(espshell hook)"`,
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

func runHook(cmd *cobra.Command, _ []string) error {
	// Everything except the snippet goes to stderr.
	bootstrap, err := newBootstrap(os.Stderr, platformFlag)
	if err != nil {
		return err
	}

	env, err := bootstrap.Hook(cmd.Context(), configPath)
	if err != nil {
		return fmt.Errorf("hook failed: %w", err)
	}

	fmt.Fprint(os.Stdout, bootstrap.RenderHook(env))
	return nil
}
