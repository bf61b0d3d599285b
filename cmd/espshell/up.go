package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/espshell/espshell/internal/app"
	"github.com/espshell/espshell/internal/domain/execution"
	"github.com/espshell/espshell/internal/domain/platform"
	"github.com/espshell/espshell/internal/domain/session"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bootstrap the dev shell from the manifest",
	Long: `Up plans and executes the full bootstrap sequence.

This command:
1. Resolves the target platform
2. Plans the step sequence from the manifest
3. Executes each step strictly in order
4. Reports results and the session environment

The first failing step aborts everything after it.`,
	RunE: runUp,
}

var upDryRun bool

type bootstrapClient interface {
	Plan(context.Context, string) (*execution.Plan, error)
	Apply(context.Context, *execution.Plan, bool) ([]execution.StepResult, *session.Environment, error)
	Hook(context.Context, string) (*session.Environment, error)
	PrintPlan(*execution.Plan)
	PrintResults([]execution.StepResult)
	RenderHook(*session.Environment) string
	Source() platform.Source
}

var newBootstrap = func(out io.Writer, platformID string) (bootstrapClient, error) {
	if platformID != "" {
		return app.NewForPlatform(out, platform.ID(platformID))
	}
	return app.NewForHost(out)
}

func init() {
	rootCmd.AddCommand(upCmd)

	upCmd.Flags().BoolVar(&upDryRun, "dry-run", false, "show what would be done without making changes")
}

func runUp(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	bootstrap, err := newBootstrap(os.Stdout, platformFlag)
	if err != nil {
		return err
	}

	plan, err := bootstrap.Plan(ctx, configPath)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	bootstrap.PrintPlan(plan)

	if plan.IsEmpty() {
		return nil
	}

	if upDryRun {
		fmt.Println("\n[Dry run - no changes made]")
		return nil
	}

	if !yesFlag && !confirm(os.Stdin, os.Stdout, "Proceed with bootstrap?") {
		return fmt.Errorf("aborted")
	}

	fmt.Println("\nBootstrapping...")

	results, env, err := bootstrap.Apply(ctx, plan, false)
	bootstrap.PrintResults(results)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	if err := env.Export(); err != nil {
		return err
	}

	if env.Len() > 0 {
		fmt.Println("\nTo load the session environment into your shell run:")
		fmt.Println("  eval \"$(espshell hook)\"")
	}
	return nil
}

// confirm prompts for a y/N answer on in, writing the prompt to out.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprintf(out, "\n%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
