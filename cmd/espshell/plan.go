package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what the bootstrap would do",
	Long: `Plan checks the current state against the manifest and prints the
step sequence without making any changes.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	bootstrap, err := newBootstrap(os.Stdout, platformFlag)
	if err != nil {
		return err
	}

	plan, err := bootstrap.Plan(cmd.Context(), configPath)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	bootstrap.PrintPlan(plan)
	return nil
}
