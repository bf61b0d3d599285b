package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/espshell/espshell/internal/adapters/command"
	"github.com/espshell/espshell/internal/domain/platform"
	"github.com/espshell/espshell/internal/ports"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the external tools the bootstrap depends on",
	Long: `Doctor probes the external collaborators (rustup, cargo, espup) and
reports what is installed. It never changes anything.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorProbes lists the binaries the bootstrap shells out to. espup
// is optional at doctor time: the bootstrap installs through it but a
// missing espup only means the external bootstrap has not run yet.
var doctorProbes = []struct {
	binary   string
	required bool
}{
	{binary: "rustup", required: true},
	{binary: "cargo", required: true},
	{binary: "espup", required: false},
	{binary: "espflash", required: false},
}

var doctorRunner ports.CommandRunner = command.NewRealRunner()

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	fmt.Println("espshell doctor")
	fmt.Println()

	id, err := platform.Detect()
	if err != nil {
		fmt.Printf("  ✗ host platform: %v\n", err)
	} else {
		source, _ := platform.Resolve(id)
		fmt.Printf("  ✓ host platform: %s (%s)\n", id, source.Triple())
	}

	missing := 0
	for _, probe := range doctorProbes {
		version, err := probeVersion(ctx, probe.binary)
		switch {
		case err == nil:
			fmt.Printf("  ✓ %s: %s\n", probe.binary, version)
		case probe.required:
			missing++
			fmt.Printf("  ✗ %s: not found\n", probe.binary)
		default:
			fmt.Printf("  - %s: not found (installed during bootstrap)\n", probe.binary)
		}
	}

	fmt.Println()
	if missing > 0 {
		return fmt.Errorf("%d required tool(s) missing; install rustup first: https://rustup.rs", missing)
	}
	fmt.Println("All required tools are available. Run 'espshell up' to bootstrap.")
	return nil
}

func probeVersion(ctx context.Context, binary string) (string, error) {
	result, err := doctorRunner.Run(ctx, binary, "--version")
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("%s --version exited with code %d", binary, result.ExitCode)
	}
	line := strings.TrimSpace(result.Stdout)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return line, nil
}

