package main

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espshell/espshell/internal/domain/session"
)

func TestHookCmd_IsSubcommandOfRoot(t *testing.T) {
	t.Parallel()

	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "hook" {
			found = true
			break
		}
	}
	assert.True(t, found, "hook should be a subcommand of root")
}

func TestRunHook_ReplaysSessionSteps(t *testing.T) {
	env := session.NewEnvironment()
	env.SetVar("LIBCLANG_PATH", "/opt/esp/lib")

	fake := newFakeBootstrapClient(nil, nil, nil)
	fake.hookEnv = env
	restore := overrideNewBootstrap(fake)
	defer restore()

	err := runHook(&cobra.Command{}, nil)
	require.NoError(t, err)
	assert.True(t, fake.hookCalled)
	assert.False(t, fake.applyCalled, "hook must not run the full bootstrap")
}

func TestRunHook_FailurePropagates(t *testing.T) {
	fake := newFakeBootstrapClient(nil, nil, nil)
	fake.hookErr = errors.New("environment script not found")
	restore := overrideNewBootstrap(fake)
	defer restore()

	err := runHook(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook failed")
}
