// Package cli tests root command and global flags for tgit.
// Related: internal/cli/root.go
// Tags: cli, root, commands, global-flags

package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ariel-frischer/tgit/internal/build"
	clierrors "github.com/ariel-frischer/tgit/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "tgit", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag exists":  {flagName: "config"},
		"debug flag exists":   {flagName: "debug"},
		"verbose flag exists": {flagName: "verbose", shorthand: "v"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			if assert.NotNil(t, flag, "Flag %s should exist", tt.flagName) {
				assert.Equal(t, tt.shorthand, flag.Shorthand)
			}
		})
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	groups := map[string]bool{}
	for _, g := range rootCmd.Groups() {
		groups[g.ID] = true
	}
	assert.True(t, groups[GroupChangelog])
	assert.True(t, groups[GroupSetup])

	for _, cmd := range rootCmd.Commands() {
		switch cmd.Name() {
		case "changelog":
			assert.Equal(t, GroupChangelog, cmd.GroupID)
		case "version", "config":
			assert.Equal(t, GroupSetup, cmd.GroupID)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":           {err: nil, want: ExitSuccess},
		"plain error":   {err: errors.New("boom"), want: ExitFailure},
		"exit error":    {err: NewExitError(ExitInvalidArguments), want: ExitInvalidArguments},
		"argument":      {err: clierrors.New(clierrors.Argument, "bad"), want: ExitInvalidArguments},
		"configuration": {err: clierrors.New(clierrors.Configuration, "bad"), want: ExitConfigError},
		"prerequisite":  {err: clierrors.New(clierrors.Prerequisite, "missing"), want: ExitMissingDependencies},
		"runtime":       {err: clierrors.New(clierrors.Runtime, "failed"), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"plain":      {err: errors.New("boom"), want: "Error: boom\n"},
		"exit only":  {err: NewExitError(ExitFailure), want: ""},
		"structured": {err: clierrors.New(clierrors.Prerequisite, "no repo", "git init"), want: "no repo"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestUnknownFlag_IsArgumentError(t *testing.T) {
	_, _, err := executeCLI(t, "changelog", "--nope")
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestDebugFlag(t *testing.T) {
	f, _, _ := releaseFixture(t)

	_, stderr, err := executeCLI(t, "--debug", "changelog", f.dir)
	assert.NoError(t, err)
	assert.Contains(t, stderr, "[debug] [git]")
	assert.Contains(t, stderr, "[debug] [changelog] HEAD is tagged")
	assert.Contains(t, stderr, "[debug] [changelog] "+f.dir+": 2 commits in 2 sections")

	_, stderr, err = executeCLI(t, "changelog", f.dir)
	assert.NoError(t, err)
	assert.NotContains(t, stderr, "[debug]")
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := executeCLI(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, build.Info()+"\n", stdout)
}
