package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// fixtureRepo is a throwaway repository built with go-git.
type fixtureRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	tick int
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &fixtureRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (f *fixtureRepo) commit(message, name, email string) plumbing.Hash {
	f.t.Helper()

	f.tick++
	h, err := f.wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  name,
			Email: email,
			When:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(f.tick) * time.Minute),
		},
		AllowEmptyCommits: true,
	})
	require.NoError(f.t, err)
	return h
}

func (f *fixtureRepo) tag(name string, h plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, h, nil)
	require.NoError(f.t, err)
}

func (f *fixtureRepo) remote(url string) {
	f.t.Helper()
	_, err := f.repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{url}})
	require.NoError(f.t, err)
}

func (f *fixtureRepo) writeConfig(content string) {
	f.t.Helper()
	path := filepath.Join(f.dir, ".tgit", "config.yml")
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
}

// releaseFixture has v1.0.0, two conventional commits, one plain commit and
// v1.1.0 on HEAD. It returns the short hashes of the feat and fix commits.
func releaseFixture(t *testing.T) (*fixtureRepo, string, string) {
	t.Helper()

	f := newFixtureRepo(t)
	f.commit("chore: init", "Test", "test@example.com")
	f.tag("v1.0.0", f.commit("chore: release 1.0.0", "Test", "test@example.com"))
	feat := f.commit("feat(api): add endpoint", "Alice", "alice@example.com")
	f.commit("Merge branch 'topic'", "Test", "test@example.com")
	fix := f.commit("fix: null check", "Bob", "bob@example.com")
	f.tag("v1.1.0", fix)
	return f, feat.String()[:7], fix.String()[:7]
}

// executeCLI runs rootCmd with args and returns stdout, stderr and the error.
// Tests using it cannot run in parallel because rootCmd is global.
func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	if err != nil {
		printError(&stderr, err)
	}
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
