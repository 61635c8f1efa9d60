// Package git reads repository history for tgit using the go-git library.
// It never shells out to the git CLI and never writes to the repository.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when a path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// debugLogger receives "[git]"-prefixed trace lines. Nil disables tracing.
var debugLogger func(format string, args ...any)

// SetDebugLogger installs the trace logger for this package. Pass nil to disable it.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// locate opens the repository containing path, walking up to the directory
// holding .git. An empty path means the working directory.
func locate(path string) (*git.Repository, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		path = wd
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		logDebug("[git] no repository above %s", path)
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
	case err != nil:
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] opened repository containing %s", path)
	return repo, nil
}

// RepositoryRoot returns the absolute worktree root of the repository
// containing path. Project configuration is read relative to it.
func RepositoryRoot(path string) (string, error) {
	repo, err := locate(path)
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			return "", fmt.Errorf("resolving %s: %w", path, absErr)
		}
		logDebug("[git] %s is a bare repository", abs)
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()
	logDebug("[git] repository root: %s", root)
	return root, nil
}
