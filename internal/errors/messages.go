package errors

import (
	"fmt"
	"strings"
)

// NotGitRepository reports a path outside any git repository.
func NotGitRepository(path string, err error) *CLIError {
	return Wrap(err, Prerequisite,
		fmt.Sprintf("%s is not inside a git repository", path),
		"Run tgit from within a repository, or pass its path: tgit changelog <path>",
		"Initialize one with: git init",
	)
}

// UnknownRef reports a --from/--to value that names no commit.
func UnknownRef(ref string, err error) *CLIError {
	return Wrap(err, Argument,
		fmt.Sprintf("cannot resolve ref %q", ref),
		"List tags with: git tag --sort=creatordate",
		"Pass a tag, branch or commit hash with --from/--to",
	).WithUsage("tgit changelog --from <ref> --to <ref>")
}

// AmbiguousHistory reports several root commits when no tag marks the start.
func AmbiguousHistory(roots []string, err error) *CLIError {
	return Wrap(err, Runtime,
		fmt.Sprintf("repository has %d root commits", len(roots)),
		"Pass an explicit start point: tgit changelog --from <ref>",
		"Or tag a release so the latest tag can be used",
	)
}

// EmptyRepository reports a repository without commits.
func EmptyRepository(path string) *CLIError {
	return New(Prerequisite,
		fmt.Sprintf("repository at %s has no commits", path),
		"Create a commit first: git commit --allow-empty -m \"chore: init\"",
	)
}

// ConfigFileNotFound reports a missing --config file.
func ConfigFileNotFound(path string) *CLIError {
	return New(Configuration,
		fmt.Sprintf("config file not found: %s", path),
		"Check the path passed to --config",
		"Print a starting point with: tgit config template",
	)
}

// ConfigLoadError reports a config source that failed to parse or validate.
func ConfigLoadError(err error) *CLIError {
	return Wrap(err, Configuration,
		"invalid configuration",
		"Show the effective configuration with: tgit config show",
		"List the known keys with: tgit config keys",
	)
}

// InvalidFlagValue reports a flag value outside its allowed set.
func InvalidFlagValue(flag, value string, allowed []string) *CLIError {
	return New(Argument,
		fmt.Sprintf("invalid value %q for --%s", value, flag),
		fmt.Sprintf("Use one of: %s", strings.Join(allowed, ", ")),
	).WithUsage(fmt.Sprintf("--%s %s", flag, strings.Join(allowed, "|")))
}

// GenerationFailed wraps an unexpected failure while reading history.
func GenerationFailed(path string, err error) *CLIError {
	return Wrap(err, Runtime,
		fmt.Sprintf("generating changelog for %s", path),
		"Re-run with --debug to see the git operations performed",
	)
}

// OutputFailed wraps a failure writing the rendered changelog.
func OutputFailed(err error) *CLIError {
	return Wrap(err, Runtime, "writing changelog")
}
