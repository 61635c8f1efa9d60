package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/tgit/internal/errors"
)

// Exit codes for the tgit CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure while reading history
	ExitFailure = 1

	// ExitConfigError indicates invalid or missing configuration
	ExitConfigError = 2

	// ExitInvalidArguments indicates invalid command arguments, including unknown refs
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates a prerequisite is missing (no repository, no commits)
	ExitMissingDependencies = 4
)

// ExitError carries an exit code for an error that was already reported.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigError
	case clierrors.Prerequisite:
		return ExitMissingDependencies
	default:
		return ExitFailure
	}
}
