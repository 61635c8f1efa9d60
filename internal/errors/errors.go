// Package errors provides structured error handling for the tgit CLI.
// Every user-facing failure is a CLIError: a category that selects the exit
// code, a message, and hints telling the user what to do next.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies a CLIError.
type ErrorCategory int

const (
	// Argument errors come from bad flags, arguments or refs.
	Argument ErrorCategory = iota
	// Configuration errors come from config files, env or overrides.
	Configuration
	// Prerequisite errors mean the environment is not usable, e.g. no repository.
	Prerequisite
	// Runtime errors are failures while reading history or writing output.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is a categorized error with next-step hints.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Hints are printed under "To fix this:".
	Hints []string
	// Usage is the expected command line, shown for argument errors.
	Usage string
	Cause error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WithUsage sets the usage line and returns e.
func (e *CLIError) WithUsage(usage string) *CLIError {
	e.Usage = usage
	return e
}

// New creates a CLIError without a cause.
func New(category ErrorCategory, message string, hints ...string) *CLIError {
	return &CLIError{Category: category, Message: message, Hints: hints}
}

// Wrap attaches a category and hints to err. A non-empty message is
// prepended to err's own text. Wrap returns nil for a nil err.
func Wrap(err error, category ErrorCategory, message string, hints ...string) *CLIError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if message != "" {
		msg = fmt.Sprintf("%s: %v", message, err)
	}
	return &CLIError{Category: category, Message: msg, Hints: hints, Cause: err}
}

// IsCLIError reports whether err's chain contains a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
