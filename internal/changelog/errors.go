package changelog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRef is returned by a Repository when a ref or hash cannot be resolved.
var ErrUnknownRef = errors.New("unknown ref")

// RefResolutionError reports a ref that could not be turned into a commit.
// It aborts generation.
type RefResolutionError struct {
	Ref string
	Err error
}

func (e *RefResolutionError) Error() string {
	return fmt.Sprintf("resolving ref %q: %v", e.Ref, e.Err)
}

func (e *RefResolutionError) Unwrap() error {
	return e.Err
}

// AmbiguousHistoryError is returned when the first-commit fallback is needed
// but the history has more than one parentless commit.
type AmbiguousHistoryError struct {
	Roots []string
}

func (e *AmbiguousHistoryError) Error() string {
	return fmt.Sprintf("history has %d root commits (%s); pass --from explicitly",
		len(e.Roots), strings.Join(e.Roots, ", "))
}

// NoCommitsInRangeError describes an empty range. Generation still succeeds
// with an empty document; the error is reported as a warning.
type NoCommitsInRangeError struct {
	From string
	To   string
}

func (e *NoCommitsInRangeError) Error() string {
	return fmt.Sprintf("no conventional commits between %s and %s", e.From, e.To)
}

// MalformedCoAuthorError is a Co-authored-by line that does not carry a
// "name <email>" pair. The trailer is skipped and the commit kept.
type MalformedCoAuthorError struct {
	Hash string
	Line string
}

func (e *MalformedCoAuthorError) Error() string {
	if e.Hash == "" {
		return fmt.Sprintf("malformed co-author trailer %q", e.Line)
	}
	return fmt.Sprintf("commit %s: malformed co-author trailer %q", e.Hash, e.Line)
}

// UnsupportedRemoteError is a remote URL that is neither
// git@host:namespace/repo.git nor https://host/namespace/repo.git.
// It only disables hyperlinks.
type UnsupportedRemoteError struct {
	URL string
}

func (e *UnsupportedRemoteError) Error() string {
	return fmt.Sprintf("unsupported remote URL %q", e.URL)
}
