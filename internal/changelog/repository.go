package changelog

import "time"

// Tag is a tag name peeled to the commit it points at. Hash is the full
// hash of that commit.
type Tag struct {
	Name        string
	Hash        string
	CommittedAt time.Time
}

// RawCommit is a commit as read from history, before grammar matching.
// Hash is already abbreviated to its shortest unique form.
type RawCommit struct {
	Hash        string
	Message     string
	AuthorName  string
	AuthorEmail string
	CommittedAt time.Time
}

// Repository is the version-control collaborator the engine reads from.
// Implementations must not mutate the repository.
type Repository interface {
	// Tags lists every tag with its target commit and that commit's timestamp.
	Tags() ([]Tag, error)
	// Head returns the full hash of the current tip.
	Head() (string, error)
	// ShortHash resolves a ref or hash to its shortest unique abbreviation.
	// Unresolvable refs yield an error wrapping ErrUnknownRef.
	ShortHash(ref string) (string, error)
	// CommitsBetween lists commits reachable from to and not from from,
	// newest first.
	CommitsBetween(from, to string) ([]RawCommit, error)
	// RemoteURL returns the URL of the named remote. ok is false when no
	// such remote is configured.
	RemoteURL(name string) (url string, ok bool, err error)
	// RootCommits returns the hashes of all parentless commits reachable from HEAD.
	RootCommits() ([]string, error)
}
