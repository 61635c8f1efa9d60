package changelog

import (
	"fmt"
	"strings"
	"time"
)

// Author is a commit author or co-author exactly as recorded in the commit.
type Author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Commit is a commit whose subject line matched the conventional-commit grammar.
// Authors always starts with the primary author, followed by co-authors in
// message order.
type Commit struct {
	Hash        string    `yaml:"hash"`
	AuthoredAt  time.Time `yaml:"date"`
	Emoji       string    `yaml:"emoji,omitempty"`
	Type        string    `yaml:"type"`
	Scope       string    `yaml:"scope,omitempty"`
	Breaking    bool      `yaml:"breaking"`
	Description string    `yaml:"description"`
	Authors     []Author  `yaml:"authors"`
}

// HasScope reports whether the commit declared a scope.
func (c Commit) HasScope() bool {
	return c.Scope != ""
}

// Header rebuilds the conventional-commit header, e.g. "feat(api)!: add endpoint".
func (c Commit) Header() string {
	var b strings.Builder
	if c.Emoji != "" {
		b.WriteString(c.Emoji)
		b.WriteString(" ")
	}
	b.WriteString(c.Type)
	if c.HasScope() {
		b.WriteString("(" + c.Scope + ")")
	}
	if c.Breaking {
		b.WriteString("!")
	}
	b.WriteString(": ")
	b.WriteString(c.Description)
	return b.String()
}

// String returns a multi-line view of the commit used by verbose output.
func (c Commit) String() string {
	authors := make([]string, len(c.Authors))
	for i, a := range c.Authors {
		authors[i] = a.String()
	}
	return fmt.Sprintf("Hash: %s\nBreaking: %t\nCommit: %s\nDate: %s\nAuthors: %s\n",
		c.Hash,
		c.Breaking,
		c.Header(),
		c.AuthoredAt.Format("2006-01-02 15:04:05"),
		strings.Join(authors, ", "),
	)
}

// Endpoints holds the two resolved range boundaries. From and To are the
// refs shown to readers (tag name, explicit ref, short hash or HEAD); the
// hash fields are the short hashes used to walk history.
type Endpoints struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	FromHash string `yaml:"from_hash"`
	ToHash   string `yaml:"to_hash"`
}

// RemoteIdentity is the host/namespace/repo triple of a supported remote URL.
type RemoteIdentity struct {
	Host      string `yaml:"host"`
	Namespace string `yaml:"namespace"`
	Repo      string `yaml:"repo"`
}

// BaseURL returns https://host/namespace/repo.
func (r RemoteIdentity) BaseURL() string {
	return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Namespace, r.Repo)
}

// CompareURL returns the web comparison link between two refs.
func (r RemoteIdentity) CompareURL(from, to string) string {
	return fmt.Sprintf("%s/compare/%s...%s", r.BaseURL(), from, to)
}

// CommitURL returns the web link for a single commit.
func (r RemoteIdentity) CommitURL(hash string) string {
	return fmt.Sprintf("%s/commit/%s", r.BaseURL(), hash)
}

func (r RemoteIdentity) String() string {
	return r.Host + "/" + r.Namespace + "/" + r.Repo
}

// Section is one rendered group of commits.
type Section struct {
	Key     string   `yaml:"key"`
	Title   string   `yaml:"title"`
	Emoji   string   `yaml:"emoji,omitempty"`
	Commits []Commit `yaml:"commits"`
}

// Document is everything the renderer needs: endpoints, the optional remote
// and the non-empty sections in display order.
type Document struct {
	Endpoints Endpoints       `yaml:"endpoints"`
	Remote    *RemoteIdentity `yaml:"remote,omitempty"`
	Sections  []Section       `yaml:"sections"`
}

// IsEmpty reports whether the document has no sections to render.
func (d *Document) IsEmpty() bool {
	return len(d.Sections) == 0
}

// CommitCount returns the number of rendered commits across all sections.
func (d *Document) CommitCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Commits)
	}
	return n
}

// WarningKind classifies a non-fatal condition found while generating.
type WarningKind string

const (
	WarnUntaggedHead      WarningKind = "untagged-head"
	WarnNoRemote          WarningKind = "no-remote"
	WarnUnsupportedRemote WarningKind = "unsupported-remote"
	WarnMalformedCoAuthor WarningKind = "malformed-co-author"
	WarnNoCommits         WarningKind = "no-commits"
)

// Warning is surfaced to the caller separately from the document body.
type Warning struct {
	Kind    WarningKind `yaml:"kind"`
	Message string      `yaml:"message"`
}

func (w Warning) String() string {
	return w.Message
}
