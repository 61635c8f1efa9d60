package changelog

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Options are the per-invocation inputs of Generate.
type Options struct {
	// From and To are the user-supplied endpoints; empty means "resolve".
	From string
	To   string
	// RemoteName selects the remote used for hyperlinks (default "origin").
	RemoteName string
}

// Result is a generated document plus the non-fatal warnings raised on the way.
type Result struct {
	Document *Document
	Warnings []Warning
}

// Generator runs one changelog generation against a repository.
// A Generator holds no state between calls.
type Generator struct {
	Repo    Repository
	Grammar *Grammar
	Types   TypeTable
	// Logf receives debug output. Nil disables it.
	Logf func(format string, args ...any)
}

// NewGenerator creates a Generator with the built-in grammar and section table.
func NewGenerator(repo Repository) *Generator {
	return &Generator{
		Repo:    repo,
		Grammar: NewGrammar(),
		Types:   DefaultTypes(),
	}
}

// Generate resolves the range, reads the remote, extracts and groups the
// commits. Any fatal error is returned before a document is built.
func (g *Generator) Generate(opts Options) (*Result, error) {
	logf := g.logf()

	endpoints, warnings, err := NewResolver(g.Repo, logf).Resolve(opts.From, opts.To)
	if err != nil {
		return nil, err
	}

	remote, remoteWarnings, err := g.remote(opts.RemoteName)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, remoteWarnings...)

	commits, extractWarnings, err := NewExtractor(g.Repo, g.Grammar).Extract(endpoints.FromHash, endpoints.ToHash)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, extractWarnings...)
	logf("[changelog] extracted %d conventional commits", len(commits))

	types := g.Types
	if types == nil {
		types = DefaultTypes()
	}
	doc := &Document{
		Endpoints: endpoints,
		Remote:    remote,
		Sections:  Group(commits, types),
	}

	if doc.IsEmpty() {
		empty := &NoCommitsInRangeError{From: endpoints.From, To: endpoints.To}
		warnings = append(warnings, Warning{Kind: WarnNoCommits, Message: empty.Error()})
	}

	return &Result{Document: doc, Warnings: warnings}, nil
}

// Commits returns the extracted commits of a result in display order.
func (r *Result) Commits() []Commit {
	var out []Commit
	for _, s := range r.Document.Sections {
		out = append(out, s.Commits...)
	}
	return out
}

// remote looks up the configured remote. A missing or unsupported remote is
// a warning, never an error.
func (g *Generator) remote(name string) (*RemoteIdentity, []Warning, error) {
	if name == "" {
		name = DefaultRemote
	}

	url, ok, err := g.Repo.RemoteURL(name)
	if err != nil {
		return nil, nil, fmt.Errorf("reading remote %q: %w", name, err)
	}
	if !ok {
		return nil, []Warning{{
			Kind:    WarnNoRemote,
			Message: fmt.Sprintf("remote %q not found, links will not be generated", name),
		}}, nil
	}

	identity, err := NormalizeRemote(url)
	if err != nil {
		var unsupported *UnsupportedRemoteError
		if errors.As(err, &unsupported) {
			return nil, []Warning{{Kind: WarnUnsupportedRemote, Message: err.Error() + ", links will not be generated"}}, nil
		}
		return nil, nil, err
	}

	g.logf()("[changelog] remote %s -> %s", name, identity)
	return identity, nil, nil
}

func (g *Generator) logf() func(format string, args ...any) {
	if g.Logf == nil {
		return func(string, ...any) {}
	}
	return g.Logf
}

// WriteYAML writes the document as YAML.
func WriteYAML(d *Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}
