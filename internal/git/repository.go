package git

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ariel-frischer/tgit/internal/changelog"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultAbbrev is the minimum length of abbreviated hashes, matching git's default.
const DefaultAbbrev = 7

// OpenOptions configures Open.
type OpenOptions struct {
	// MinAbbrev is the minimum abbreviated hash length (default 7, max 40).
	// Abbreviations grow past it when a shorter prefix would be ambiguous.
	MinAbbrev int
}

// Repository is a read-only view of a git repository that satisfies
// changelog.Repository.
type Repository struct {
	repo      *git.Repository
	minAbbrev int

	indexOnce sync.Once
	index     []string
	indexErr  error
}

var _ changelog.Repository = (*Repository)(nil)

// Open opens the repository containing path.
func Open(path string, opts OpenOptions) (*Repository, error) {
	repo, err := locate(path)
	if err != nil {
		return nil, err
	}
	return New(repo, opts), nil
}

// New wraps an already opened go-git repository.
func New(repo *git.Repository, opts OpenOptions) *Repository {
	abbrev := opts.MinAbbrev
	if abbrev <= 0 {
		abbrev = DefaultAbbrev
	}
	if abbrev > 40 {
		abbrev = 40
	}
	return &Repository{repo: repo, minAbbrev: abbrev}
}

// Tags lists all tags peeled to their target commit. Tags that do not
// point at a commit are skipped.
func (r *Repository) Tags() ([]changelog.Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []changelog.Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := r.peel(ref.Hash())
		if err != nil {
			logDebug("[git] skipping tag %s: %v", ref.Name().Short(), err)
			return nil
		}
		tags = append(tags, changelog.Tag{
			Name:        ref.Name().Short(),
			Hash:        commit.Hash.String(),
			CommittedAt: commit.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] Tags: found %d tags", len(tags))
	return tags, nil
}

// peel returns the commit a lightweight or annotated tag points at.
func (r *Repository) peel(h plumbing.Hash) (*object.Commit, error) {
	if commit, err := r.repo.CommitObject(h); err == nil {
		return commit, nil
	}

	tag, err := r.repo.TagObject(h)
	if err != nil {
		return nil, fmt.Errorf("object %s is neither a commit nor a tag: %w", h, err)
	}
	return tag.Commit()
}

// Head returns the full hash of the commit HEAD points at.
func (r *Repository) Head() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: HEAD: %v", changelog.ErrUnknownRef, err)
	}
	return head.Hash().String(), nil
}

// ShortHash resolves ref (tag, branch, HEAD, full or abbreviated hash) and
// returns the shortest unique abbreviation of its commit hash.
func (r *Repository) ShortHash(ref string) (string, error) {
	h, err := r.resolve(ref)
	if err != nil {
		return "", err
	}
	short, err := r.abbrev(h)
	if err != nil {
		return "", err
	}
	logDebug("[git] ShortHash(%s): %s", ref, short)
	return short, nil
}

func (r *Repository) resolve(ref string) (plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: %s: %v", changelog.ErrUnknownRef, ref, err)
	}
	return *h, nil
}

// CommitsBetween lists commits reachable from to and not from from, newest
// first by committer time.
func (r *Repository) CommitsBetween(from, to string) ([]changelog.RawCommit, error) {
	fromHash, err := r.resolve(from)
	if err != nil {
		return nil, err
	}
	toHash, err := r.resolve(to)
	if err != nil {
		return nil, err
	}

	excluded, err := r.ancestors(fromHash)
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", to, err)
	}
	defer iter.Close()

	var commits []changelog.RawCommit
	err = iter.ForEach(func(c *object.Commit) error {
		if excluded[c.Hash] {
			return nil
		}
		short, err := r.abbrev(c.Hash)
		if err != nil {
			return err
		}
		commits = append(commits, changelog.RawCommit{
			Hash:        short,
			Message:     c.Message,
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			CommittedAt: c.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", to, err)
	}

	logDebug("[git] CommitsBetween(%s, %s): %d commits", from, to, len(commits))
	return commits, nil
}

// ancestors returns the set of commits reachable from h, h included.
func (r *Repository) ancestors(h plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: h})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", h, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", h, err)
	}
	return seen, nil
}

// RemoteURL returns the first URL of the named remote. When that remote is
// missing but exactly one remote is configured, that one is used instead.
func (r *Repository) RemoteURL(name string) (string, bool, error) {
	remote, err := r.repo.Remote(name)
	if errors.Is(err, git.ErrRemoteNotFound) {
		remotes, listErr := r.repo.Remotes()
		if listErr != nil {
			return "", false, fmt.Errorf("listing remotes: %w", listErr)
		}
		if len(remotes) != 1 {
			logDebug("[git] RemoteURL: remote %q not found (%d remotes configured)", name, len(remotes))
			return "", false, nil
		}
		remote = remotes[0]
		logDebug("[git] RemoteURL: remote %q not found, using %q", name, remote.Config().Name)
	} else if err != nil {
		return "", false, fmt.Errorf("reading remote %q: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", false, nil
	}
	return urls[0], true, nil
}

// RootCommits returns the full hashes of the parentless commits reachable
// from HEAD. An empty repository has none.
func (r *Repository) RootCommits() ([]string, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var roots []string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.NumParents() == 0 {
			roots = append(roots, c.Hash.String())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	logDebug("[git] RootCommits: %d", len(roots))
	return roots, nil
}

// abbrev returns the shortest prefix of h, at least minAbbrev long, that no
// other object in the repository shares.
func (r *Repository) abbrev(h plumbing.Hash) (string, error) {
	r.indexOnce.Do(func() {
		r.index, r.indexErr = r.buildIndex()
	})
	if r.indexErr != nil {
		return "", r.indexErr
	}
	return uniquePrefix(r.index, h.String(), r.minAbbrev), nil
}

// buildIndex collects every object hash, sorted and deduplicated.
func (r *Repository) buildIndex() ([]string, error) {
	iter, err := r.repo.Storer.IterEncodedObjects(plumbing.AnyObject)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	defer iter.Close()

	var hashes []string
	err = iter.ForEach(func(obj plumbing.EncodedObject) error {
		hashes = append(hashes, obj.Hash().String())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}

	sort.Strings(hashes)
	hashes = dedupSorted(hashes)
	logDebug("[git] indexed %d objects for abbreviation", len(hashes))
	return hashes, nil
}

// uniquePrefix returns the shortest prefix of full that is at least min
// characters long and not shared with its neighbours in the sorted index.
func uniquePrefix(index []string, full string, min int) string {
	n := min
	i := sort.SearchStrings(index, full)
	next := i
	if i < len(index) && index[i] == full {
		next = i + 1
	}
	for _, j := range []int{i - 1, next} {
		if j < 0 || j >= len(index) {
			continue
		}
		if l := commonPrefixLen(index[j], full) + 1; l > n {
			n = l
		}
	}

	if n > len(full) {
		n = len(full)
	}
	return full[:n]
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func dedupSorted(s []string) []string {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
