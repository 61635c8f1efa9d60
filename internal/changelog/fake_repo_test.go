package changelog

import (
	"fmt"
	"time"
)

// fakeRepo is an in-memory Repository. Refs map symbolic names and short
// hashes to full hashes; ranges maps "from..to" to the commits returned.
type fakeRepo struct {
	tags    []Tag
	head    string
	refs    map[string]string
	roots   []string
	ranges  map[string][]RawCommit
	remotes map[string]string

	tagsErr   error
	rangeErr  error
	remoteErr error
}

func newFakeRepo(head string) *fakeRepo {
	return &fakeRepo{
		head:    head,
		refs:    map[string]string{"HEAD": head},
		ranges:  make(map[string][]RawCommit),
		remotes: make(map[string]string),
	}
}

func (f *fakeRepo) addTag(name, hash string, at time.Time) {
	f.tags = append(f.tags, Tag{Name: name, Hash: hash, CommittedAt: at})
	f.refs[name] = hash
}

func (f *fakeRepo) Tags() ([]Tag, error) {
	return f.tags, f.tagsErr
}

func (f *fakeRepo) Head() (string, error) {
	if f.head == "" {
		return "", ErrUnknownRef
	}
	return f.head, nil
}

func (f *fakeRepo) ShortHash(ref string) (string, error) {
	if full, ok := f.refs[ref]; ok {
		return short(full), nil
	}
	for _, full := range f.refs {
		if full == ref || short(full) == ref {
			return short(full), nil
		}
	}
	for _, root := range f.roots {
		if root == ref || short(root) == ref {
			return short(root), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownRef, ref)
}

func (f *fakeRepo) CommitsBetween(from, to string) ([]RawCommit, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	return f.ranges[from+".."+to], nil
}

func (f *fakeRepo) RemoteURL(name string) (string, bool, error) {
	if f.remoteErr != nil {
		return "", false, f.remoteErr
	}
	url, ok := f.remotes[name]
	return url, ok, nil
}

func (f *fakeRepo) RootCommits() ([]string, error) {
	return f.roots, nil
}

func short(full string) string {
	if len(full) > 7 {
		return full[:7]
	}
	return full
}

// hashOf builds a deterministic 40-character hash from a seed character.
func hashOf(seed string) string {
	h := ""
	for len(h) < 40 {
		h += seed
	}
	return h[:40]
}

func rawCommit(hash, message, name, email string, at time.Time) RawCommit {
	return RawCommit{
		Hash:        hash,
		Message:     message,
		AuthorName:  name,
		AuthorEmail: email,
		CommittedAt: at,
	}
}

var baseTime = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
