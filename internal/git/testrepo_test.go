package git

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// testRepo builds throwaway histories with go-git in a temp directory.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	tick int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (tr *testRepo) signature(name, email string) *object.Signature {
	tr.tick++
	return &object.Signature{
		Name:  name,
		Email: email,
		When:  epoch.Add(time.Duration(tr.tick) * time.Hour),
	}
}

// commit records an empty commit authored by Test.
func (tr *testRepo) commit(message string) plumbing.Hash {
	return tr.commitAs(message, "Test", "test@example.com")
}

func (tr *testRepo) commitAs(message, name, email string) plumbing.Hash {
	tr.t.Helper()

	h, err := tr.wt.Commit(message, &git.CommitOptions{
		Author:            tr.signature(name, email),
		AllowEmptyCommits: true,
	})
	require.NoError(tr.t, err)
	return h
}

func (tr *testRepo) tag(name string, h plumbing.Hash) {
	tr.t.Helper()

	_, err := tr.repo.CreateTag(name, h, nil)
	require.NoError(tr.t, err)
}

func (tr *testRepo) annotatedTag(name string, h plumbing.Hash) {
	tr.t.Helper()

	_, err := tr.repo.CreateTag(name, h, &git.CreateTagOptions{
		Tagger:  tr.signature("Releaser", "release@example.com"),
		Message: "release " + name,
	})
	require.NoError(tr.t, err)
}

func (tr *testRepo) remote(name, url string) {
	tr.t.Helper()

	_, err := tr.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(tr.t, err)
}

// orphan stores a parentless commit without moving HEAD.
func (tr *testRepo) orphan(message string) plumbing.Hash {
	tr.t.Helper()

	head, err := tr.repo.Head()
	require.NoError(tr.t, err)
	headCommit, err := tr.repo.CommitObject(head.Hash())
	require.NoError(tr.t, err)

	sig := tr.signature("Test", "test@example.com")
	c := &object.Commit{
		Author:    *sig,
		Committer: *sig,
		Message:   message,
		TreeHash:  headCommit.TreeHash,
	}
	obj := tr.repo.Storer.NewEncodedObject()
	require.NoError(tr.t, c.Encode(obj))
	h, err := tr.repo.Storer.SetEncodedObject(obj)
	require.NoError(tr.t, err)
	return h
}

// merge commits with the given parents.
func (tr *testRepo) merge(message string, parents ...plumbing.Hash) plumbing.Hash {
	tr.t.Helper()

	h, err := tr.wt.Commit(message, &git.CommitOptions{
		Author:            tr.signature("Test", "test@example.com"),
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	require.NoError(tr.t, err)
	return h
}

func (tr *testRepo) open() *Repository {
	tr.t.Helper()

	r, err := Open(tr.dir, OpenOptions{})
	require.NoError(tr.t, err)
	return r
}
