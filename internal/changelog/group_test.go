package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByScope_StableWithUnscopedLast(t *testing.T) {
	t.Parallel()

	commits := []Commit{
		{Hash: "1", Scope: "b"},
		{Hash: "2"},
		{Hash: "3", Scope: "a"},
		{Hash: "4"},
	}

	SortByScope(commits)

	var hashes []string
	for _, c := range commits {
		hashes = append(hashes, c.Hash)
	}
	assert.Equal(t, []string{"3", "1", "2", "4"}, hashes)
}

func TestSortByScope_CaseSensitiveAndStable(t *testing.T) {
	t.Parallel()

	commits := []Commit{
		{Hash: "1", Scope: "api", Description: "z"},
		{Hash: "2", Scope: "Zeta"},
		{Hash: "3", Scope: "api", Description: "a"},
		{Hash: "4", Scope: "Alpha"},
	}

	SortByScope(commits)

	var hashes []string
	for _, c := range commits {
		hashes = append(hashes, c.Hash)
	}
	// Uppercase sorts before lowercase; equal scopes keep extraction order.
	assert.Equal(t, []string{"4", "2", "1", "3"}, hashes)
}

func TestBucketKey(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit Commit
		want   string
	}{
		"feat":              {commit: Commit{Type: "feat"}, want: "feat"},
		"breaking feat":     {commit: Commit{Type: "feat", Breaking: true}, want: BreakingKey},
		"breaking fix":      {commit: Commit{Type: "fix", Breaking: true}, want: BreakingKey},
		"unknown type kept": {commit: Commit{Type: "wip"}, want: "wip"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BucketKey(tt.commit))
		})
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	commits := []Commit{
		{Hash: "1", Type: "chore", Description: "bump deps"},
		{Hash: "2", Type: "fix", Description: "null check"},
		{Hash: "3", Type: "feat", Scope: "api", Description: "add endpoint"},
		{Hash: "4", Type: "feat", Breaking: true, Description: "drop v1"},
		{Hash: "5", Type: "wip", Description: "half done"},
		{Hash: "6", Type: "feat", Description: "unscoped"},
	}

	sections := Group(commits, DefaultTypes())

	var keys []string
	for _, s := range sections {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{BreakingKey, "feat", "fix", "chore"}, keys)

	require.Len(t, sections[0].Commits, 1)
	assert.Equal(t, "4", sections[0].Commits[0].Hash)
	assert.Equal(t, "Breaking Changes", sections[0].Title)
	assert.Equal(t, ":rocket:", sections[0].Emoji)

	require.Len(t, sections[1].Commits, 2)
	assert.Equal(t, "3", sections[1].Commits[0].Hash)
	assert.Equal(t, "6", sections[1].Commits[1].Hash)

	for _, s := range sections {
		for _, c := range s.Commits {
			assert.NotEqual(t, "wip", c.Type, "unknown types must not be rendered")
		}
	}
}

func TestGroup_NoCommits(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Group(nil, DefaultTypes()))
}

func TestTypeTable_With(t *testing.T) {
	t.Parallel()

	table := DefaultTypes().With(
		SectionType{Key: "build", Emoji: ":construction_worker:"},
		SectionType{Key: "ci", Title: "Continuous Integration"},
		SectionType{Key: "feat", Title: "Shadowed"},
		SectionType{Key: ""},
	)

	require.Len(t, table, len(DefaultTypes())+2)
	assert.Equal(t, SectionType{Key: "build", Title: "Build", Emoji: ":construction_worker:"}, table[8])
	assert.Equal(t, SectionType{Key: "ci", Title: "Continuous Integration"}, table[9])
	assert.Equal(t, "Features", table[1].Title)
	assert.Len(t, DefaultTypes(), 8, "With must not modify the receiver")

	sections := Group([]Commit{
		{Hash: "1", Type: "ci", Description: "cache modules"},
		{Hash: "2", Type: "chore", Description: "tidy"},
	}, table)
	require.Len(t, sections, 2)
	assert.Equal(t, "chore", sections[0].Key)
	assert.Equal(t, "ci", sections[1].Key)
}
