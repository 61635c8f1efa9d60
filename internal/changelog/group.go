package changelog

import (
	"sort"
	"strings"
)

// BreakingKey is the bucket every breaking commit lands in, whatever its type.
const BreakingKey = "breaking"

// SectionType describes one renderable bucket.
type SectionType struct {
	Key   string
	Title string
	Emoji string
}

// TypeTable is the ordered list of buckets that get rendered. Commits whose
// bucket is not in the table are grouped but never shown.
type TypeTable []SectionType

// DefaultTypes returns the built-in section order.
func DefaultTypes() TypeTable {
	return TypeTable{
		{Key: BreakingKey, Title: "Breaking Changes", Emoji: ":rocket:"},
		{Key: "feat", Title: "Features", Emoji: ":sparkles:"},
		{Key: "fix", Title: "Fixes", Emoji: ":bug:"},
		{Key: "refactor", Title: "Refactors", Emoji: ":art:"},
		{Key: "perf", Title: "Performance Improvements", Emoji: ":zap:"},
		{Key: "style", Title: "Styles", Emoji: ":lipstick:"},
		{Key: "docs", Title: "Documentation", Emoji: ":memo:"},
		{Key: "chore", Title: "Chores", Emoji: ":wrench:"},
	}
}

// With returns a copy of t with extra appended after the existing entries.
// Keys already present are ignored so built-in titles cannot be shadowed.
func (t TypeTable) With(extra ...SectionType) TypeTable {
	out := make(TypeTable, len(t), len(t)+len(extra))
	copy(out, t)
	for _, e := range extra {
		key := strings.ToLower(e.Key)
		if key == "" || out.Has(key) {
			continue
		}
		if e.Title == "" {
			e.Title = strings.ToUpper(key[:1]) + key[1:]
		}
		e.Key = key
		out = append(out, e)
	}
	return out
}

// Has reports whether key is a rendered bucket.
func (t TypeTable) Has(key string) bool {
	for _, s := range t {
		if s.Key == key {
			return true
		}
	}
	return false
}

// BucketKey returns the bucket a commit belongs to.
func BucketKey(c Commit) string {
	if c.Breaking {
		return BreakingKey
	}
	return c.Type
}

// Bucket groups commits by BucketKey, keeping extraction order inside each bucket.
func Bucket(commits []Commit) map[string][]Commit {
	buckets := make(map[string][]Commit)
	for _, c := range commits {
		key := BucketKey(c)
		buckets[key] = append(buckets[key], c)
	}
	return buckets
}

// SortByScope orders commits by scope ascending with unscoped commits last.
// The sort is stable: equal scopes keep their extraction order.
func SortByScope(commits []Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		a, b := commits[i], commits[j]
		if a.HasScope() != b.HasScope() {
			return a.HasScope()
		}
		return a.Scope < b.Scope
	})
}

// Group buckets commits and returns the non-empty sections in table order.
func Group(commits []Commit, types TypeTable) []Section {
	buckets := Bucket(commits)

	var sections []Section
	for _, st := range types {
		bucket := buckets[st.Key]
		if len(bucket) == 0 {
			continue
		}
		SortByScope(bucket)
		sections = append(sections, Section{
			Key:     st.Key,
			Title:   st.Title,
			Emoji:   st.Emoji,
			Commits: bucket,
		})
	}
	return sections
}
