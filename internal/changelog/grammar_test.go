package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_Parse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message string
		want    Header
		wantOK  bool
	}{
		"type and description": {
			message: "fix: null check",
			want:    Header{Type: "fix", Description: "null check"},
			wantOK:  true,
		},
		"scoped": {
			message: "feat(api): add endpoint",
			want:    Header{Type: "feat", Scope: "api", Description: "add endpoint"},
			wantOK:  true,
		},
		"breaking marker": {
			message: "feat(api)!: drop v1 routes",
			want:    Header{Type: "feat", Scope: "api", Breaking: true, Description: "drop v1 routes"},
			wantOK:  true,
		},
		"breaking without scope": {
			message: "refactor!: rename package",
			want:    Header{Type: "refactor", Breaking: true, Description: "rename package"},
			wantOK:  true,
		},
		"shortcode emoji": {
			message: ":sparkles: feat(ui): dark mode",
			want:    Header{Emoji: ":sparkles:", Type: "feat", Scope: "ui", Description: "dark mode"},
			wantOK:  true,
		},
		"glyph emoji": {
			message: "🐛 fix: crash on start",
			want:    Header{Emoji: "🐛", Type: "fix", Description: "crash on start"},
			wantOK:  true,
		},
		"glyph emoji without space": {
			message: "✨feat: sparkle",
			want:    Header{Emoji: "✨", Type: "feat", Description: "sparkle"},
			wantOK:  true,
		},
		"uppercase type is lowercased": {
			message: "Feat: shout",
			want:    Header{Type: "feat", Description: "shout"},
			wantOK:  true,
		},
		"only first line is considered": {
			message: "fix: first line\n\nbody mentions feat: nothing",
			want:    Header{Type: "fix", Description: "first line"},
			wantOK:  true,
		},
		"crlf line ending": {
			message: "docs: readme\r\n",
			want:    Header{Type: "docs", Description: "readme"},
			wantOK:  true,
		},
		"plain message rejected": {
			message: "Merge branch 'main' into feature",
		},
		"missing space after colon rejected": {
			message: "fix:no space",
		},
		"conventional subject on second line rejected": {
			message: "WIP\nfeat: hidden",
		},
		"digits in type rejected": {
			message: "v2: bump",
		},
		"empty description rejected": {
			message: "fix: ",
		},
		"empty message rejected": {
			message: "",
		},
	}

	g := NewGrammar()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := g.Parse(tt.message)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCoAuthors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message       string
		wantAuthors   []Author
		wantMalformed []string
	}{
		"no trailers": {
			message: "feat: thing\n\nsome body",
		},
		"single trailer": {
			message:     "feat: thing\n\nCo-authored-by: Jane Doe <jane@example.com>",
			wantAuthors: []Author{{Name: "Jane Doe", Email: "jane@example.com"}},
		},
		"multiple trailers keep document order": {
			message: "fix: x\n\nCo-authored-by: B <b@example.com>\nCo-authored-by: A <a@example.com>\n",
			wantAuthors: []Author{
				{Name: "B", Email: "b@example.com"},
				{Name: "A", Email: "a@example.com"},
			},
		},
		"prefix is case-insensitive": {
			message:     "fix: x\n\nCO-AUTHORED-BY: Sam <sam@example.com>",
			wantAuthors: []Author{{Name: "Sam", Email: "sam@example.com"}},
		},
		"indented trailer": {
			message:     "fix: x\n\n   Co-authored-by: Sam <sam@example.com>  ",
			wantAuthors: []Author{{Name: "Sam", Email: "sam@example.com"}},
		},
		"malformed trailer is reported": {
			message:       "fix: x\n\nCo-authored-by: nobody\nCo-authored-by: Ok <ok@example.com>",
			wantAuthors:   []Author{{Name: "Ok", Email: "ok@example.com"}},
			wantMalformed: []string{"Co-authored-by: nobody"},
		},
		"email only is malformed": {
			message:       "fix: x\n\nCo-authored-by: <ghost@example.com>",
			wantMalformed: []string{"Co-authored-by: <ghost@example.com>"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			authors, malformed := ParseCoAuthors(tt.message)
			assert.Equal(t, tt.wantAuthors, authors)
			assert.Equal(t, tt.wantMalformed, malformed)
		})
	}
}

func TestCommit_Header(t *testing.T) {
	t.Parallel()

	c := Commit{Emoji: ":zap:", Type: "perf", Scope: "db", Breaking: true, Description: "batch writes"}
	assert.Equal(t, ":zap: perf(db)!: batch writes", c.Header())

	h, ok := NewGrammar().Parse(c.Header())
	require.True(t, ok)
	assert.Equal(t, Header{Emoji: ":zap:", Type: "perf", Scope: "db", Breaking: true, Description: "batch writes"}, h)
}

func TestCommit_String(t *testing.T) {
	t.Parallel()

	c := Commit{
		Hash:        "abc1234",
		AuthoredAt:  baseTime,
		Type:        "fix",
		Description: "null check",
		Authors:     []Author{{Name: "A", Email: "a@example.com"}, {Name: "B", Email: "b@example.com"}},
	}

	got := c.String()
	assert.Contains(t, got, "Hash: abc1234\n")
	assert.Contains(t, got, "Breaking: false\n")
	assert.Contains(t, got, "Commit: fix: null check\n")
	assert.Contains(t, got, "Date: 2026-01-15 10:00:00\n")
	assert.Contains(t, got, "Authors: A <a@example.com>, B <b@example.com>\n")
}
