package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderOptions controls markdown output.
type RenderOptions struct {
	// SectionEmoji prefixes section titles with their emoji shortcode.
	SectionEmoji bool
}

// RenderMarkdown writes the document as markdown: a heading naming the "to"
// ref, the comparison line, then one level-3 section per non-empty bucket.
//
// The output is deterministic for a given document.
func RenderMarkdown(d *Document, w io.Writer, opts RenderOptions) error {
	if err := renderHeader(d, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for _, s := range d.Sections {
		if err := renderSection(d, &s, w, opts); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Key, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(d *Document, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(d, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderHeader(d *Document, w io.Writer) error {
	from, to := d.Endpoints.From, d.Endpoints.To
	compare := fmt.Sprintf("%s...%s", from, to)
	if d.Remote != nil {
		compare = fmt.Sprintf("[%s](%s)", compare, d.Remote.CompareURL(from, to))
	}
	_, err := fmt.Fprintf(w, "## %s\n\n%s\n\n", to, compare)
	return err
}

func renderSection(d *Document, s *Section, w io.Writer, opts RenderOptions) error {
	if _, err := fmt.Fprintf(w, "### %s\n\n", sectionTitle(s, opts)); err != nil {
		return err
	}

	for _, c := range s.Commits {
		if _, err := io.WriteString(w, formatCommitLine(d, c)+"\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}

func sectionTitle(s *Section, opts RenderOptions) string {
	if opts.SectionEmoji && s.Emoji != "" {
		return s.Emoji + " " + s.Title
	}
	return s.Title
}

// formatCommitLine renders one bullet:
//
//   - **scope**: description - authors in hash
func formatCommitLine(d *Document, c Commit) string {
	hash := c.Hash
	if d.Remote != nil {
		hash = fmt.Sprintf("[%s](%s)", c.Hash, d.Remote.CommitURL(c.Hash))
	}

	links := make([]string, len(c.Authors))
	for i, a := range c.Authors {
		links[i] = fmt.Sprintf("[%s](mailto:%s)", a.Name, a.Email)
	}

	if c.HasScope() {
		return fmt.Sprintf("- **%s**: %s - %s in %s", c.Scope, c.Description, JoinNames(links), hash)
	}
	return fmt.Sprintf("- %s - %s in %s", c.Description, JoinNames(links), hash)
}

// JoinNames joins names as "A", "A and B" or "A, B, and C".
func JoinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
