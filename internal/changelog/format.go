package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SectionStyle defines the color and icon for a section in terminal output.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps bucket keys to their terminal styling.
var sectionStyles = map[string]SectionStyle{
	BreakingKey: {Color: color.New(color.FgRed, color.Bold), Icon: "!"},
	"feat":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"fix":       {Color: color.New(color.FgYellow), Icon: "⚡"},
	"refactor":  {Color: color.New(color.FgBlue), Icon: "~"},
	"perf":      {Color: color.New(color.FgMagenta), Icon: "»"},
	"style":     {Color: color.New(color.FgCyan), Icon: "*"},
	"docs":      {Color: color.New(color.FgCyan), Icon: "¶"},
	"chore":     {Color: color.New(color.FgWhite), Icon: "·"},
}

var defaultSectionStyle = SectionStyle{Color: color.New(color.FgWhite), Icon: "-"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes a human-oriented preview of the document with
// color-coded section headers and wrapped commit lines.
func FormatTerminal(d *Document, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeRangeHeader(d, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if d.IsEmpty() {
		_, err := fmt.Fprintln(w, "\n  (no conventional commits in range)")
		return err
	}

	for _, s := range d.Sections {
		if err := writeSection(s, w, opts, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", s.Key, err)
		}
	}

	return nil
}

func writeRangeHeader(d *Document, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s...%s", d.Endpoints.From, d.Endpoints.To)
	if d.Remote != nil {
		header += " (" + d.Remote.String() + ")"
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeSection(s Section, w io.Writer, opts FormatOptions, width int) error {
	style, ok := sectionStyles[s.Key]
	if !ok {
		style = defaultSectionStyle
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", s.Title); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(s.Title)); err != nil {
			return err
		}
	}

	for _, c := range s.Commits {
		if err := writeCommit(c, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

func writeCommit(c Commit, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	names := make([]string, len(c.Authors))
	for i, a := range c.Authors {
		names[i] = a.Name
	}
	suffix := fmt.Sprintf(" (%s, %s)", c.Hash, JoinNames(names))

	if opts.Plain {
		text := c.Description
		if c.HasScope() {
			text = c.Scope + ": " + text
		}
		_, err := fmt.Fprintf(w, "%s%s%s\n", prefix, text, suffix)
		return err
	}

	scope := ""
	if c.HasScope() {
		scope = color.New(color.Bold).Sprint(c.Scope) + ": "
	}
	text := wrapText(c.Description+suffix, width-len(prefix)-utf8.RuneCountInString(c.Scope)-2, "    ")
	_, err := fmt.Fprintf(w, "%s%s%s\n", prefix, scope, text)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth runes, using indent for
// continuation lines. Lines break at the last space that fits, or mid-word
// between runes when there is none.
func wrapText(text string, maxWidth int, indent string) string {
	remaining := []rune(text)
	if maxWidth <= 0 || len(remaining) <= maxWidth {
		return text
	}

	var lines []string
	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = trimLeadingSpaces(remaining[breakPoint:])
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}

func trimLeadingSpaces(r []rune) []rune {
	for len(r) > 0 && r[0] == ' ' {
		r = r[1:]
	}
	return r
}
