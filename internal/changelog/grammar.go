package changelog

import (
	"regexp"
	"strings"
)

// headerPattern matches a conventional-commit subject line with an optional
// leading emoji (":shortcode:" or a single glyph).
const headerPattern = `(?i)^(?P<emoji>:[\w+-]+:|[\x{1F300}-\x{1F5FF}\x{1F600}-\x{1F64F}\x{1F680}-\x{1F6FF}\x{2600}-\x{2B55}]\x{FE0F}?)?\s*` +
	`(?P<type>[a-z]+)(?:\((?P<scope>[^()]+)\))?(?P<breaking>!)?: (?P<description>.+)$`

const coAuthorPrefix = "co-authored-by:"

var coAuthorPattern = regexp.MustCompile(`(?i)^co-authored-by:\s*(?P<name>\S.*?)\s*<(?P<email>[^<>\s]+)>\s*$`)

// Header is the structured form of a conventional-commit subject line.
type Header struct {
	Emoji       string
	Type        string
	Scope       string
	Breaking    bool
	Description string
}

// Grammar classifies commit messages. The zero value is not usable; build
// one with NewGrammar.
type Grammar struct {
	header      *regexp.Regexp
	emoji       int
	typ         int
	scope       int
	breaking    int
	description int
}

// NewGrammar compiles the conventional-commit header grammar.
func NewGrammar() *Grammar {
	re := regexp.MustCompile(headerPattern)
	return &Grammar{
		header:      re,
		emoji:       re.SubexpIndex("emoji"),
		typ:         re.SubexpIndex("type"),
		scope:       re.SubexpIndex("scope"),
		breaking:    re.SubexpIndex("breaking"),
		description: re.SubexpIndex("description"),
	}
}

// Parse matches the first line of message. Later lines are never scanned,
// so a message whose subject does not match is rejected.
func (g *Grammar) Parse(message string) (Header, bool) {
	m := g.header.FindStringSubmatch(firstLine(message))
	if m == nil {
		return Header{}, false
	}

	return Header{
		Emoji:       m[g.emoji],
		Type:        strings.ToLower(m[g.typ]),
		Scope:       m[g.scope],
		Breaking:    m[g.breaking] != "",
		Description: m[g.description],
	}, true
}

// ParseCoAuthors scans every line of message for Co-authored-by trailers and
// returns the well-formed ones in document order. Lines that carry the
// prefix but no "name <email>" pair are returned in malformed.
func ParseCoAuthors(message string) (authors []Author, malformed []string) {
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(line), coAuthorPrefix) {
			continue
		}

		m := coAuthorPattern.FindStringSubmatch(line)
		if m == nil {
			malformed = append(malformed, line)
			continue
		}
		authors = append(authors, Author{
			Name:  m[coAuthorPattern.SubexpIndex("name")],
			Email: m[coAuthorPattern.SubexpIndex("email")],
		})
	}
	return authors, malformed
}

func firstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimRight(message, "\r")
}
