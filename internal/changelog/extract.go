package changelog

import (
	"fmt"
)

// Extractor reads a commit range and keeps the conventional commits.
type Extractor struct {
	repo    Repository
	grammar *Grammar
}

// NewExtractor creates an Extractor. A nil grammar uses NewGrammar.
func NewExtractor(repo Repository, grammar *Grammar) *Extractor {
	if grammar == nil {
		grammar = NewGrammar()
	}
	return &Extractor{repo: repo, grammar: grammar}
}

// Extract returns the commits reachable from toHash and not from fromHash,
// newest first, dropping every commit whose subject line does not match the
// grammar. Malformed co-author trailers are skipped and reported as warnings.
func (e *Extractor) Extract(fromHash, toHash string) ([]Commit, []Warning, error) {
	raw, err := e.repo.CommitsBetween(fromHash, toHash)
	if err != nil {
		return nil, nil, fmt.Errorf("listing commits %s..%s: %w", fromHash, toHash, err)
	}

	var (
		commits  []Commit
		warnings []Warning
	)
	for _, rc := range raw {
		header, ok := e.grammar.Parse(rc.Message)
		if !ok {
			continue
		}

		coAuthors, malformed := ParseCoAuthors(rc.Message)
		for _, line := range malformed {
			err := &MalformedCoAuthorError{Hash: rc.Hash, Line: line}
			warnings = append(warnings, Warning{Kind: WarnMalformedCoAuthor, Message: err.Error()})
		}

		authors := make([]Author, 0, 1+len(coAuthors))
		authors = append(authors, Author{Name: rc.AuthorName, Email: rc.AuthorEmail})
		authors = append(authors, coAuthors...)

		commits = append(commits, Commit{
			Hash:        rc.Hash,
			AuthoredAt:  rc.CommittedAt,
			Emoji:       header.Emoji,
			Type:        header.Type,
			Scope:       header.Scope,
			Breaking:    header.Breaking,
			Description: header.Description,
			Authors:     authors,
		})
	}

	return commits, warnings, nil
}
