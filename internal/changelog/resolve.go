package changelog

import (
	"fmt"
	"sort"
)

// HeadRef is the symbolic name of the current tip.
const HeadRef = "HEAD"

// Resolver turns optional user-supplied endpoints into concrete ones.
type Resolver struct {
	repo Repository
	logf func(format string, args ...any)
}

// NewResolver creates a Resolver reading from repo.
func NewResolver(repo Repository, logf func(format string, args ...any)) *Resolver {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Resolver{repo: repo, logf: logf}
}

// Resolve picks the range boundaries.
//
// An explicit from is used verbatim. Otherwise the latest tag is used, or
// the root commit when the repository has no tags. to defaults to HEAD; when
// HEAD is itself tagged and from was not given, the window moves back one
// release so the result describes the release that was just tagged.
func (r *Resolver) Resolve(explicitFrom, explicitTo string) (Endpoints, []Warning, error) {
	var warnings []Warning

	tags, err := r.sortedTags()
	if err != nil {
		return Endpoints{}, nil, err
	}

	from := explicitFrom
	if from == "" {
		from, err = r.tagOrRoot(tags, 1)
		if err != nil {
			return Endpoints{}, nil, err
		}
	}

	to := explicitTo
	if to == "" {
		to = HeadRef
	}

	if to == HeadRef {
		tagged, err := r.headIsTagged(tags)
		if err != nil {
			return Endpoints{}, nil, err
		}
		switch {
		case tagged && explicitFrom == "":
			to = from
			from, err = r.tagOrRoot(tagsBelow(tags, tags[len(tags)-1].Hash), 1)
			if err != nil {
				return Endpoints{}, nil, err
			}
			r.logf("[changelog] HEAD is tagged, using %s...%s", from, to)
		case !tagged:
			warnings = append(warnings, Warning{
				Kind:    WarnUntaggedHead,
				Message: "HEAD is not tagged, generating changelog from the last tag to HEAD",
			})
		}
	}

	fromHash, err := r.shortHash(from)
	if err != nil {
		return Endpoints{}, nil, err
	}
	toHash, err := r.shortHash(to)
	if err != nil {
		return Endpoints{}, nil, err
	}

	r.logf("[changelog] resolved %s (%s) ... %s (%s)", from, fromHash, to, toHash)
	return Endpoints{From: from, To: to, FromHash: fromHash, ToHash: toHash}, warnings, nil
}

// sortedTags returns tags ordered by target commit time, oldest first.
// Equal timestamps are ordered by name so the choice of "latest" is stable.
func (r *Resolver) sortedTags() ([]Tag, error) {
	tags, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	sorted := make([]Tag, len(tags))
	copy(sorted, tags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CommittedAt.Equal(sorted[j].CommittedAt) {
			return sorted[i].CommittedAt.Before(sorted[j].CommittedAt)
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted, nil
}

// tagOrRoot returns the n-th most recent tag (n=1 is the latest), falling
// back to the root commit when fewer than n tags exist.
func (r *Resolver) tagOrRoot(tags []Tag, n int) (string, error) {
	if len(tags) >= n {
		return tags[len(tags)-n].Name, nil
	}
	return r.rootCommit()
}

// tagsBelow drops the tags pointing at hash, so a commit carrying several
// tags counts as one release.
func tagsBelow(tags []Tag, hash string) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if t.Hash != hash {
			out = append(out, t)
		}
	}
	return out
}

func (r *Resolver) rootCommit() (string, error) {
	roots, err := r.repo.RootCommits()
	if err != nil {
		return "", &RefResolutionError{Ref: HeadRef, Err: err}
	}
	switch len(roots) {
	case 0:
		return "", &RefResolutionError{Ref: HeadRef, Err: ErrUnknownRef}
	case 1:
		return r.shortHash(roots[0])
	default:
		short := make([]string, len(roots))
		for i, root := range roots {
			short[i] = root
			if s, err := r.repo.ShortHash(root); err == nil {
				short[i] = s
			}
		}
		return "", &AmbiguousHistoryError{Roots: short}
	}
}

func (r *Resolver) headIsTagged(tags []Tag) (bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		return false, &RefResolutionError{Ref: HeadRef, Err: err}
	}
	for _, t := range tags {
		if t.Hash == head {
			return true, nil
		}
	}
	return false, nil
}

func (r *Resolver) shortHash(ref string) (string, error) {
	h, err := r.repo.ShortHash(ref)
	if err != nil {
		return "", &RefResolutionError{Ref: ref, Err: err}
	}
	return h, nil
}
