package changelog

import (
	"regexp"
	"strings"
)

// DefaultRemote is the remote consulted for hyperlinks unless configured otherwise.
const DefaultRemote = "origin"

var (
	// git@host:namespace/repo.git
	sshRemotePattern = regexp.MustCompile(`^git@([\w.-]+):([^/\s]+)/([^/\s]+)\.git$`)
	// https://host/namespace/repo.git
	httpsRemotePattern = regexp.MustCompile(`^https://([\w.-]+)/([^/\s]+)/([^/\s]+)\.git$`)
)

// NormalizeRemote parses a remote URL into its host, namespace and
// repository name. Only the two forms above are recognized, with exactly one
// namespace segment; anything else returns an UnsupportedRemoteError.
func NormalizeRemote(url string) (*RemoteIdentity, error) {
	url = strings.TrimSpace(url)
	for _, p := range []*regexp.Regexp{sshRemotePattern, httpsRemotePattern} {
		if m := p.FindStringSubmatch(url); m != nil {
			return &RemoteIdentity{Host: m[1], Namespace: m[2], Repo: m[3]}, nil
		}
	}
	return nil, &UnsupportedRemoteError{URL: url}
}
