// Package changelog generates markdown changelogs from conventional commits.
//
// This package implements:
//   - the conventional-commit subject grammar and Co-authored-by trailer scan
//   - range resolution (explicit refs, latest tag, root commit fallback)
//   - remote URL normalization for compare and commit links
//   - extraction, grouping by type with a dedicated breaking bucket, and
//     stable scope ordering
//   - markdown, YAML and colored terminal output
//
// History is read through the Repository interface; internal/git provides
// the go-git implementation.
package changelog
