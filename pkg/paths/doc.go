// Package paths provides path resolution for xfmt.
//
// It has two jobs:
//
//   - Turning user supplied paths into absolute, normalized paths without
//     resolving symlinks (ResolveAbsolute)
//   - Walking from a starting location up to the filesystem root looking for
//     a named file in every directory on the way (FindAncestors)
//
// # Ancestor search
//
// FindAncestors returns every match, nearest directory first:
//
//	matches, err := paths.FindAncestors("/src/app/crates/core/lib.rs", "Cargo.toml")
//	// matches == ["/src/app/crates/core/Cargo.toml", "/src/app/Cargo.toml"]
//
// Callers decide precedence; Nearest picks the first match.
package paths
