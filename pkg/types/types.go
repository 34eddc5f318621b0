// Package types provides the core types used throughout the srcmd utility.
package types

// Node represents one filesystem entry retained after filtering.
//
// Nodes are created during tree construction with Path, Rel, IsDir, Depth,
// Children and IsMarkdown fixed; heading assignment later fills Anchor and
// HeadingText exactly once. Rendering only reads.
type Node struct {
	// Path is the absolute location of the entry.
	Path string
	// Rel is the slash-separated path relative to the scan root, empty
	// for the root node itself.
	Rel string
	// IsDir reports whether the node is a directory. A directory node
	// always has at least one child; empty subtrees are pruned during
	// construction.
	IsDir bool
	// Depth is the distance from the scan root. The root is depth 0 and
	// is never rendered as a heading.
	Depth int
	// Children holds child nodes sorted case-insensitively by name.
	Children []*Node
	// Anchor is the unique in-document link target, empty only for the
	// root.
	Anchor string
	// HeadingText is the display label ("rel/" for directories, "rel"
	// for files), empty only for the root.
	HeadingText string
	// IsMarkdown reports whether the file carries the markdown
	// extension; markdown files are embedded verbatim rather than
	// fenced.
	IsMarkdown bool
}

// FilterOptions configures which filesystem entries survive filtering.
type FilterOptions struct {
	// Extensions is the allow-list of file extensions, compared
	// case-insensitively with the leading dot normalized. The markdown
	// extension is always allowed.
	Extensions []string
	// IgnoreDirs and IgnoreFiles are exact-name exclusion sets.
	IgnoreDirs  []string
	IgnoreFiles []string
	// IgnorePatterns are gitignore-style exclusion patterns matched
	// against the root-relative slash path, with a trailing slash
	// appended for directories.
	IgnorePatterns []string
	// FollowSymlinks enables descending through symlinked entries.
	FollowSymlinks bool
}

// Selector chooses which file nodes survive before rendering. It receives
// the pruned tree's file nodes in pre-order and returns the set of absolute
// paths to keep.
type Selector interface {
	Select(files []*Node) (map[string]bool, error)
}
