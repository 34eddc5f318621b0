// Package tree builds the pruned aggregation tree for a scan root.
package tree

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lc/srcmd/internal/filter"
	"github.com/lc/srcmd/pkg/types"
)

// Builder walks a directory tree applying a Filter and produces the pruned
// node tree. Directories with no surviving descendants are dropped
// entirely; pruning is bottom-up, decided only after all descendants are
// known.
type Builder struct {
	filter *filter.Filter
}

// NewBuilder creates a Builder over the given filter.
func NewBuilder(f *filter.Filter) *Builder {
	return &Builder{filter: f}
}

// Build walks root and returns the surviving tree, or nil when nothing
// under root passes the filter. The root node itself is synthetic: depth 0,
// no heading, never rendered.
func (b *Builder) Build(root string) *types.Node {
	return b.build(root, root, 0, make(map[string]bool))
}

func (b *Builder) build(root, path string, depth int, visited map[string]bool) *types.Node {
	info, ok := b.filter.Include(path)
	if !ok {
		return nil
	}

	if !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(path))
		return &types.Node{
			Path:       path,
			Rel:        relSlash(root, path),
			Depth:      depth,
			IsMarkdown: ext == filter.MarkdownExt,
		}
	}

	// A symlinked directory cycle would recurse forever; each resolved
	// directory is entered at most once per walk.
	resolved := filter.ResolvePath(path)
	if visited[resolved] {
		return nil
	}
	visited[resolved] = true

	// Permission errors while listing mean this directory contributes
	// no children, not a fatal walk failure.
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	// Case-insensitive order, with the raw name as tie-break so runs
	// stay deterministic on case-sensitive filesystems.
	sort.Slice(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name()), strings.ToLower(entries[j].Name())
		if a == b {
			return entries[i].Name() < entries[j].Name()
		}
		return a < b
	})

	var children []*types.Node
	for _, entry := range entries {
		if b.filter.SkipName(entry.Name(), entryIsDir(path, entry)) {
			continue
		}
		child := b.build(root, filepath.Join(path, entry.Name()), depth+1, visited)
		if child != nil {
			children = append(children, child)
		}
	}

	if len(children) == 0 {
		return nil
	}
	return &types.Node{
		Path:     path,
		Rel:      relSlash(root, path),
		IsDir:    true,
		Depth:    depth,
		Children: children,
	}
}

// entryIsDir reports whether a directory entry is a directory, following
// symlinks so that a link to an ignored directory name is skipped the same
// way the directory itself would be.
func entryIsDir(parent string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}

func relSlash(root, path string) string {
	if path == root {
		return ""
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Files returns the tree's file nodes in pre-order, the same order heading
// assignment visits them.
func Files(root *types.Node) []*types.Node {
	var files []*types.Node
	var walk func(n *types.Node)
	walk = func(n *types.Node) {
		if !n.IsDir && n.Depth > 0 {
			files = append(files, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return files
}

// Prune returns a new tree retaining only the files for which keep returns
// true, re-applying the bottom-up rule so directories that lose every
// descendant disappear. It returns nil when no file survives. Node order
// is preserved; anchors and headings are not carried over and must be
// reassigned.
func Prune(root *types.Node, keep func(*types.Node) bool) *types.Node {
	if root == nil {
		return nil
	}
	if !root.IsDir {
		if !keep(root) {
			return nil
		}
		clone := *root
		clone.Anchor = ""
		clone.HeadingText = ""
		return &clone
	}
	var children []*types.Node
	for _, c := range root.Children {
		if kept := Prune(c, keep); kept != nil {
			children = append(children, kept)
		}
	}
	if len(children) == 0 {
		return nil
	}
	clone := *root
	clone.Anchor = ""
	clone.HeadingText = ""
	clone.Children = children
	return &clone
}
