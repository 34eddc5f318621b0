package tree

import (
	"github.com/lc/srcmd/internal/anchor"
	"github.com/lc/srcmd/pkg/types"
)

// AssignHeadings walks the pruned tree in pre-order, skipping the synthetic
// root, and gives every node its display heading and a unique anchor. A
// parent is always visited strictly before its descendants and siblings in
// the order the builder produced them; the anchor registry depends on that
// order for stable collision suffixes.
func AssignHeadings(root *types.Node, registry *anchor.Registry) {
	if root.Depth > 0 {
		text := root.Rel
		if root.IsDir {
			text += "/"
		}
		root.HeadingText = text
		root.Anchor = registry.Register(text)
	}
	for _, child := range root.Children {
		AssignHeadings(child, registry)
	}
}
