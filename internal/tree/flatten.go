package tree

// FlatNode is one visible row of a flattened tree.
type FlatNode struct {
	Node  *TreeNode
	Depth int
}

// Flatten lists the children of the root in depth-first order, descending
// into a node only when isExpanded reports its path as expanded. A nil
// isExpanded treats every node as expanded. Unparsed nodes contribute no
// rows below themselves; Flatten never parses.
func Flatten(t *DocumentTree, isExpanded func(path string) bool) []FlatNode {
	if t == nil || t.Root == nil {
		return nil
	}

	var out []FlatNode

	var walk func(nodes []*TreeNode, depth int)
	walk = func(nodes []*TreeNode, depth int) {
		for _, n := range nodes {
			out = append(out, FlatNode{Node: n, Depth: depth})

			if isExpanded == nil || isExpanded(n.Path) {
				walk(n.Children, depth+1)
			}
		}
	}

	walk(t.Root.Children, 0)

	return out
}
