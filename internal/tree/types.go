package tree

import (
	"datamapper/internal/document"
	"datamapper/internal/mapping"
	"datamapper/internal/visualize"
)

// TreeNode wraps one view node. IsParsed becomes true the first time
// Children is populated and never reverts.
type TreeNode struct {
	Data     visualize.NodeData
	Parent   *TreeNode
	Path     string
	IsParsed bool
	Children []*TreeNode
}

// Depth returns the number of ancestors of the node.
func (n *TreeNode) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}

	return d
}

func newTreeNode(data visualize.NodeData, parent *TreeNode) *TreeNode {
	return &TreeNode{
		Data:   data,
		Parent: parent,
		Path:   data.Path(),
	}
}

// DocumentTree is the overlay built for one document. Document, Tree and
// Revision record what the overlay was built from.
type DocumentTree struct {
	Root     *TreeNode
	Document *document.Document
	Tree     *mapping.Tree
	Revision uint64
}

// FindNodeByPath looks up a node of the tree by its path.
func (t *DocumentTree) FindNodeByPath(path string) (*TreeNode, bool) {
	return FindByPath(t.Root, path)
}

// IsStale returns true if the tree no longer reflects doc and mappings.
func (t *DocumentTree) IsStale(doc *document.Document, mappings *mapping.Tree) bool {
	if t.Document != doc || t.Tree != mappings {
		return true
	}

	return mappings != nil && t.Revision != mappings.Revision()
}

// FindByPath searches root and its parsed descendants depth-first for an
// exact path match.
func FindByPath(root *TreeNode, path string) (*TreeNode, bool) {
	if root == nil {
		return nil, false
	}

	if root.Path == path {
		return root, true
	}

	for _, child := range root.Children {
		if n, ok := FindByPath(child, path); ok {
			return n, true
		}
	}

	return nil, false
}
