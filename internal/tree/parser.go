package tree

import (
	"go.uber.org/zap"

	"datamapper/internal/visualize"
)

// Parser expands tree nodes through the visualize engine.
type Parser struct {
	engine *visualize.Service
	logger *zap.Logger
}

// NewParser creates a Parser. A nil engine uses the default visualize
// service; a nil logger discards log output.
func NewParser(engine *visualize.Service, logger *zap.Logger) *Parser {
	if engine == nil {
		engine = visualize.NewService()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Parser{engine: engine, logger: logger}
}

// BuildTree creates the overlay of root and parses it breadth-first.
//
// A node is expanded when its depth is below depthLimit or when fewer than
// fieldBudget field-backed nodes have been produced so far. Add-mapping
// placeholders do not count against the budget. Terminal nodes are never
// expanded.
func (p *Parser) BuildTree(root visualize.NodeData, depthLimit, fieldBudget int) *DocumentTree {
	dt := &DocumentTree{
		Root:     newTreeNode(root, nil),
		Document: root.Document(),
		Tree:     root.Tree(),
	}

	if dt.Tree != nil {
		dt.Revision = dt.Tree.Revision()
	}

	type entry struct {
		node  *TreeNode
		depth int
	}

	var (
		queue     = []entry{{node: dt.Root}}
		processed int // field-backed nodes produced
		expanded  int
	)

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if visualize.IsTerminal(e.node.Data) {
			continue
		}

		if e.depth >= depthLimit && processed >= fieldBudget {
			continue
		}

		processed += p.expand(e.node)
		expanded++

		for _, child := range e.node.Children {
			queue = append(queue, entry{node: child, depth: e.depth + 1})
		}
	}

	p.logger.Debug("built document tree",
		zap.String("root", dt.Root.Path),
		zap.Int("depthLimit", depthLimit),
		zap.Int("fieldBudget", fieldBudget),
		zap.Int("expanded", expanded),
		zap.Int("fields", processed))

	return dt
}

// ExpandNode populates the children of an unparsed node and reports
// whether it did. Parsed and terminal nodes are left untouched, so calling
// it again is a no-op.
func (p *Parser) ExpandNode(node *TreeNode) bool {
	if node == nil || node.IsParsed || visualize.IsTerminal(node.Data) {
		return false
	}

	n := p.expand(node)

	p.logger.Debug("expanded node", zap.String("path", node.Path), zap.Int("children", n))

	return true
}

func (p *Parser) expand(node *TreeNode) int {
	children := p.engine.ChildrenOf(node.Data)

	node.Children = make([]*TreeNode, 0, len(children))
	for _, c := range children {
		node.Children = append(node.Children, newTreeNode(c, node))
	}

	node.IsParsed = true

	return fieldBacked(children)
}

// fieldBacked counts the nodes that stand for a schema field. Add-mapping
// placeholders and field-less mappings of primitive documents are free.
func fieldBacked(nodes []visualize.NodeData) int {
	n := 0

	for _, c := range nodes {
		if c.Kind() != visualize.NodeAddMapping && c.Field() != nil {
			n++
		}
	}

	return n
}
