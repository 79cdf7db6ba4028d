package visualize

import (
	"fmt"
	"slices"

	"datamapper/internal/common"
	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

// Service generates child view nodes.
type Service struct {
	compare mapping.Comparator
}

// Option configures a Service.
type Option func(*Service)

// WithComparator sets the order of several items mapping the same field.
func WithComparator(c mapping.Comparator) Option {
	return func(s *Service) {
		if c != nil {
			s.compare = c
		}
	}
}

// NewService creates a Service ordering items by creation unless another
// comparator is given.
func NewService(opts ...Option) *Service {
	s := &Service{compare: mapping.ByCreation}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ChildrenOf returns the child view nodes of node. Missing schema, empty
// field lists and unresolvable type fragments all yield no children.
func (s *Service) ChildrenOf(node NodeData) []NodeData {
	var out []NodeData

	switch n := node.(type) {
	case *DocumentNodeData:
		out = s.documentChildren(n)
	case *FieldNodeData:
		out = s.mergeFields(n, document.ResolvedFields(n.field), nil)
	case *ChoiceFieldNodeData:
		out = s.mergeFields(n, document.ResolvedFields(n.field), n.candidates)
	case *MappingNodeData:
		out = s.mappingChildren(n)
	case *AddMappingNodeData:
		return nil
	default:
		panic(fmt.Sprintf("visualize: unexpected node type %T", node))
	}

	return uniquePaths(out)
}

func (s *Service) documentChildren(n *DocumentNodeData) []NodeData {
	if n.doc.IsPrimitive {
		if n.isSource || n.tree == nil {
			return nil
		}

		items := s.sorted(mapping.NonSelectorChildren(n.tree.Children()))
		out := make([]NodeData, 0, len(items))

		for _, it := range items {
			out = append(out, newMappingNode(n, it, nil))
		}

		return out
	}

	var items []mapping.Item
	if !n.isSource && n.tree != nil {
		items = n.tree.Children()
	}

	return s.mergeFields(n, n.doc.Fields, items)
}

func (s *Service) mappingChildren(n *MappingNodeData) []NodeData {
	switch it := n.item.(type) {
	case *mapping.FieldItem:
		if it.Field == nil {
			return nil
		}

		return s.mergeFields(n, document.ResolvedFields(it.Field), it.Children())
	case *mapping.ValueSelector:
		return nil
	case *mapping.ChooseItem:
		out := make([]NodeData, 0, len(it.Children()))
		for _, branch := range it.Children() {
			out = append(out, newMappingNode(n, branch, attachedField(branch, n.field)))
		}

		return out
	default:
		return s.conditionChildren(n)
	}
}

// conditionChildren expands for-each, if, when and otherwise items. The
// FieldItem of the guarded field is transparent: its nested mappings show
// up directly under the condition.
func (s *Service) conditionChildren(n *MappingNodeData) []NodeData {
	var out []NodeData

	for _, child := range n.item.Children() {
		switch c := child.(type) {
		case *mapping.ValueSelector:
			continue
		case *mapping.FieldItem:
			if c.Field != nil && c.Field == n.field {
				out = append(out, s.mergeFields(n, document.ResolvedFields(c.Field), c.Children())...)
				continue
			}

			out = append(out, newMappingNode(n, c, c.Field))
		default:
			out = append(out, newMappingNode(n, c, attachedField(c, n.field)))
		}
	}

	return out
}

// mergeFields applies the field merge rule to fields in schema order.
func (s *Service) mergeFields(parent NodeData, fields []*document.Field, items []mapping.Item) []NodeData {
	out := make([]NodeData, 0, len(fields))
	seen := make(map[mapping.Item]bool)

	for _, f := range fields {
		out = append(out, s.mergeField(parent, f, items, seen)...)
	}

	return out
}

func (s *Service) mergeField(parent NodeData, f *document.Field, items []mapping.Item, seen map[mapping.Item]bool) []NodeData {
	if f.IsChoice {
		document.Resolve(f)

		if member, ok := f.SelectedMember(); ok {
			return s.mergeField(parent, member, items, seen)
		}

		return []NodeData{newChoiceNode(parent, f, items)}
	}

	if parent.IsSource() {
		return []NodeData{newFieldNode(parent, f)}
	}

	var matches []mapping.Item

	for _, it := range mapping.ItemsForField(items, f) {
		if !seen[it] {
			seen[it] = true
			matches = append(matches, it)
		}
	}

	if common.IsEmpty(matches) {
		return []NodeData{newFieldNode(parent, f)}
	}

	matches = s.sorted(matches)
	out := make([]NodeData, 0, len(matches)+1)

	for _, it := range matches {
		out = append(out, newMappingNode(parent, it, f))
	}

	if f.IsCollection {
		out = append(out, newAddMappingNode(parent, f))
	}

	return out
}

func (s *Service) sorted(items []mapping.Item) []mapping.Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, s.compare)

	return sorted
}

// attachedField returns the field an item maps, falling back to the field
// of the enclosing node.
func attachedField(item mapping.Item, fallback *document.Field) *document.Field {
	if f, ok := mapping.WrappedField(item); ok {
		return f
	}

	return fallback
}

// uniquePaths suffixes colliding sibling paths so that no two siblings
// share a path. Collisions only arise from malformed trees.
func uniquePaths(nodes []NodeData) []NodeData {
	seen := make(map[string]int, len(nodes))

	for _, n := range nodes {
		b := n.data()

		count := seen[b.path]
		seen[b.path]++

		if count > 0 {
			b.id = fmt.Sprintf("%s~%d", b.id, count)
			b.path = fmt.Sprintf("%s~%d", b.path, count)
		}
	}

	return nodes
}
