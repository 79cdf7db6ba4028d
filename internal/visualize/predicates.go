package visualize

import (
	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

// IsTerminal returns true for nodes that are never expanded: leaf fields,
// field mappings of leaf fields, value selectors, primitive source
// documents and add-mapping placeholders.
func IsTerminal(node NodeData) bool {
	switch node.Kind() {
	case NodeAddMapping:
		return true
	case NodeDocument:
		return node.Document().IsPrimitive && (node.IsSource() || node.Tree() == nil)
	case NodeField:
		return node.Field().IsLeaf()
	case NodeMapping:
		switch node.Mapping().Kind() {
		case mapping.KindValueSelector:
			return true
		case mapping.KindField:
			f := node.Field()
			return f == nil || f.IsLeaf()
		default:
			return false
		}
	default:
		return false
	}
}

// HasChildren returns true if ChildrenOf would return at least one node.
func (s *Service) HasChildren(node NodeData) bool {
	if IsTerminal(node) {
		return false
	}

	return len(s.ChildrenOf(node)) > 0
}

// IsPrimitiveDocument returns true for the root node of a primitive document.
func IsPrimitiveDocument(node NodeData) bool {
	return node.Kind() == NodeDocument && node.Document().IsPrimitive
}

// IsCollectionField returns true if the node is attached to a collection.
func IsCollectionField(node NodeData) bool {
	f := node.Field()
	return f != nil && f.IsCollection
}

// IsChoiceField returns true for unresolved choice nodes and nodes attached
// to a choice field.
func IsChoiceField(node NodeData) bool {
	if node.Kind() == NodeChoiceField {
		return true
	}

	f := node.Field()

	return f != nil && f.IsChoice
}

// IsDeletable returns true for nodes backed by a mapping item.
func IsDeletable(node NodeData) bool {
	return node.Kind() == NodeMapping
}

// AllowForEach returns true if the node can be wrapped with a for-each:
// a target collection field that is not already iterated.
func AllowForEach(node NodeData) bool {
	if node.IsSource() || !IsCollectionField(node) {
		return false
	}

	switch node.Kind() {
	case NodeField:
		return true
	case NodeMapping:
		fi, ok := node.Mapping().(*mapping.FieldItem)
		if !ok {
			return false
		}

		parent := fi.Parent()

		return parent == nil || parent.Kind() != mapping.KindForEach
	default:
		return false
	}
}

// AllowConditionMenu returns true if any conditional action applies to the
// node.
func AllowConditionMenu(node NodeData) bool {
	if node.IsSource() {
		return false
	}

	switch node.Kind() {
	case NodeDocument:
		return node.Document().IsPrimitive
	case NodeField:
		return true
	case NodeMapping:
		return node.Mapping().Kind() != mapping.KindValueSelector
	default:
		return false
	}
}

// AllowIfChoose returns true if the node can be wrapped with if or choose.
func AllowIfChoose(node NodeData) bool {
	if !AllowConditionMenu(node) {
		return false
	}

	switch node.Kind() {
	case NodeDocument, NodeField:
		return true
	case NodeMapping:
		return node.Mapping().Kind() == mapping.KindField
	default:
		return false
	}
}

// AllowValueSelector returns true if a value selector can be added to the
// node: it must produce a single value and not have one yet.
func AllowValueSelector(node NodeData) bool {
	if node.IsSource() {
		return false
	}

	switch node.Kind() {
	case NodeDocument:
		if !node.Document().IsPrimitive || node.Tree() == nil {
			return false
		}

		return !hasTopLevelSelector(node.Tree())
	case NodeField:
		return node.Field().IsLeaf()
	case NodeMapping:
		if _, ok := ValueSelectorOf(node); ok {
			return false
		}

		switch node.Mapping().Kind() {
		case mapping.KindField:
			return isLeaf(node.Field())
		case mapping.KindIf, mapping.KindWhen, mapping.KindOtherwise:
			return node.Field() == nil && node.Document().IsPrimitive
		default:
			return false
		}
	default:
		return false
	}
}

// ValueSelectorOf returns the value selector producing the node's value:
// the selector of a field mapping, of the guarded field mapping of a
// condition, or the top-level selector of a primitive target document.
func ValueSelectorOf(node NodeData) (*mapping.ValueSelector, bool) {
	switch node.Kind() {
	case NodeDocument:
		if node.Tree() == nil {
			return nil, false
		}

		for _, it := range node.Tree().Children() {
			if vs, ok := it.(*mapping.ValueSelector); ok {
				return vs, true
			}
		}

		return nil, false
	case NodeMapping:
		item := node.Mapping()
		if vs, ok := mapping.ValueSelectorOf(item); ok {
			return vs, true
		}

		if item.Kind() == mapping.KindField || node.Field() == nil {
			return nil, false
		}

		if fi, ok := mapping.FieldItemFor(node.Tree(), item, node.Field()); ok {
			return mapping.ValueSelectorOf(fi)
		}

		return nil, false
	default:
		return nil, false
	}
}

func hasTopLevelSelector(tree *mapping.Tree) bool {
	for _, it := range tree.Children() {
		if it.Kind() == mapping.KindValueSelector {
			return true
		}
	}

	return false
}

func isLeaf(f *document.Field) bool {
	return f != nil && f.IsLeaf()
}
