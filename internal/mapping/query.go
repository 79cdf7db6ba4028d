package mapping

import "datamapper/internal/document"

// WrappedField returns the target field an item is attached to. For a
// FieldItem it is its own field; for a condition it is the field of the
// first FieldItem reached through its condition children.
func WrappedField(item Item) (*document.Field, bool) {
	switch it := item.(type) {
	case *FieldItem:
		return it.Field, it.Field != nil
	case *ValueSelector:
		return nil, false
	}

	for _, child := range item.Children() {
		if f, ok := WrappedField(child); ok {
			return f, true
		}
	}

	return nil, false
}

// MatchesField returns true if item maps field, either directly or as a
// condition wrapping the field's FieldItem.
func MatchesField(item Item, field *document.Field) bool {
	if item.Kind() == KindValueSelector {
		return false
	}

	f, ok := WrappedField(item)

	return ok && f == field
}

// ItemsForField returns the items among candidates that map field, in
// candidate order.
func ItemsForField(candidates []Item, field *document.Field) []Item {
	var result []Item

	for _, it := range candidates {
		if MatchesField(it, field) {
			result = append(result, it)
		}
	}

	return result
}

// FieldItemFor returns the direct FieldItem child of parent mapping field.
// A nil parent searches the top level of tree.
func FieldItemFor(tree *Tree, parent Item, field *document.Field) (*FieldItem, bool) {
	var children []Item
	if parent == nil {
		children = tree.Children()
	} else {
		children = parent.Children()
	}

	for _, child := range children {
		if fi, ok := child.(*FieldItem); ok && fi.Field == field {
			return fi, true
		}
	}

	return nil, false
}

// ValueSelectorOf returns the direct ValueSelector child of item.
func ValueSelectorOf(item Item) (*ValueSelector, bool) {
	if item == nil {
		return nil, false
	}

	for _, child := range item.Children() {
		if vs, ok := child.(*ValueSelector); ok {
			return vs, true
		}
	}

	return nil, false
}

// NonSelectorChildren filters value selectors out of a child list.
func NonSelectorChildren(items []Item) []Item {
	result := make([]Item, 0, len(items))

	for _, it := range items {
		if it.Kind() != KindValueSelector {
			result = append(result, it)
		}
	}

	return result
}

// Ancestor returns the nearest ancestor of item with the given kind.
func Ancestor(item Item, kind Kind) (Item, bool) {
	for p := item.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == kind {
			return p, true
		}
	}

	return nil, false
}
