package mutation

import (
	"go.uber.org/zap"

	"datamapper/internal/common"
	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

// SourceExpression returns the expression text reading a source field:
// "$param/path" for parameters and "/document/path" for bodies. A nil
// field reads the whole document.
func SourceExpression(doc *document.Document, field *document.Field) string {
	var prefix string
	if doc.Kind == document.KindParameter {
		prefix = "$" + doc.ID
	} else {
		prefix = common.PathSeparator + doc.Name
	}

	if field == nil {
		return prefix
	}

	return common.JoinPath(prefix, field.Path())
}

// MapFieldToField sets the value selector of target to read source. The
// target is a field item, a condition attached to a field (its guarded
// field item receives the selector), or, for primitive target documents, a
// condition without a field or nil for the top level.
func (s *Service) MapFieldToField(tree *mapping.Tree, source *document.Field, target mapping.Item) (*mapping.ValueSelector, bool) {
	const op = "mapFieldToField"

	if source == nil || source.Document == nil {
		s.noop(op, "source field without document")
		return nil, false
	}

	if !source.Document.Kind.IsSource() {
		s.noop(op, "source field belongs to a target document", zap.String("field", source.Path()))
		return nil, false
	}

	expr := mapping.Expression{
		Text:    SourceExpression(source.Document, source),
		Sources: []mapping.SourceRef{{Document: source.DocumentRef(), Path: source.Path()}},
	}

	return s.SetValueSelector(tree, target, expr)
}

// MapToField maps source to a target field of the tree, creating the field
// items of the target's ancestors as needed.
func (s *Service) MapToField(tree *mapping.Tree, source, target *document.Field) (*mapping.ValueSelector, bool) {
	fi, ok := s.EnsureFieldItem(tree, nil, target)
	if !ok {
		return nil, false
	}

	return s.MapFieldToField(tree, source, fi)
}

// SetValueSelector sets expr on the value selector of target, adding the
// selector if there is none.
func (s *Service) SetValueSelector(tree *mapping.Tree, target mapping.Item, expr mapping.Expression) (*mapping.ValueSelector, bool) {
	const op = "setValueSelector"

	if tree == nil {
		s.noop(op, "missing tree")
		return nil, false
	}

	holder, ok := s.selectorHolder(op, tree, target)
	if !ok {
		return nil, false
	}

	if vs, ok := existingSelector(tree, holder); ok {
		vs.Expression = expr
		tree.Touch()

		return vs, true
	}

	vs := mapping.NewValueSelector(expr, valueTypeOf(holder))
	if err := tree.Append(holder, vs); err != nil {
		s.noop(op, err.Error())
		return nil, false
	}

	return vs, true
}

func (s *Service) selectorHolder(op string, tree *mapping.Tree, target mapping.Item) (mapping.Item, bool) {
	if target == nil {
		return nil, true
	}

	if target.Tree() != tree {
		s.noop(op, "target is not part of the tree", zap.String("item", target.ID()))
		return nil, false
	}

	switch target.Kind() {
	case mapping.KindField:
		return target, true
	case mapping.KindForEach, mapping.KindIf, mapping.KindWhen, mapping.KindOtherwise:
		f, ok := mapping.WrappedField(target)
		if !ok {
			return target, true
		}

		fi, ok := s.fieldItemUnder(tree, target, f)
		if !ok {
			return nil, false
		}

		return fi, true
	default:
		s.noop(op, "target cannot hold a value selector", zap.Stringer("kind", target.Kind()))
		return nil, false
	}
}

func existingSelector(tree *mapping.Tree, holder mapping.Item) (*mapping.ValueSelector, bool) {
	if holder != nil {
		return mapping.ValueSelectorOf(holder)
	}

	for _, it := range tree.Children() {
		if vs, ok := it.(*mapping.ValueSelector); ok {
			return vs, true
		}
	}

	return nil, false
}

func valueTypeOf(holder mapping.Item) mapping.ValueType {
	fi, ok := holder.(*mapping.FieldItem)
	if !ok || fi.Field == nil {
		return mapping.ValueTypeValue
	}

	switch {
	case fi.Field.IsAttribute:
		return mapping.ValueTypeAttribute
	case !fi.Field.IsLeaf():
		return mapping.ValueTypeContainer
	default:
		return mapping.ValueTypeValue
	}
}

// RemoveAllMappingsForDocument deletes every item whose expression reads
// from doc, then removes the ancestors left without children. It returns
// the number of items removed.
func (s *Service) RemoveAllMappingsForDocument(tree *mapping.Tree, doc document.Ref) int {
	if tree == nil {
		return 0
	}

	before := tree.Count()

	var stale []mapping.Item

	mapping.Walk(tree.Children(), func(it mapping.Item) bool {
		expr, ok := mapping.ExpressionOf(it)
		if ok && expr.References(doc) {
			stale = append(stale, it)
			return false
		}

		return true
	})

	for _, it := range stale {
		parent := it.Parent()

		if err := tree.Remove(it); err != nil {
			s.logger.Warn("failed to remove mapping item", zap.String("item", it.ID()), zap.Error(err))
			continue
		}

		for parent != nil && common.IsEmpty(parent.Children()) {
			next := parent.Parent()

			if err := tree.Remove(parent); err != nil {
				s.logger.Warn("failed to prune mapping item", zap.String("item", parent.ID()), zap.Error(err))
				break
			}

			parent = next
		}
	}

	removed := before - tree.Count()

	s.logger.Debug("removed mappings for document",
		zap.Stringer("document", doc),
		zap.Int("stale", len(stale)),
		zap.Int("removed", removed))

	return removed
}
