package mutation

import (
	"go.uber.org/zap"

	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

// Service applies mutations to mapping trees.
type Service struct {
	logger *zap.Logger
}

// NewService creates a Service. A nil logger discards log output.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{logger: logger}
}

func (s *Service) noop(op, reason string, fields ...zap.Field) {
	s.logger.Debug("mapping mutation ignored",
		append([]zap.Field{zap.String("op", op), zap.String("reason", reason)}, fields...)...)
}

// WrapWithIf wraps item with a new if item.
func (s *Service) WrapWithIf(item mapping.Item) (*mapping.IfItem, bool) {
	const op = "wrapWithIf"

	if !s.wrappable(op, item) {
		return nil, false
	}

	if p := item.Parent(); p != nil && p.Kind() == mapping.KindIf {
		s.noop(op, "already guarded by if", zap.String("item", item.ID()))
		return nil, false
	}

	wrapper := mapping.NewIfItem(mapping.Expression{})
	if err := item.Tree().Wrap(item, wrapper, nil); err != nil {
		s.noop(op, err.Error(), zap.String("item", item.ID()))
		return nil, false
	}

	return wrapper, true
}

// WrapWithChoose wraps item with a new choose item holding item in its
// first when branch.
func (s *Service) WrapWithChoose(item mapping.Item) (*mapping.ChooseItem, bool) {
	const op = "wrapWithChoose"

	if !s.wrappable(op, item) {
		return nil, false
	}

	if isBranch(item.Parent()) {
		s.noop(op, "already inside a choose", zap.String("item", item.ID()))
		return nil, false
	}

	wrapper := mapping.NewChooseItem()
	if err := item.Tree().Wrap(item, wrapper, mapping.NewWhenItem(mapping.Expression{})); err != nil {
		s.noop(op, err.Error(), zap.String("item", item.ID()))
		return nil, false
	}

	return wrapper, true
}

// WrapWithForEach wraps the field item of a collection field with a new
// for-each item.
func (s *Service) WrapWithForEach(item mapping.Item) (*mapping.ForEachItem, bool) {
	const op = "wrapWithForEach"

	if !s.wrappable(op, item) {
		return nil, false
	}

	fi, ok := item.(*mapping.FieldItem)
	if !ok || fi.Field == nil || !fi.Field.IsCollection {
		s.noop(op, "not a collection field item", zap.String("item", item.ID()))
		return nil, false
	}

	if p := item.Parent(); p != nil && p.Kind() == mapping.KindForEach {
		s.noop(op, "already iterated", zap.String("item", item.ID()))
		return nil, false
	}

	wrapper := mapping.NewForEachItem(mapping.Expression{})
	if err := item.Tree().Wrap(item, wrapper, nil); err != nil {
		s.noop(op, err.Error(), zap.String("item", item.ID()))
		return nil, false
	}

	return wrapper, true
}

// Unwrap removes a for-each or if item, keeping its children in its place.
func (s *Service) Unwrap(item mapping.Item) bool {
	const op = "unwrap"

	if item == nil || item.Tree() == nil {
		s.noop(op, "detached item")
		return false
	}

	if err := item.Tree().Unwrap(item); err != nil {
		s.noop(op, err.Error(), zap.String("item", item.ID()))
		return false
	}

	return true
}

// AddWhen appends a when branch to choose. The branch maps the field the
// choose is attached to, if any.
func (s *Service) AddWhen(choose *mapping.ChooseItem) (*mapping.WhenItem, bool) {
	const op = "addWhen"

	if choose == nil || choose.Tree() == nil {
		s.noop(op, "detached choose")
		return nil, false
	}

	when := mapping.NewWhenItem(mapping.Expression{})
	if !s.addBranch(op, choose, when) {
		return nil, false
	}

	return when, true
}

// AddOtherwise adds the default branch to choose unless it already has one.
func (s *Service) AddOtherwise(choose *mapping.ChooseItem) (*mapping.OtherwiseItem, bool) {
	const op = "addOtherwise"

	if choose == nil || choose.Tree() == nil {
		s.noop(op, "detached choose")
		return nil, false
	}

	if _, ok := choose.Otherwise(); ok {
		s.noop(op, "otherwise exists", zap.String("choose", choose.ID()))
		return nil, false
	}

	otherwise := mapping.NewOtherwiseItem()
	if !s.addBranch(op, choose, otherwise) {
		return nil, false
	}

	return otherwise, true
}

func (s *Service) addBranch(op string, choose *mapping.ChooseItem, branch mapping.Item) bool {
	tree := choose.Tree()

	if err := tree.Append(choose, branch); err != nil {
		s.noop(op, err.Error(), zap.String("choose", choose.ID()))
		return false
	}

	if f, ok := mapping.WrappedField(choose); ok {
		if err := tree.Append(branch, mapping.NewFieldItem(f)); err != nil {
			s.noop(op, err.Error(), zap.String("choose", choose.ID()))
		}
	}

	return true
}

// SetExpression replaces the expression of a condition or value selector.
func (s *Service) SetExpression(item mapping.Item, expr mapping.Expression) bool {
	const op = "setExpression"

	if item == nil || item.Tree() == nil {
		s.noop(op, "detached item")
		return false
	}

	switch it := item.(type) {
	case *mapping.ForEachItem:
		it.Expression = expr
	case *mapping.IfItem:
		it.Expression = expr
	case *mapping.WhenItem:
		it.Expression = expr
	case *mapping.ValueSelector:
		it.Expression = expr
	default:
		s.noop(op, "item has no expression", zap.Stringer("kind", item.Kind()))
		return false
	}

	item.Tree().Touch()

	return true
}

// CreateFieldItem appends a new field item for field under parent (nil for
// the top level). Several items may map the same field.
func (s *Service) CreateFieldItem(tree *mapping.Tree, parent mapping.Item, field *document.Field) (*mapping.FieldItem, bool) {
	const op = "createFieldItem"

	if tree == nil || field == nil {
		s.noop(op, "missing tree or field")
		return nil, false
	}

	if field.DocumentRef() != tree.Document {
		s.noop(op, "field belongs to another document", zap.String("field", field.Path()))
		return nil, false
	}

	fi := mapping.NewFieldItem(field)
	if err := tree.Append(parent, fi); err != nil {
		s.noop(op, err.Error(), zap.String("field", field.Path()))
		return nil, false
	}

	return fi, true
}

// EnsureFieldItem returns the field item for field below parent, creating
// the missing field items of its ancestors on the way. Choice fields are
// skipped since their members are mapped at the choice's own level.
func (s *Service) EnsureFieldItem(tree *mapping.Tree, parent mapping.Item, field *document.Field) (*mapping.FieldItem, bool) {
	const op = "ensureFieldItem"

	if tree == nil || field == nil {
		s.noop(op, "missing tree or field")
		return nil, false
	}

	cur := parent

	var top *document.Field

	if parent != nil {
		f, ok := mapping.WrappedField(parent)
		if !ok {
			s.noop(op, "parent maps no field", zap.String("parent", parent.ID()))
			return nil, false
		}

		top = f

		if parent.Kind() != mapping.KindField {
			fi, ok := s.fieldItemUnder(tree, parent, f)
			if !ok {
				return nil, false
			}

			cur = fi
		}
	}

	chain, ok := fieldChain(field, top)
	if !ok {
		s.noop(op, "field is not below parent", zap.String("field", field.Path()))
		return nil, false
	}

	var result *mapping.FieldItem

	for _, f := range chain {
		fi, ok := s.fieldItemUnder(tree, cur, f)
		if !ok {
			return nil, false
		}

		result = fi
		cur = fi
	}

	if result == nil {
		if fi, ok := cur.(*mapping.FieldItem); ok && fi.Field == field {
			return fi, true
		}

		return nil, false
	}

	return result, true
}

func (s *Service) fieldItemUnder(tree *mapping.Tree, parent mapping.Item, f *document.Field) (*mapping.FieldItem, bool) {
	if fi, ok := mapping.FieldItemFor(tree, parent, f); ok {
		return fi, true
	}

	return s.CreateFieldItem(tree, parent, f)
}

// fieldChain lists the ancestors of field below top, outermost first, and
// field itself. A nil top means the document root.
func fieldChain(field, top *document.Field) ([]*document.Field, bool) {
	var chain []*document.Field

	for f := field; f != top; f = f.Parent {
		if f == nil {
			return nil, false
		}

		if f.IsChoice && f != field {
			continue
		}

		chain = append(chain, f)
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, true
}

// DeleteMappingItem removes item and everything below it. Source fields
// and documents are never touched.
func (s *Service) DeleteMappingItem(item mapping.Item) bool {
	const op = "deleteMappingItem"

	if item == nil || item.Tree() == nil {
		s.noop(op, "detached item")
		return false
	}

	if err := item.Tree().Remove(item); err != nil {
		s.noop(op, err.Error(), zap.String("item", item.ID()))
		return false
	}

	return true
}

func (s *Service) wrappable(op string, item mapping.Item) bool {
	if item == nil || item.Tree() == nil {
		s.noop(op, "detached item")
		return false
	}

	switch item.Kind() {
	case mapping.KindField, mapping.KindValueSelector:
		return true
	default:
		s.noop(op, "only field items and value selectors can be wrapped", zap.Stringer("kind", item.Kind()))
		return false
	}
}

func isBranch(item mapping.Item) bool {
	return item != nil && (item.Kind() == mapping.KindWhen || item.Kind() == mapping.KindOtherwise)
}
