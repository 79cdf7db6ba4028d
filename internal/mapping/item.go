package mapping

import (
	"github.com/google/uuid"

	"datamapper/internal/document"
)

// Item is one node of a mapping tree. The set of implementations is closed;
// switch on Kind or on the concrete type.
//
// Parent and Tree are back references; an item is owned by its parent's
// child list only.
type Item interface {
	Kind() Kind
	ID() string
	Seq() uint64
	Parent() Item
	Tree() *Tree
	Children() []Item

	base() *itemBase
}

type itemBase struct {
	id       string
	seq      uint64
	parent   Item
	tree     *Tree
	children []Item
}

func newItemBase(kind Kind) itemBase {
	return itemBase{id: kind.String() + "-" + uuid.NewString()}
}

func (b *itemBase) base() *itemBase { return b }

// ID returns the identifier of the item, stable for its lifetime.
func (b *itemBase) ID() string { return b.id }

// Seq returns the creation sequence assigned when the item joined a tree.
func (b *itemBase) Seq() uint64 { return b.seq }

// Parent returns the enclosing item, or nil for top-level items.
func (b *itemBase) Parent() Item { return b.parent }

// Tree returns the tree the item belongs to, or nil if detached.
func (b *itemBase) Tree() *Tree { return b.tree }

// Children returns the child items. The slice must not be modified.
func (b *itemBase) Children() []Item { return b.children }

// FieldItem maps one target field.
type FieldItem struct {
	itemBase
	Field *document.Field
}

// NewFieldItem creates a detached field item.
func NewFieldItem(field *document.Field) *FieldItem {
	return &FieldItem{itemBase: newItemBase(KindField), Field: field}
}

func (*FieldItem) Kind() Kind { return KindField }

// ForEachItem iterates over a source collection.
type ForEachItem struct {
	itemBase
	Expression Expression
}

// NewForEachItem creates a detached for-each item.
func NewForEachItem(expr Expression) *ForEachItem {
	return &ForEachItem{itemBase: newItemBase(KindForEach), Expression: expr}
}

func (*ForEachItem) Kind() Kind { return KindForEach }

// IfItem guards its children with a single condition.
type IfItem struct {
	itemBase
	Expression Expression
}

// NewIfItem creates a detached if item.
func NewIfItem(expr Expression) *IfItem {
	return &IfItem{itemBase: newItemBase(KindIf), Expression: expr}
}

func (*IfItem) Kind() Kind { return KindIf }

// ChooseItem is a multi-branch conditional.
type ChooseItem struct {
	itemBase
}

// NewChooseItem creates a detached choose item.
func NewChooseItem() *ChooseItem {
	return &ChooseItem{itemBase: newItemBase(KindChoose)}
}

func (*ChooseItem) Kind() Kind { return KindChoose }

// When returns the when branches in order.
func (c *ChooseItem) When() []*WhenItem {
	var result []*WhenItem

	for _, child := range c.children {
		if w, ok := child.(*WhenItem); ok {
			result = append(result, w)
		}
	}

	return result
}

// Otherwise returns the default branch.
func (c *ChooseItem) Otherwise() (*OtherwiseItem, bool) {
	for _, child := range c.children {
		if o, ok := child.(*OtherwiseItem); ok {
			return o, true
		}
	}

	return nil, false
}

// WhenItem is one guarded branch of a ChooseItem.
type WhenItem struct {
	itemBase
	Expression Expression
}

// NewWhenItem creates a detached when item.
func NewWhenItem(expr Expression) *WhenItem {
	return &WhenItem{itemBase: newItemBase(KindWhen), Expression: expr}
}

func (*WhenItem) Kind() Kind { return KindWhen }

// OtherwiseItem is the default branch of a ChooseItem.
type OtherwiseItem struct {
	itemBase
}

// NewOtherwiseItem creates a detached otherwise item.
func NewOtherwiseItem() *OtherwiseItem {
	return &OtherwiseItem{itemBase: newItemBase(KindOtherwise)}
}

func (*OtherwiseItem) Kind() Kind { return KindOtherwise }

// ValueSelector produces the value of the enclosing node. It never has
// children.
type ValueSelector struct {
	itemBase
	Expression Expression
	ValueType  ValueType
}

// NewValueSelector creates a detached value selector.
func NewValueSelector(expr Expression, valueType ValueType) *ValueSelector {
	return &ValueSelector{itemBase: newItemBase(KindValueSelector), Expression: expr, ValueType: valueType}
}

func (*ValueSelector) Kind() Kind { return KindValueSelector }

// ExpressionOf returns the expression carried by the item, if any.
func ExpressionOf(item Item) (Expression, bool) {
	switch it := item.(type) {
	case *ForEachItem:
		return it.Expression, true
	case *IfItem:
		return it.Expression, true
	case *WhenItem:
		return it.Expression, true
	case *ValueSelector:
		return it.Expression, true
	default:
		return Expression{}, false
	}
}
