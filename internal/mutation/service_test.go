package mutation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamapper/internal/mapping"
)

func TestWrapWithIf(t *testing.T) {
	svc, logs := observed()
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())

	fi, ok := svc.CreateFieldItem(tree, nil, field(t, doc, "OrderPerson"))
	require.True(t, ok)

	guard, ok := svc.WrapWithIf(fi)
	require.True(t, ok)
	assert.Equal(t, []mapping.Item{guard}, tree.Children())
	assert.Same(t, guard, fi.Parent())

	again, ok := svc.WrapWithIf(fi)
	assert.False(t, ok)
	assert.Nil(t, again)
	assert.Equal(t, 1, logs.FilterMessage("mapping mutation ignored").Len())

	_, ok = svc.WrapWithIf(guard)
	assert.False(t, ok, "conditions are not wrapped")

	_, ok = svc.WrapWithIf(mapping.NewFieldItem(field(t, doc, "OrderPerson")))
	assert.False(t, ok, "detached")
}

func TestWrapWithChoose(t *testing.T) {
	svc := NewService(nil)
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())
	item := field(t, doc, "Item")

	fi, ok := svc.CreateFieldItem(tree, nil, item)
	require.True(t, ok)

	choose, ok := svc.WrapWithChoose(fi)
	require.True(t, ok)
	require.Len(t, choose.When(), 1)
	assert.Same(t, choose.When()[0], fi.Parent())

	_, ok = svc.WrapWithChoose(fi)
	assert.False(t, ok, "already inside a choose")

	otherwise, ok := svc.AddOtherwise(choose)
	require.True(t, ok)

	_, ok = svc.AddOtherwise(choose)
	assert.False(t, ok, "second otherwise")

	when, ok := svc.AddWhen(choose)
	require.True(t, ok)

	kinds := make([]mapping.Kind, 0, 3)
	for _, c := range choose.Children() {
		kinds = append(kinds, c.Kind())
	}
	assert.Equal(t, []mapping.Kind{mapping.KindWhen, mapping.KindWhen, mapping.KindOtherwise}, kinds)

	for _, branch := range []mapping.Item{when, otherwise} {
		fi, ok := mapping.FieldItemFor(tree, branch, item)
		require.True(t, ok)
		assert.Same(t, item, fi.Field)
	}

	_, ok = svc.AddWhen(mapping.NewChooseItem())
	assert.False(t, ok)
}

func TestWrapWithForEach(t *testing.T) {
	svc := NewService(nil)
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())

	person, ok := svc.CreateFieldItem(tree, nil, field(t, doc, "OrderPerson"))
	require.True(t, ok)

	_, ok = svc.WrapWithForEach(person)
	assert.False(t, ok, "not a collection")

	items, ok := svc.CreateFieldItem(tree, nil, field(t, doc, "Item"))
	require.True(t, ok)

	forEach, ok := svc.WrapWithForEach(items)
	require.True(t, ok)
	assert.Same(t, forEach, items.Parent())

	_, ok = svc.WrapWithForEach(items)
	assert.False(t, ok, "already iterated")

	require.True(t, svc.Unwrap(forEach))
	assert.Nil(t, items.Parent())
	assert.Equal(t, 0, tree.CountKind(mapping.KindForEach))

	assert.False(t, svc.Unwrap(items))
	assert.False(t, svc.Unwrap(forEach), "already removed")
}

func TestSetExpression(t *testing.T) {
	svc := NewService(nil)
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())

	fi, _ := svc.CreateFieldItem(tree, nil, field(t, doc, "OrderPerson"))
	guard, ok := svc.WrapWithIf(fi)
	require.True(t, ok)

	rev := tree.Revision()
	require.True(t, svc.SetExpression(guard, mapping.Expression{Text: "$Account/Name != ''"}))
	assert.Equal(t, "$Account/Name != ''", guard.Expression.Text)
	assert.Greater(t, tree.Revision(), rev)

	assert.False(t, svc.SetExpression(fi, mapping.Expression{Text: "x"}))
	assert.False(t, svc.SetExpression(mapping.NewIfItem(mapping.Expression{}), mapping.Expression{}))
}

func TestCreateFieldItem(t *testing.T) {
	svc := NewService(nil)
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())
	orderID := field(t, doc, "@OrderId")

	first, ok := svc.CreateFieldItem(tree, nil, orderID)
	require.True(t, ok)

	second, ok := svc.CreateFieldItem(tree, nil, orderID)
	require.True(t, ok)
	assert.NotSame(t, first, second)
	assert.Less(t, first.Seq(), second.Seq())

	_, ok = svc.CreateFieldItem(tree, nil, field(t, accountDoc(), "Name"))
	assert.False(t, ok, "foreign field")

	vs, ok := svc.SetValueSelector(tree, first, mapping.Expression{Text: "1"})
	require.True(t, ok)

	_, ok = svc.CreateFieldItem(tree, vs, orderID)
	assert.False(t, ok, "value selectors have no children")

	_, ok = svc.CreateFieldItem(nil, nil, orderID)
	assert.False(t, ok)
}

func TestEnsureFieldItem(t *testing.T) {
	svc := NewService(nil)
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())
	city := field(t, doc, "ShipTo/City")

	fi, ok := svc.EnsureFieldItem(tree, nil, city)
	require.True(t, ok)
	assert.Same(t, city, fi.Field)

	shipTo, ok := fi.Parent().(*mapping.FieldItem)
	require.True(t, ok)
	assert.Same(t, field(t, doc, "ShipTo"), shipTo.Field)
	assert.Nil(t, shipTo.Parent())

	again, ok := svc.EnsureFieldItem(tree, nil, city)
	require.True(t, ok)
	assert.Same(t, fi, again)
	assert.Equal(t, 2, tree.CountKind(mapping.KindField))

	self, ok := svc.EnsureFieldItem(tree, shipTo, shipTo.Field)
	require.True(t, ok)
	assert.Same(t, shipTo, self)

	_, ok = svc.EnsureFieldItem(tree, shipTo, field(t, doc, "Item/Title"))
	assert.False(t, ok, "not below parent")
}

func TestEnsureFieldItem_ChoiceMember(t *testing.T) {
	svc := NewService(nil)
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())
	phone := field(t, doc, "Contact/Phone")

	fi, ok := svc.EnsureFieldItem(tree, nil, phone)
	require.True(t, ok)
	assert.Nil(t, fi.Parent(), "members are mapped at the choice's level")
	assert.Equal(t, 1, tree.Count())
}

func TestEnsureFieldItem_UnderForEach(t *testing.T) {
	svc := NewService(nil)
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())

	items, _ := svc.CreateFieldItem(tree, nil, field(t, doc, "Item"))
	forEach, ok := svc.WrapWithForEach(items)
	require.True(t, ok)

	title, ok := svc.EnsureFieldItem(tree, forEach, field(t, doc, "Item/Title"))
	require.True(t, ok)
	assert.Same(t, items, title.Parent())
}

func TestDeleteMappingItem(t *testing.T) {
	svc := NewService(nil)
	account := accountDoc()
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())

	vs, ok := svc.MapToField(tree, field(t, account, "Name"), field(t, doc, "OrderPerson"))
	require.True(t, ok)

	fi := vs.Parent()
	require.True(t, svc.DeleteMappingItem(fi))
	assert.Zero(t, tree.Count())
	assert.Nil(t, vs.Tree())
	assert.Len(t, account.Fields, 3, "source schema untouched")

	assert.False(t, svc.DeleteMappingItem(fi))
	assert.False(t, svc.DeleteMappingItem(nil))
}
