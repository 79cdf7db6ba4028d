package visualize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

func childByTitle(t *testing.T, svc *Service, node NodeData, title string) NodeData {
	t.Helper()

	for _, c := range svc.ChildrenOf(node) {
		if c.Title() == title {
			return c
		}
	}

	require.FailNow(t, "child not found", title)

	return nil
}

func TestPredicates_FieldNodes(t *testing.T) {
	doc := shipOrderDoc()
	svc := NewService()
	root := NewDocumentNode(doc, mapping.NewTree(doc.Ref()))

	person := childByTitle(t, svc, root, "OrderPerson")
	assert.True(t, IsTerminal(person))
	assert.False(t, svc.HasChildren(person))
	assert.False(t, IsDeletable(person))
	assert.True(t, AllowConditionMenu(person))
	assert.True(t, AllowIfChoose(person))
	assert.True(t, AllowValueSelector(person))
	assert.False(t, AllowForEach(person))

	item := childByTitle(t, svc, root, "Item")
	assert.False(t, IsTerminal(item))
	assert.True(t, svc.HasChildren(item))
	assert.True(t, IsCollectionField(item))
	assert.True(t, AllowForEach(item))
	assert.False(t, AllowValueSelector(item))

	contact := childByTitle(t, svc, root, "Contact")
	assert.True(t, IsChoiceField(contact))
	assert.True(t, svc.HasChildren(contact))
	assert.False(t, IsChoiceField(person))

	broken := childByTitle(t, svc, root, "Broken")
	assert.False(t, IsTerminal(broken))
	assert.False(t, svc.HasChildren(broken))
}

func TestPredicates_SourceNodes(t *testing.T) {
	svc := NewService()
	root := NewDocumentNode(accountDoc(), nil)

	assert.False(t, IsPrimitiveDocument(root))
	assert.False(t, AllowConditionMenu(root))

	name := childByTitle(t, svc, root, "Name")
	assert.False(t, AllowConditionMenu(name))
	assert.False(t, AllowValueSelector(name))
	assert.False(t, AllowIfChoose(name))
	assert.False(t, AllowForEach(name))

	primitive := NewDocumentNode(document.NewPrimitiveDocument(document.KindParameter, "flag"), nil)
	assert.True(t, IsPrimitiveDocument(primitive))
	assert.True(t, IsTerminal(primitive))
	assert.False(t, svc.HasChildren(primitive))
}

func TestPredicates_MappingNodes(t *testing.T) {
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())

	person := mapping.NewFieldItem(field(t, doc, "OrderPerson"))
	appendItem(t, tree, nil, person)

	items := mapping.NewFieldItem(field(t, doc, "Item"))
	appendItem(t, tree, nil, items)

	svc := NewService()
	root := NewDocumentNode(doc, tree)

	personNode := childByTitle(t, svc, root, "OrderPerson")
	assert.Same(t, person, personNode.Mapping())
	assert.True(t, IsDeletable(personNode))
	assert.True(t, IsTerminal(personNode))
	assert.True(t, AllowIfChoose(personNode))
	assert.True(t, AllowValueSelector(personNode))

	vs := selector("$Account/Name")
	appendItem(t, tree, person, vs)
	personNode = childByTitle(t, svc, root, "OrderPerson")
	assert.False(t, AllowValueSelector(personNode))

	got, ok := ValueSelectorOf(personNode)
	require.True(t, ok)
	assert.Same(t, vs, got)

	itemNode := childByTitle(t, svc, root, "Item")
	assert.Equal(t, NodeMapping, itemNode.Kind())
	assert.True(t, AllowForEach(itemNode))
	assert.False(t, IsTerminal(itemNode))

	forEach := mapping.NewForEachItem(mapping.Expression{Text: "/Cart"})
	require.NoError(t, tree.Wrap(items, forEach, nil))

	forEachNode := childByTitle(t, svc, root, "for-each")
	assert.False(t, AllowForEach(forEachNode))
	assert.True(t, AllowConditionMenu(forEachNode))
	assert.False(t, AllowIfChoose(forEachNode))
	assert.False(t, AllowValueSelector(forEachNode))
	assert.True(t, svc.HasChildren(forEachNode))
}

func TestPredicates_GuardedLeafSelector(t *testing.T) {
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())
	person := field(t, doc, "OrderPerson")

	fi := mapping.NewFieldItem(person)
	appendItem(t, tree, nil, fi)

	vs := selector("$Account/Name")
	appendItem(t, tree, fi, vs)

	guard := mapping.NewIfItem(mapping.Expression{Text: "$Account/Name != ''"})
	require.NoError(t, tree.Wrap(fi, guard, nil))

	guardNode := childByTitle(t, NewService(), NewDocumentNode(doc, tree), "if")

	got, ok := ValueSelectorOf(guardNode)
	require.True(t, ok)
	assert.Same(t, vs, got)
	assert.False(t, AllowValueSelector(guardNode))
}

func TestPredicates_PrimitiveTarget(t *testing.T) {
	doc := document.NewPrimitiveDocument(document.KindTargetBody, "Total")
	tree := mapping.NewTree(doc.Ref())
	svc := NewService()
	root := NewDocumentNode(doc, tree)

	assert.True(t, IsPrimitiveDocument(root))
	assert.False(t, IsTerminal(root))
	assert.False(t, svc.HasChildren(root))
	assert.True(t, AllowConditionMenu(root))
	assert.True(t, AllowIfChoose(root))
	assert.True(t, AllowValueSelector(root))

	_, ok := ValueSelectorOf(root)
	assert.False(t, ok)

	vs := selector("42")
	appendItem(t, tree, nil, vs)
	assert.False(t, AllowValueSelector(root))

	got, ok := ValueSelectorOf(root)
	require.True(t, ok)
	assert.Same(t, vs, got)

	guard := mapping.NewIfItem(mapping.Expression{Text: "$flag"})
	appendItem(t, tree, nil, guard)

	guardNode := childByTitle(t, svc, root, "if")
	assert.True(t, AllowValueSelector(guardNode))
	assert.False(t, AllowIfChoose(guardNode))

	appendItem(t, tree, guard, selector("1"))
	guardNode = childByTitle(t, svc, root, "if")
	assert.False(t, AllowValueSelector(guardNode))
	assert.True(t, svc.HasChildren(root))
}

func TestPredicates_AddMapping(t *testing.T) {
	doc := shipOrderDoc()
	tree := mapping.NewTree(doc.Ref())
	appendItem(t, tree, nil, mapping.NewFieldItem(field(t, doc, "Item")))

	svc := NewService()

	var placeholder NodeData
	for _, c := range svc.ChildrenOf(NewDocumentNode(doc, tree)) {
		if c.Kind() == NodeAddMapping {
			placeholder = c
		}
	}
	require.NotNil(t, placeholder)

	assert.True(t, IsTerminal(placeholder))
	assert.False(t, IsDeletable(placeholder))
	assert.False(t, AllowConditionMenu(placeholder))
	assert.False(t, AllowForEach(placeholder))
	assert.True(t, IsCollectionField(placeholder))
}
