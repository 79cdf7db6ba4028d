package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recursiveCategoryDoc() *Document {
	doc := NewDocument(KindTargetBody, "Catalog",
		&Field{Name: "Root", Type: "Category", TypeFragmentRefs: []string{"Category"}},
	)
	doc.AddFragment("Category", &Fragment{Fields: []*Field{
		{Name: "Name", Type: "string"},
		{Name: "Children", Type: "Category", IsCollection: true, TypeFragmentRefs: []string{"Category"}},
	}})

	return doc
}

func TestResolve_SubstitutesFragment(t *testing.T) {
	doc := recursiveCategoryDoc()
	root := doc.Fields[0]

	require.True(t, Resolve(root))
	require.Len(t, root.Fields, 2)
	assert.Empty(t, root.TypeFragmentRefs)
	assert.Equal(t, "Root/Children", root.Fields[1].Path())
	assert.Same(t, root, root.Fields[1].Parent)
	assert.Same(t, doc, root.Fields[1].Document)

	// the nested recursive field is still lazy
	assert.True(t, root.Fields[1].HasPendingRefs())
	assert.Empty(t, root.Fields[1].Fields)
}

func TestResolve_Idempotent(t *testing.T) {
	doc := recursiveCategoryDoc()
	root := doc.Fields[0]

	require.True(t, Resolve(root))
	first := root.Fields

	require.True(t, Resolve(root))
	assert.Len(t, root.Fields, 2)
	assert.Same(t, first[0], root.Fields[0])
}

func TestResolve_RecursiveLevelsHaveDistinctIdentity(t *testing.T) {
	doc := recursiveCategoryDoc()

	level1 := ResolvedFields(doc.Fields[0])
	level2 := ResolvedFields(level1[1])

	require.Len(t, level2, 2)
	assert.NotSame(t, level1[0], level2[0])
	assert.Equal(t, "Root/Children/Name", level2[0].Path())
}

func TestResolve_UnknownFragment(t *testing.T) {
	doc := NewDocument(KindSourceBody, "Broken",
		&Field{Name: "Thing", TypeFragmentRefs: []string{"Missing"}},
	)

	thing := doc.Fields[0]
	assert.False(t, Resolve(thing))
	assert.Empty(t, thing.Fields)
	assert.Equal(t, []string{"Missing"}, thing.TypeFragmentRefs)

	// still no change on retry
	assert.False(t, Resolve(thing))
	assert.Empty(t, thing.Fields)
}

func TestResolve_UnadoptedField(t *testing.T) {
	assert.False(t, Resolve(&Field{Name: "x", TypeFragmentRefs: []string{"T"}}))
	assert.True(t, Resolve(&Field{Name: "y"}))
}

func TestResolve_ExtendedFragments(t *testing.T) {
	doc := NewDocument(KindTargetBody, "Shapes",
		&Field{Name: "Circle", TypeFragmentRefs: []string{"Circle"}},
	)
	doc.AddFragment("Shape", &Fragment{Fields: []*Field{{Name: "Color"}}})
	doc.AddFragment("Circle", &Fragment{Refs: []string{"Shape"}, Fields: []*Field{{Name: "Radius"}}})
	// self-extension must not loop
	doc.AddFragment("Loop", &Fragment{Refs: []string{"Loop"}, Fields: []*Field{{Name: "Again"}}})

	circle := doc.Fields[0]
	require.True(t, Resolve(circle))
	require.Len(t, circle.Fields, 2)
	assert.Equal(t, "Color", circle.Fields[0].Name)
	assert.Equal(t, "Radius", circle.Fields[1].Name)

	loop := &Field{Name: "Loop", TypeFragmentRefs: []string{"Loop"}}
	doc.AddField(loop)
	require.True(t, Resolve(loop))
	require.Len(t, loop.Fields, 1)
	assert.Equal(t, "Again", loop.Fields[0].Name)
}

func TestResolve_KeepsExistingChildIDs(t *testing.T) {
	doc := NewDocument(KindTargetBody, "Order",
		&Field{Name: "Party", TypeFragmentRefs: []string{"Named"}, Fields: []*Field{
			{Name: "Name", Type: "string"},
			{Name: "Vat", Type: "string"},
		}},
	)
	doc.AddFragment("Named", &Fragment{Fields: []*Field{{Name: "Name"}, {Name: "Code"}}})

	party := doc.Fields[0]
	own := party.Fields[0]
	require.Equal(t, "Party/Name", own.Path())

	require.True(t, Resolve(party))
	require.Len(t, party.Fields, 4)

	assert.Equal(t, "Party/Name", own.Path(), "existing child keeps its path")
	assert.Equal(t, "Name-1", party.Fields[0].ID)
	assert.Equal(t, "Code", party.Fields[1].ID)
	assert.Same(t, party, party.Fields[0].Parent)
	assert.Same(t, doc, party.Fields[1].Document)
}

func TestDocument_FieldByPath(t *testing.T) {
	doc := recursiveCategoryDoc()

	f, ok := doc.FieldByPath("Root/Children/Children/Name")
	require.True(t, ok)
	assert.Equal(t, "Name", f.Name)
	assert.Equal(t, "Root/Children/Children/Name", f.Path())

	_, ok = doc.FieldByPath("Root/Nope")
	assert.False(t, ok)

	_, ok = doc.FieldByPath("")
	assert.False(t, ok)
}

func TestClone_DetachesBackReferences(t *testing.T) {
	doc := recursiveCategoryDoc()
	idx := 0
	orig := doc.Fields[0]
	orig.SelectedMemberIndex = &idx

	c := Clone(orig)
	assert.Nil(t, c.Document)
	assert.Nil(t, c.Parent)
	require.NotNil(t, c.SelectedMemberIndex)
	assert.NotSame(t, orig.SelectedMemberIndex, c.SelectedMemberIndex)

	c.TypeFragmentRefs[0] = "Changed"
	assert.Equal(t, "Category", orig.TypeFragmentRefs[0])
}

func TestWalk(t *testing.T) {
	doc := NewDocument(KindSourceBody, "Account",
		&Field{Name: "Address", Fields: []*Field{{Name: "Street"}, {Name: "City"}}},
		&Field{Name: "Name"},
	)

	var visited []string
	Walk(doc.Fields, func(f *Field) bool {
		visited = append(visited, f.Path())
		return true
	})
	assert.Equal(t, []string{"Address", "Address/Street", "Address/City", "Name"}, visited)

	visited = nil
	Walk(doc.Fields, func(f *Field) bool {
		visited = append(visited, f.Path())
		return false
	})
	assert.Equal(t, []string{"Address", "Name"}, visited)
}
