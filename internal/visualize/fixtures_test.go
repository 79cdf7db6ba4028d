package visualize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

func accountDoc() *document.Document {
	return document.NewDocument(document.KindParameter, "Account",
		&document.Field{Name: "AccountId", Type: "string"},
		&document.Field{Name: "Name", Type: "string"},
		&document.Field{Name: "Address", Type: "Address", Fields: []*document.Field{
			{Name: "Street"}, {Name: "City"}, {Name: "State"}, {Name: "Country"},
		}},
	)
}

func shipOrderDoc() *document.Document {
	doc := document.NewDocument(document.KindTargetBody, "ShipOrder",
		&document.Field{Name: "OrderId", Type: "string", IsAttribute: true},
		&document.Field{Name: "OrderPerson", Type: "string"},
		&document.Field{Name: "Contact", IsChoice: true, Fields: []*document.Field{
			{Name: "Email", Type: "string"},
			{Name: "Phone", Type: "string"},
		}},
		&document.Field{Name: "Item", Type: "Item", IsCollection: true, Fields: []*document.Field{
			{Name: "Title", Type: "string"},
			{Name: "Quantity", Type: "int"},
			{Name: "Price", Type: "decimal"},
		}},
		&document.Field{Name: "Category", Type: "Category", TypeFragmentRefs: []string{"Category"}},
		&document.Field{Name: "Broken", Type: "Missing", TypeFragmentRefs: []string{"Missing"}},
	)
	doc.AddFragment("Category", &document.Fragment{Fields: []*document.Field{
		{Name: "Name", Type: "string"},
		{Name: "Sub", Type: "Category", IsCollection: true, TypeFragmentRefs: []string{"Category"}},
	}})

	return doc
}

func field(t *testing.T, doc *document.Document, path string) *document.Field {
	t.Helper()

	f, ok := doc.FieldByPath(path)
	require.True(t, ok, path)

	return f
}

func appendItem(t *testing.T, tree *mapping.Tree, parent mapping.Item, item mapping.Item) {
	t.Helper()
	require.NoError(t, tree.Append(parent, item))
}

func selector(text string) *mapping.ValueSelector {
	return mapping.NewValueSelector(mapping.Expression{Text: text}, mapping.ValueTypeValue)
}

func paths(nodes []NodeData) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Path())
	}

	return out
}

func titles(nodes []NodeData) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Title())
	}

	return out
}

func kinds(nodes []NodeData) []NodeKind {
	out := make([]NodeKind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind())
	}

	return out
}
