package mapping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"datamapper/internal/document"
)

func shipOrderDoc() *document.Document {
	return document.NewDocument(document.KindTargetBody, "ShipOrder",
		&document.Field{Name: "OrderId", Type: "string"},
		&document.Field{Name: "OrderPerson", Type: "string"},
		&document.Field{Name: "Item", Type: "Item", IsCollection: true, Fields: []*document.Field{
			{Name: "Title", Type: "string"},
			{Name: "Quantity", Type: "int"},
			{Name: "Price", Type: "decimal"},
		}},
	)
}

func mustAppend(t *testing.T, tree *Tree, parent Item, item Item) {
	t.Helper()
	require.NoError(t, tree.Append(parent, item))
}

func accountRef() document.Ref {
	return document.Ref{Kind: document.KindParameter, ID: "Account"}
}
