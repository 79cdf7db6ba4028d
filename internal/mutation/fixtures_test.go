package mutation

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"datamapper/internal/document"
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

func cartDoc() *document.Document {
	return document.NewDocument(document.KindSourceBody, "Cart",
		&document.Field{Name: "Cart", IsCollection: true, Fields: []*document.Field{
			{Name: "Title"}, {Name: "Quantity"}, {Name: "Price"},
		}},
	)
}

func shipOrderDoc() *document.Document {
	return document.NewDocument(document.KindTargetBody, "ShipOrder",
		&document.Field{Name: "OrderId", IsAttribute: true},
		&document.Field{Name: "OrderPerson"},
		&document.Field{Name: "ShipTo", Fields: []*document.Field{
			{Name: "Name"}, {Name: "Address"}, {Name: "City"}, {Name: "State"}, {Name: "Country"},
		}},
		&document.Field{Name: "Item", IsCollection: true, Fields: []*document.Field{
			{Name: "Title"}, {Name: "Note"}, {Name: "Quantity"}, {Name: "Price"},
		}},
		&document.Field{Name: "Contact", IsChoice: true, Fields: []*document.Field{
			{Name: "Email"}, {Name: "Phone"},
		}},
	)
}

func field(t *testing.T, doc *document.Document, path string) *document.Field {
	t.Helper()

	f, ok := doc.FieldByPath(path)
	require.True(t, ok, path)

	return f
}

func observed() (*Service, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewService(zap.New(core)), logs
}
