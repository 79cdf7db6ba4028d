// Package store holds the source-side shapes used by the importer tests and
// the command line examples.
package store

import "time"

// Account is the customer account passed as a mapping parameter.
type Account struct {
	AccountID string  `json:"accountId" xml:"AccountId,attr"`
	Name      string  `json:"name"      xml:"Name"`
	Address   Address `json:"address"   xml:"Address"`

	// note is unexported so the importer tests can check that such fields
	// are skipped; nothing reads it.
	note string //nolint:unused
}

// Address is a postal address.
type Address struct {
	Street  string `xml:"Street"`
	City    string `xml:"City"`
	State   string `xml:"State"`
	Country string `xml:"Country"`
}

// Cart is the incoming order body.
type Cart struct {
	Sequence  OrderSequence     `json:"sequence"`
	Items     []CartItem        `json:"items"     xml:"Item"`
	Coupons   []string          `json:"coupons"`
	Category  *Category         `json:"category"`
	Metadata  map[string]string `json:"metadata"`
	Raw       []byte            `json:"-"`
	CreatedAt time.Time         `json:"createdAt"`

	Audit
}

// CartItem is one line of a cart.
type CartItem struct {
	Title    string  `xml:"Title"`
	Quantity int     `xml:"Quantity"`
	Price    float64 `xml:"Price"`
}

// Category is a recursive product category.
type Category struct {
	Name     string     `xml:"Name"`
	Children []Category `xml:"Category"`
}

// Audit is embedded into bodies that carry change tracking.
type Audit struct {
	CreatedBy string `json:"createdBy"`
}

// OrderSequence numbers orders per account.
type OrderSequence int64
