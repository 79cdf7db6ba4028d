// Package warehouse holds the target-side shapes used by the importer tests
// and the command line examples.
package warehouse

import "encoding/xml"

// ShipOrder is the document sent to the warehouse.
type ShipOrder struct {
	XMLName     xml.Name `xml:"ShipOrder"`
	OrderID     string   `xml:"OrderId,attr"`
	OrderPerson string   `xml:"OrderPerson"`
	ShipTo      ShipTo   `xml:"ShipTo"`
	Items       []Item   `xml:"Item"`
}

// ShipTo is the delivery address.
type ShipTo struct {
	Name    string `xml:"Name"`
	Address string `xml:"Address"`
	City    string `xml:"City"`
	Country string `xml:"Country"`
}

// Item is one shipped article.
type Item struct {
	Title    string  `xml:"Title"`
	Note     *string `xml:"Note"`
	Quantity int     `xml:"Quantity"`
	Price    float64 `xml:"Price"`
}
