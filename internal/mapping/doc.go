// Package mapping provides the mapping tree of a target document: the
// canonical, mutable description of how target fields are populated.
//
// # Item variants
//
// Item is a closed union discriminated by Kind:
//
//   - FieldItem: maps one target field; children describe nested fields
//   - ForEachItem: iterates a source collection; children are the per-element mapping
//   - IfItem: a single boolean guard
//   - ChooseItem: multi-branch conditional holding WhenItems and at most one OtherwiseItem
//   - WhenItem / OtherwiseItem: one branch of a ChooseItem
//   - ValueSelector: leaf expression producing the value of the enclosing node
//
// Conditions wrap the FieldItem of the field they guard:
//
//	ForEachItem  (select: /Cart)
//	  FieldItem  Item
//	    FieldItem  Title
//	      ValueSelector  (Title)
//
// # Tree
//
// A Tree is the root container of top-level items for one target document.
// All structural changes go through Tree methods, which validate parent and
// child kinds and bump the tree revision so cached views can detect change.
//
// # Snapshot
//
// Marshal and Unmarshal persist a tree as a YAML snapshot of the item graph:
//
//	version: "1"
//	document: targetBody:ShipOrder
//	items:
//	  - kind: field
//	    id: field-6f1c...
//	    field: OrderId
//	    children:
//	      - kind: value
//	        expression: $Account/AccountId
//	        sources:
//	          - document: param:Account
//	            path: AccountId
//
// Field references are field IDs resolved against the enclosing context
// (the document top level, or the fields of the enclosing FieldItem).
package mapping
