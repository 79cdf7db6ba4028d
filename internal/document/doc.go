// Package document provides the schema side of a mapping: documents and the
// recursive field tree they own.
//
// A Document is either structured (an ordered list of Fields) or primitive
// (a single unnamed value with no fields). Fields may be attributes,
// collections or choices, and may reference named type fragments instead of
// carrying their children inline. Fragment references are how recursive
// types are represented without infinite structures:
//
//	Category
//	  Name
//	  Children[]  -> refs ["Category"]
//
// Resolve substitutes the referenced fragment fields the first time a
// consumer needs them. Each substitution clones the fragment, so every
// depth of a recursive type gets its own Field identities.
//
// # Paths
//
// Every field has an ID that is unique among its siblings: the field name,
// "@name" for attributes, with a "-N" suffix when names collide. Field.Path
// joins the IDs from the document root with "/".
package document
