// Package analyze turns Go struct types into documents.
//
// Packages are loaded with golang.org/x/tools/go/packages and their named
// types are collected into a TypeGraph. Analyzer.Document then converts one
// struct type into a document.Document: named struct types become type
// fragments referenced lazily by the fields using them, so recursive types
// stay finite. Pointers are dereferenced, slices and arrays become
// collections, and `xml:",attr"` fields become attributes.
package analyze
