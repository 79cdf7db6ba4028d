// Package match ranks source fields as mapping suggestions for a target
// field.
//
// Names are compared after normalization (case folding, separator removal
// and optional stripping of suffixes such as "ID" or "At") with a
// normalized Levenshtein similarity. Field shapes are compared by type
// name, collection-ness and leaf-ness. Both scores are combined into a
// single ranking.
package match
