// Package tree builds the navigable overlay of a document: a DocumentTree of
// TreeNodes whose children are generated by the visualize engine only when a
// node is expanded.
//
// BuildTree performs a breadth-first pass bounded by two independent limits,
// a depth limit and a cumulative field budget. A node is expanded while
// either limit still permits it. Nodes left behind keep IsParsed false and
// can be expanded later with ExpandNode.
//
// Trees are cheap to discard. Store keeps one tree per document and rebuilds
// it whenever the document, its mapping tree or the mapping revision changes;
// expansion state belongs to the caller and is keyed by node path.
package tree
