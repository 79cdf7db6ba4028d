// Package visualize merges a document's field list with the mapping items
// of its target tree into view nodes.
//
// The merge is a pure function of its inputs: Service.ChildrenOf allocates
// fresh NodeData values on every call. Node identity across calls is the
// node path, never the Go pointer.
//
// # Field merge
//
// For each field, in schema order:
//  1. a choice field yields either its selected member (merged in place of
//     the choice) or a single ChoiceFieldNodeData wrapping all members
//  2. otherwise the mapping items attached to the field are collected
//  3. no items yields a FieldNodeData
//  4. items yield one MappingNodeData each, ordered by the comparator and
//     deduplicated by identity, followed by an AddMappingNodeData when the
//     field is a collection
//
// The same rule is applied to a document's top-level fields and to the
// nested fields of any field or mapping node.
package visualize
