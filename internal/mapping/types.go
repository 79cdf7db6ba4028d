package mapping

import (
	"cmp"
	"fmt"
	"slices"

	"datamapper/internal/common"
	"datamapper/internal/document"
)

// Kind discriminates the Item union.
type Kind int

const (
	KindField Kind = iota
	KindForEach
	KindIf
	KindChoose
	KindWhen
	KindOtherwise
	KindValueSelector
)

var kindNames = map[Kind]string{
	KindField:         "field",
	KindForEach:       "forEach",
	KindIf:            "if",
	KindChoose:        "choose",
	KindWhen:          "when",
	KindOtherwise:     "otherwise",
	KindValueSelector: "value",
}

// String returns the serialized name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return common.UnknownStr
}

// ParseKind parses the serialized form produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown mapping item kind %q", s)
}

// IsCondition returns true for the conditional and iterative kinds.
func (k Kind) IsCondition() bool {
	switch k {
	case KindForEach, KindIf, KindChoose, KindWhen, KindOtherwise:
		return true
	default:
		return false
	}
}

// ValueType tells how a ValueSelector's result is written into the target.
type ValueType int

const (
	ValueTypeValue     ValueType = iota // copy the text value
	ValueTypeAttribute                  // copy into an attribute
	ValueTypeContainer                  // deep copy of a structure
)

// String returns the serialized name of the value type.
func (v ValueType) String() string {
	switch v {
	case ValueTypeValue:
		return "value"
	case ValueTypeAttribute:
		return "attribute"
	case ValueTypeContainer:
		return "container"
	default:
		return common.UnknownStr
	}
}

// ParseValueType parses the serialized form produced by ValueType.String.
// An empty string means ValueTypeValue.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "", "value":
		return ValueTypeValue, nil
	case "attribute":
		return ValueTypeAttribute, nil
	case "container":
		return ValueTypeContainer, nil
	default:
		return 0, fmt.Errorf("unknown value type %q", s)
	}
}

// SourceRef points at a source field (or a whole primitive source document
// when Path is empty).
type SourceRef struct {
	Document document.Ref
	Path     string
}

// String returns "kind:id/path".
func (s SourceRef) String() string {
	if s.Path == "" {
		return s.Document.String()
	}

	return s.Document.String() + common.PathSeparator + s.Path
}

// Expression is the textual expression of a condition or value selector
// together with the source fields it reads.
type Expression struct {
	Text    string
	Sources []SourceRef
}

// References returns true if the expression reads from the given document.
func (e Expression) References(doc document.Ref) bool {
	return slices.ContainsFunc(e.Sources, func(s SourceRef) bool {
		return s.Document == doc
	})
}

// IsEmpty returns true if there is neither text nor a source reference.
func (e Expression) IsEmpty() bool {
	return e.Text == "" && len(e.Sources) == 0
}

// Comparator orders sibling items that map the same field.
type Comparator func(a, b Item) int

// ByCreation orders items by creation sequence. It is the default order.
func ByCreation(a, b Item) int {
	return cmp.Compare(a.Seq(), b.Seq())
}
