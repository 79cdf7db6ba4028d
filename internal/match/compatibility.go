package match

import (
	"strings"

	"datamapper/internal/common"
	"datamapper/internal/document"
)

// Compatibility grades how well a source field can feed a target field.
type Compatibility int

const (
	Incompatible Compatibility = iota
	NeedsTransform
	Convertible
	Assignable
	Identical
)

// String returns a human-readable name of the level.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return "identical"
	case Assignable:
		return "assignable"
	case Convertible:
		return "convertible"
	case NeedsTransform:
		return "needs_transform"
	case Incompatible:
		return "incompatible"
	default:
		return common.UnknownStr
	}
}

// weight converts the level to a score in [0, 1].
func (c Compatibility) weight() float64 {
	switch c {
	case Identical:
		return 1
	case Assignable:
		return 0.9
	case Convertible:
		return 0.7
	case NeedsTransform:
		return 0.4
	default:
		return 0
	}
}

// CompatibilityResult explains a compatibility verdict.
type CompatibilityResult struct {
	Compatibility Compatibility
	Reason        string
}

var numericTypes = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true, "integer": true, "long": true, "short": true,
	"decimal": true, "double": true, "float": true, "number": true, "byte": true,
}

var textTypes = map[string]bool{
	"string": true, "token": true, "normalizedstring": true, "anyuri": true,
}

// ScoreCompatibility compares the shapes of source and target.
func ScoreCompatibility(source, target *document.Field) CompatibilityResult {
	srcLeaf, dstLeaf := source.IsLeaf(), target.IsLeaf()

	if srcLeaf != dstLeaf {
		return CompatibilityResult{Incompatible, "value and container do not mix"}
	}

	st, tt := typeName(source.Type), typeName(target.Type)

	var result CompatibilityResult

	switch {
	case st != "" && st == tt:
		result = CompatibilityResult{Identical, "same type"}
	case st == "" || tt == "":
		result = CompatibilityResult{Assignable, "untyped field"}
	case !srcLeaf:
		result = CompatibilityResult{NeedsTransform, "different structures"}
	case numericTypes[st] && numericTypes[tt]:
		result = CompatibilityResult{Convertible, "numeric conversion"}
	case textTypes[tt]:
		result = CompatibilityResult{Convertible, "rendered as text"}
	default:
		result = CompatibilityResult{NeedsTransform, "types differ"}
	}

	if source.IsCollection != target.IsCollection && result.Compatibility > NeedsTransform {
		result = CompatibilityResult{NeedsTransform, "collection mismatch"}
	}

	return result
}

// typeName strips a namespace prefix and folds case: "xs:String" gives
// "string".
func typeName(t string) string {
	if _, local, ok := strings.Cut(t, ":"); ok {
		t = local
	}

	return strings.ToLower(t)
}
