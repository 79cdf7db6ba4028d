package analyze

import (
	"go/types"
	"reflect"
	"strings"

	"datamapper/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "datamapper/store"
	Name    string // e.g., "Account"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindAlias             // named type wrapping another
	TypeKindExternal          // opaque type from another package (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // empty for unnamed types like *T or []T
	Kind       TypeKind
	Underlying *TypeInfo   // for named non-struct types
	ElemType   *TypeInfo   // for pointers, slices and arrays
	Fields     []FieldInfo // for structs
	GoType     types.Type
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Type     *TypeInfo
	Tag      reflect.StructTag // raw struct tag
	Embedded bool
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}

	return f.Name
}

// DocumentName returns the name the field has in a document and whether it
// is an attribute. The xml tag wins over the json tag. ok is false for
// fields excluded by a "-" tag and for the XMLName marker field.
func (f *FieldInfo) DocumentName() (name string, attr bool, ok bool) {
	if f.Name == "XMLName" {
		return "", false, false
	}

	if tag, found := f.Tag.Lookup("xml"); found {
		name, opts, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", false, false
		}

		if name == "" {
			name = f.Name
		}

		return name, hasOption(opts, "attr"), true
	}

	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name == "-" {
		return "", false, false
	}

	return f.JSONName(), false, true
}

func hasOption(opts, want string) bool {
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == want {
			return true
		}
	}

	return false
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
