package analyze

import (
	"go/types"

	"datamapper/internal/common"
	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
)

// Diagnostic codes reported while converting types.
const (
	CodeUnsupportedType  = "unsupported_type"
	CodeNestedCollection = "nested_collection"
)

// Document converts the named struct type id into a document of the given
// kind. The document ID is the type name. Fields whose type has no document
// shape are skipped with a warning.
func (a *Analyzer) Document(kind document.Kind, id TypeID) (*document.Document, *diagnostic.Diagnostics, error) {
	root, err := a.GetStruct(id.PkgPath, id.Name)
	if err != nil {
		return nil, nil, err
	}

	b := &docBuilder{
		docID:     document.Ref{Kind: kind, ID: id.Name}.String(),
		diags:     &diagnostic.Diagnostics{},
		fragments: make(map[string]*document.Fragment),
	}

	fields := b.fields(root, "")

	doc := document.NewDocument(kind, id.Name, fields...)
	for name, frag := range b.fragments {
		doc.AddFragment(name, frag)
	}

	return doc, b.diags, nil
}

type docBuilder struct {
	docID     string
	diags     *diagnostic.Diagnostics
	fragments map[string]*document.Fragment
}

// fields converts the fields of a struct type; path is used for
// diagnostics only.
func (b *docBuilder) fields(t *TypeInfo, path string) []*document.Field {
	var out []*document.Field

	for i := range t.Fields {
		fi := &t.Fields[i]

		name, attr, ok := fi.DocumentName()
		if !ok {
			continue
		}

		if fi.Embedded {
			if st := embeddedStruct(fi.Type); st != nil {
				out = append(out, b.fields(st, path)...)
				continue
			}
		}

		if f, ok := b.field(fi.Type, name, attr, common.JoinPath(path, name)); ok {
			out = append(out, f)
		}
	}

	return out
}

func (b *docBuilder) field(t *TypeInfo, name string, attr bool, path string) (*document.Field, bool) {
	f := &document.Field{Name: name, IsAttribute: attr}

	for t != nil {
		switch t.Kind {
		case TypeKindPointer:
			t = t.ElemType
			continue
		case TypeKindSlice, TypeKindArray:
			if isBytes(t) {
				f.Type = "[]byte"
				return f, true
			}

			if f.IsCollection {
				b.diags.AddWarning(CodeNestedCollection, "nested collection flattened", b.docID, path)
			}

			f.IsCollection = true
			t = t.ElemType

			continue
		case TypeKindAlias:
			if t.Underlying != nil && t.Underlying.Kind != TypeKindBasic {
				t = t.Underlying
				continue
			}

			f.Type = t.ID.Name
		case TypeKindBasic:
			f.Type = t.GoType.String()
		case TypeKindExternal:
			f.Type = t.ID.String()
		case TypeKindStruct:
			if !t.IsNamed() {
				f.Type = "struct"
				f.Fields = b.fields(t, path)

				return f, true
			}

			f.Type = t.ID.Name
			f.TypeFragmentRefs = []string{b.fragment(t)}
		default:
			b.diags.AddWarning(CodeUnsupportedType, "field type has no document shape", b.docID, path)
			return nil, false
		}

		return f, true
	}

	b.diags.AddWarning(CodeUnsupportedType, "field type is unknown", b.docID, path)

	return nil, false
}

// fragment registers the fields of a named struct as a fragment once and
// returns its name. The entry is created before the fields are converted so
// that recursive types refer back to it.
func (b *docBuilder) fragment(t *TypeInfo) string {
	name := t.ID.String()
	if _, ok := b.fragments[name]; ok {
		return name
	}

	frag := &document.Fragment{}
	b.fragments[name] = frag
	frag.Fields = b.fields(t, t.ID.Name)

	return name
}

func embeddedStruct(t *TypeInfo) *TypeInfo {
	if t != nil && t.Kind == TypeKindPointer {
		t = t.ElemType
	}

	if t != nil && t.Kind == TypeKindStruct {
		return t
	}

	return nil
}

func isBytes(t *TypeInfo) bool {
	if t.Kind != TypeKindSlice || t.ElemType == nil {
		return false
	}

	basic, ok := t.ElemType.GoType.(*types.Basic)

	return ok && basic.Kind() == types.Uint8
}
