package document

import (
	"slices"

	"datamapper/internal/common"
)

// Resolve substitutes the fields of the fragments referenced by f.
//
// Resolved references are removed from f, so calling Resolve again performs
// no further change. References that cannot be found are kept and Resolve
// returns false; the field then simply has fewer (possibly zero) children.
// Recursive types stay lazy: cloned fragment fields keep their own
// references until they are resolved in turn.
func Resolve(f *Field) bool {
	if f == nil || len(f.TypeFragmentRefs) == 0 {
		return true
	}

	if f.Document == nil {
		return false
	}

	var (
		resolved []*Field
		pending  []string
	)

	for _, ref := range f.TypeFragmentRefs {
		fields, ok := fragmentFields(f.Document, ref, map[string]bool{})
		if !ok {
			pending = append(pending, ref)
			continue
		}

		resolved = append(resolved, fields...)
	}

	if len(resolved) > 0 {
		adoptAlongside(f.Document, f, f.Fields, resolved)
		f.Fields = append(resolved, f.Fields...)
	}

	f.TypeFragmentRefs = pending

	return len(pending) == 0
}

// ResolvedFields resolves f and returns its children.
func ResolvedFields(f *Field) []*Field {
	Resolve(f)

	return f.Fields
}

// fragmentFields returns clones of the fields of the named fragment,
// preceded by the fields of the fragments it extends.
func fragmentFields(doc *Document, name string, visiting map[string]bool) ([]*Field, bool) {
	frag, ok := doc.Fragments[name]
	if !ok || frag == nil {
		return nil, false
	}

	if visiting[name] {
		// extension cycle; contributes nothing further
		return nil, true
	}

	visiting[name] = true
	defer delete(visiting, name)

	var result []*Field

	for _, base := range frag.Refs {
		fields, ok := fragmentFields(doc, base, visiting)
		if !ok {
			return nil, false
		}

		result = append(result, fields...)
	}

	for _, f := range frag.Fields {
		result = append(result, Clone(f))
	}

	return result, true
}

// Clone deep-copies a field subtree. Back references are cleared; the
// clone is adopted by whoever inserts it.
func Clone(f *Field) *Field {
	c := *f
	c.Parent = nil
	c.Document = nil
	c.TypeFragmentRefs = slices.Clone(f.TypeFragmentRefs)

	if f.SelectedMemberIndex != nil {
		idx := *f.SelectedMemberIndex
		c.SelectedMemberIndex = &idx
	}

	c.Fields = make([]*Field, 0, len(f.Fields))
	for _, child := range f.Fields {
		c.Fields = append(c.Fields, Clone(child))
	}

	return &c
}

// FieldByPath finds a field by its "/"-joined ID path, resolving fragments
// on the way down.
func (d *Document) FieldByPath(path string) (*Field, bool) {
	segments := common.SplitPath(path)
	if len(segments) == 0 {
		return nil, false
	}

	fields := d.Fields

	var current *Field

	for _, seg := range segments {
		current = nil

		for _, f := range fields {
			if f.ID == seg {
				current = f
				break
			}
		}

		if current == nil {
			return nil, false
		}

		fields = ResolvedFields(current)
	}

	return current, true
}

// Walk visits every field that is currently materialized in depth-first
// order. It does not resolve fragments. Returning false from fn skips the
// field's children.
func Walk(fields []*Field, fn func(*Field) bool) {
	for _, f := range fields {
		if fn(f) {
			Walk(f.Fields, fn)
		}
	}
}
