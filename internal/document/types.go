package document

import (
	"fmt"
	"strings"

	"datamapper/internal/common"
)

// Kind identifies the role a document plays in a mapping.
type Kind int

const (
	KindSourceBody Kind = iota // the message body the mapping reads from
	KindTargetBody             // the message body the mapping produces
	KindParameter              // a named source parameter
)

// String returns the serialized name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSourceBody:
		return "sourceBody"
	case KindTargetBody:
		return "targetBody"
	case KindParameter:
		return "param"
	default:
		return common.UnknownStr
	}
}

// IsSource returns true for documents that mappings read from.
func (k Kind) IsSource() bool {
	return k == KindSourceBody || k == KindParameter
}

// ParseKind parses the serialized form produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "sourceBody":
		return KindSourceBody, nil
	case "targetBody":
		return KindTargetBody, nil
	case "param":
		return KindParameter, nil
	default:
		return 0, fmt.Errorf("unknown document kind %q", s)
	}
}

// Ref is a comparable reference to a document.
type Ref struct {
	Kind Kind
	ID   string
}

// String returns "kind:id".
func (r Ref) String() string {
	return r.Kind.String() + ":" + r.ID
}

// ParseRef parses the "kind:id" form produced by Ref.String.
func ParseRef(s string) (Ref, error) {
	kindStr, id, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return Ref{}, fmt.Errorf("invalid document reference %q", s)
	}

	kind, err := ParseKind(kindStr)
	if err != nil {
		return Ref{}, err
	}

	return Ref{Kind: kind, ID: id}, nil
}

// Field is one node of a document schema.
//
// Parent and Document are back references set when the field is adopted by
// a document; they do not own anything.
type Field struct {
	Name        string
	DisplayName string
	ID          string
	Type        string // schema type name, e.g. "string" or "Address"

	IsAttribute  bool
	IsCollection bool
	IsChoice     bool

	// SelectedMemberIndex is the index into Fields of the chosen member of
	// a choice field. Nil when no member is selected.
	SelectedMemberIndex *int

	Fields           []*Field
	TypeFragmentRefs []string

	Parent   *Field
	Document *Document
}

// Title returns the display name, falling back to the name.
func (f *Field) Title() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}

	return f.Name
}

// Path returns the "/"-joined field IDs from the document root.
func (f *Field) Path() string {
	if f.Parent == nil {
		return f.ID
	}

	return common.JoinPath(f.Parent.Path(), f.ID)
}

// DocumentRef returns the owning document reference, or the zero Ref when
// the field has not been adopted.
func (f *Field) DocumentRef() Ref {
	if f.Document == nil {
		return Ref{}
	}

	return f.Document.Ref()
}

// IsLeaf returns true if the field can never have children: no nested
// fields, no pending fragment references and not a choice.
func (f *Field) IsLeaf() bool {
	return len(f.Fields) == 0 && len(f.TypeFragmentRefs) == 0 && !f.IsChoice
}

// HasPendingRefs returns true if fragment references are still unresolved.
func (f *Field) HasPendingRefs() bool {
	return len(f.TypeFragmentRefs) > 0
}

// SelectedMember returns the selected member of a choice field.
func (f *Field) SelectedMember() (*Field, bool) {
	if !f.IsChoice || f.SelectedMemberIndex == nil {
		return nil, false
	}

	idx := *f.SelectedMemberIndex
	if idx < 0 || idx >= len(f.Fields) {
		return nil, false
	}

	return f.Fields[idx], true
}

// SelectMember marks the member at index as the only selected one.
func (f *Field) SelectMember(index int) error {
	if !f.IsChoice {
		return fmt.Errorf("field %q is not a choice", f.Path())
	}

	if index < 0 || index >= len(f.Fields) {
		return fmt.Errorf("choice %q has no member %d", f.Path(), index)
	}

	f.SelectedMemberIndex = &index

	return nil
}

// ClearSelection removes the choice member selection.
func (f *Field) ClearSelection() {
	f.SelectedMemberIndex = nil
}

// Fragment is a named, reusable list of fields. A fragment may extend other
// fragments through Refs; their fields come first.
type Fragment struct {
	Fields []*Field
	Refs   []string
}

// Document is a schema-backed or primitive data shape.
type Document struct {
	ID           string
	Name         string
	Kind         Kind
	Fields       []*Field
	Fragments    map[string]*Fragment
	NamespaceMap map[string]string
	IsPrimitive  bool
}

// NewDocument creates a structured document and adopts the given fields.
func NewDocument(kind Kind, id string, fields ...*Field) *Document {
	doc := &Document{
		ID:           id,
		Name:         id,
		Kind:         kind,
		Fields:       fields,
		Fragments:    make(map[string]*Fragment),
		NamespaceMap: make(map[string]string),
	}

	adopt(doc, nil, doc.Fields)

	return doc
}

// NewPrimitiveDocument creates a document holding a single unnamed value.
func NewPrimitiveDocument(kind Kind, id string) *Document {
	return &Document{
		ID:           id,
		Name:         id,
		Kind:         kind,
		Fragments:    make(map[string]*Fragment),
		NamespaceMap: make(map[string]string),
		IsPrimitive:  true,
	}
}

// Ref returns the comparable reference of the document.
func (d *Document) Ref() Ref {
	return Ref{Kind: d.Kind, ID: d.ID}
}

// HasSchema returns true if the document has fields to navigate.
func (d *Document) HasSchema() bool {
	return !d.IsPrimitive && len(d.Fields) > 0
}

// AddFragment registers a named fragment.
func (d *Document) AddFragment(name string, frag *Fragment) {
	if d.Fragments == nil {
		d.Fragments = make(map[string]*Fragment)
	}

	d.Fragments[name] = frag
}

// AddField appends a top-level field and adopts it.
func (d *Document) AddField(f *Field) {
	d.Fields = append(d.Fields, f)
	adopt(d, nil, d.Fields)
}

// adopt sets back references and assigns sibling-unique IDs for the whole
// subtree of fields.
func adopt(doc *Document, parent *Field, fields []*Field) {
	seen := make(map[string]int, len(fields))

	for _, f := range fields {
		base := segmentOf(f)

		id := base
		if n := seen[base]; n > 0 {
			id = fmt.Sprintf("%s-%d", base, n)
		}

		seen[base]++
		f.ID = id
		f.Parent = parent
		f.Document = doc

		adopt(doc, f, f.Fields)
	}
}

// adoptAlongside adopts fresh fields next to already adopted siblings. The
// siblings keep their IDs; a colliding fresh field gets the next free suffix.
func adoptAlongside(doc *Document, parent *Field, siblings, fresh []*Field) {
	taken := make(map[string]bool, len(siblings)+len(fresh))
	for _, f := range siblings {
		taken[f.ID] = true
	}

	for _, f := range fresh {
		base := segmentOf(f)

		id := base
		for n := 1; taken[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}

		taken[id] = true
		f.ID = id
		f.Parent = parent
		f.Document = doc

		adopt(doc, f, f.Fields)
	}
}

func segmentOf(f *Field) string {
	if f.IsAttribute {
		return "@" + f.Name
	}

	return f.Name
}
