package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
)

// File permission for written snapshots.
const filePerm = 0o644

// LoadFile loads and parses a YAML mapping snapshot from the given path.
func LoadFile(path string) (*SnapshotFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a SnapshotFile.
func Parse(data []byte) (*SnapshotFile, error) {
	var sf SnapshotFile

	err := yaml.Unmarshal(data, &sf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&sf)

	return &sf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(sf *SnapshotFile) {
	if sf.Version == "" {
		sf.Version = "1"
	}
}

// Marshal serializes a SnapshotFile to YAML.
func Marshal(sf *SnapshotFile) ([]byte, error) {
	return yaml.Marshal(sf)
}

// WriteFile writes a SnapshotFile to the given path.
func WriteFile(sf *SnapshotFile, path string) error {
	data, err := Marshal(sf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// Snapshot converts a tree into its serializable form.
func Snapshot(tree *Tree) *SnapshotFile {
	sf := &SnapshotFile{
		Version:  "1",
		Document: tree.Document.String(),
		Items:    specsOf(tree.Children()),
	}

	if len(tree.NamespaceMap) > 0 {
		sf.Namespaces = tree.NamespaceMap
	}

	return sf
}

func specsOf(items []Item) []ItemSpec {
	if len(items) == 0 {
		return nil
	}

	specs := make([]ItemSpec, 0, len(items))

	for _, it := range items {
		spec := ItemSpec{
			Kind:     it.Kind().String(),
			ID:       it.ID(),
			Children: specsOf(it.Children()),
		}

		switch v := it.(type) {
		case *FieldItem:
			if v.Field != nil {
				spec.Field = v.Field.ID
			}
		case *ValueSelector:
			if v.ValueType != ValueTypeValue {
				spec.ValueType = v.ValueType.String()
			}
		}

		if expr, ok := ExpressionOf(it); ok {
			spec.Expression = expr.Text
			for _, src := range expr.Sources {
				spec.Sources = append(spec.Sources, SourceSpec{Document: src.Document.String(), Path: src.Path})
			}
		}

		specs = append(specs, spec)
	}

	return specs
}

// Build reconstructs a tree for doc from a snapshot. Items that cannot be
// placed (unknown field, misplaced branch, bad source reference) are
// dropped together with their subtree and reported as warnings. A document
// mismatch is an error.
func Build(sf *SnapshotFile, doc *document.Document) (*Tree, *diagnostic.Diagnostics) {
	res := &diagnostic.Diagnostics{}
	if sf == nil || doc == nil {
		res.AddError("snapshot_is_nil", "snapshot or document is nil", "", "")
		return nil, res
	}

	ref, err := document.ParseRef(sf.Document)
	if err != nil {
		res.AddError("invalid_document", err.Error(), sf.Document, "")
		return nil, res
	}

	if ref != doc.Ref() {
		res.AddError("document_mismatch",
			fmt.Sprintf("snapshot is for %s, not %s", ref, doc.Ref()), sf.Document, "")

		return nil, res
	}

	tree := NewTree(ref)
	for k, v := range sf.Namespaces {
		tree.NamespaceMap[k] = v
	}

	b := &builder{tree: tree, res: res, scope: ref.String()}
	b.build(nil, doc.Fields, sf.Items)

	// building is not an edit
	tree.revision = 0

	return tree, res
}

// Unmarshal parses YAML data and builds a tree for doc.
func Unmarshal(data []byte, doc *document.Document) (*Tree, *diagnostic.Diagnostics, error) {
	sf, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}

	tree, res := Build(sf, doc)
	if res.HasErrors() {
		return nil, res, res.Error()
	}

	return tree, res, nil
}

type builder struct {
	tree  *Tree
	res   *diagnostic.Diagnostics
	scope string
}

func (b *builder) build(parent Item, fields []*document.Field, specs []ItemSpec) {
	for i := range specs {
		spec := &specs[i]

		item, ctx, ok := b.item(fields, spec)
		if !ok {
			continue
		}

		if err := b.tree.Append(parent, item); err != nil {
			b.res.AddWarning("misplaced_item", fmt.Sprintf("dropping %s item: %v", spec.Kind, err), b.scope, spec.Field)
			continue
		}

		b.build(item, ctx, spec.Children)
	}
}

// item creates the item for spec and returns the field context its
// children are resolved against.
func (b *builder) item(fields []*document.Field, spec *ItemSpec) (Item, []*document.Field, bool) {
	kind, err := ParseKind(spec.Kind)
	if err != nil {
		b.res.AddWarning("unknown_kind", err.Error(), b.scope, spec.Field)
		return nil, nil, false
	}

	expr, ok := b.expression(spec)
	if !ok {
		return nil, nil, false
	}

	var (
		item Item
		ctx  = fields
	)

	switch kind {
	case KindField:
		field, found := lookupField(fields, spec.Field)
		if !found {
			b.res.AddWarning("unknown_field", fmt.Sprintf("field %q not found", spec.Field), b.scope, spec.Field)
			return nil, nil, false
		}

		item = NewFieldItem(field)
		ctx = document.ResolvedFields(field)
	case KindForEach:
		item = NewForEachItem(expr)
	case KindIf:
		item = NewIfItem(expr)
	case KindChoose:
		item = NewChooseItem()
	case KindWhen:
		item = NewWhenItem(expr)
	case KindOtherwise:
		item = NewOtherwiseItem()
	case KindValueSelector:
		vt, err := ParseValueType(spec.ValueType)
		if err != nil {
			b.res.AddWarning("unknown_value_type", err.Error(), b.scope, spec.Field)
			return nil, nil, false
		}

		item = NewValueSelector(expr, vt)
	}

	if spec.ID != "" {
		item.base().id = spec.ID
	}

	return item, ctx, true
}

func (b *builder) expression(spec *ItemSpec) (Expression, bool) {
	expr := Expression{Text: spec.Expression}

	for _, src := range spec.Sources {
		ref, err := document.ParseRef(src.Document)
		if err != nil {
			b.res.AddWarning("invalid_source", err.Error(), b.scope, src.Path)
			return Expression{}, false
		}

		expr.Sources = append(expr.Sources, SourceRef{Document: ref, Path: src.Path})
	}

	return expr, true
}

// lookupField finds a field by ID among fields, looking through choice
// members whose FieldItems live at the choice's level.
func lookupField(fields []*document.Field, id string) (*document.Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}

	for _, f := range fields {
		if f.IsChoice {
			if m, ok := lookupField(f.Fields, id); ok {
				return m, true
			}
		}
	}

	return nil, false
}
