package visualize

import (
	"datamapper/internal/common"
	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

// NodeKind discriminates the NodeData union.
type NodeKind int

const (
	NodeDocument NodeKind = iota
	NodeField
	NodeMapping
	NodeChoiceField
	NodeAddMapping
)

// String returns a human-readable name of the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "document"
	case NodeField:
		return "field"
	case NodeMapping:
		return "mapping"
	case NodeChoiceField:
		return "choice"
	case NodeAddMapping:
		return "addMapping"
	default:
		return common.UnknownStr
	}
}

// NodeData is one view node. References to documents, fields, mapping
// items and the parent node are relations only; view nodes own nothing and
// are regenerated rather than cached.
type NodeData interface {
	Kind() NodeKind
	ID() string
	Title() string
	Path() string
	IsSource() bool
	IsPrimitive() bool
	Parent() NodeData
	Document() *document.Document
	Tree() *mapping.Tree
	Field() *document.Field
	Mapping() mapping.Item

	data() *nodeBase
}

type nodeBase struct {
	id          string
	title       string
	path        string
	isSource    bool
	isPrimitive bool
	parent      NodeData
	doc         *document.Document
	tree        *mapping.Tree
	field       *document.Field
	item        mapping.Item
}

func (n *nodeBase) data() *nodeBase { return n }

func (n *nodeBase) ID() string                   { return n.id }
func (n *nodeBase) Title() string                { return n.title }
func (n *nodeBase) Path() string                 { return n.path }
func (n *nodeBase) IsSource() bool               { return n.isSource }
func (n *nodeBase) IsPrimitive() bool            { return n.isPrimitive }
func (n *nodeBase) Parent() NodeData             { return n.parent }
func (n *nodeBase) Document() *document.Document { return n.doc }
func (n *nodeBase) Tree() *mapping.Tree          { return n.tree }
func (n *nodeBase) Field() *document.Field       { return n.field }
func (n *nodeBase) Mapping() mapping.Item        { return n.item }

// DocumentNodeData is the root node of a document.
type DocumentNodeData struct {
	nodeBase
}

func (*DocumentNodeData) Kind() NodeKind { return NodeDocument }

// NewDocumentNode creates the root view node of doc. Target documents pass
// their mapping tree; source documents pass nil.
func NewDocumentNode(doc *document.Document, tree *mapping.Tree) *DocumentNodeData {
	if doc == nil {
		panic("visualize: document node requires a document")
	}

	ref := doc.Ref().String()

	return &DocumentNodeData{nodeBase{
		id:          ref,
		title:       doc.Name,
		path:        ref,
		isSource:    doc.Kind.IsSource(),
		isPrimitive: doc.IsPrimitive,
		doc:         doc,
		tree:        tree,
	}}
}

// FieldNodeData is a source field, or a target field without mappings.
type FieldNodeData struct {
	nodeBase
}

func (*FieldNodeData) Kind() NodeKind { return NodeField }

// MappingNodeData is a mapping item attached to a target field (or to a
// primitive target document, in which case Field is nil).
type MappingNodeData struct {
	nodeBase
}

func (*MappingNodeData) Kind() NodeKind { return NodeMapping }

// ChoiceFieldNodeData wraps the members of a choice field that has no
// selected member.
type ChoiceFieldNodeData struct {
	nodeBase

	// candidates are the mapping items of the enclosing context; members of
	// the choice are mapped at the same level as the choice itself.
	candidates []mapping.Item
}

func (*ChoiceFieldNodeData) Kind() NodeKind { return NodeChoiceField }

// AddMappingNodeData is the placeholder offering another mapping for a
// mapped collection field.
type AddMappingNodeData struct {
	nodeBase
}

func (*AddMappingNodeData) Kind() NodeKind { return NodeAddMapping }

// addMappingPrefix prefixes the path segment of add-mapping placeholders.
const addMappingPrefix = "add-mapping-"

func childBase(parent NodeData, segment, title string) nodeBase {
	p := parent.data()

	return nodeBase{
		id:       segment,
		title:    title,
		path:     common.JoinPath(p.path, segment),
		isSource: p.isSource,
		parent:   parent,
		doc:      p.doc,
		tree:     p.tree,
	}
}

func newFieldNode(parent NodeData, f *document.Field) *FieldNodeData {
	b := childBase(parent, f.ID, f.Title())
	b.field = f
	b.isPrimitive = f.IsLeaf()

	return &FieldNodeData{b}
}

func newChoiceNode(parent NodeData, f *document.Field, candidates []mapping.Item) *ChoiceFieldNodeData {
	b := childBase(parent, f.ID, f.Title())
	b.field = f

	return &ChoiceFieldNodeData{nodeBase: b, candidates: candidates}
}

func newMappingNode(parent NodeData, item mapping.Item, f *document.Field) *MappingNodeData {
	b := childBase(parent, item.ID(), mappingTitle(item, f))
	b.item = item
	b.field = f

	if f != nil {
		b.isPrimitive = f.IsLeaf()
	} else {
		b.isPrimitive = b.doc.IsPrimitive
	}

	return &MappingNodeData{b}
}

func newAddMappingNode(parent NodeData, f *document.Field) *AddMappingNodeData {
	b := childBase(parent, addMappingPrefix+f.ID, f.Title())
	b.field = f

	return &AddMappingNodeData{b}
}

func mappingTitle(item mapping.Item, f *document.Field) string {
	switch item.Kind() {
	case mapping.KindField:
		if f != nil {
			return f.Title()
		}

		return "field"
	case mapping.KindForEach:
		return "for-each"
	case mapping.KindValueSelector:
		return "value"
	default:
		return item.Kind().String()
	}
}
