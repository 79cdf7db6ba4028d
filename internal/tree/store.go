package tree

import (
	"go.uber.org/zap"

	"datamapper/internal/document"
	"datamapper/internal/mapping"
	"datamapper/internal/visualize"
)

// Store keeps the document trees of one editing session, keyed by document
// reference. It is not safe for concurrent use.
type Store struct {
	parser      *Parser
	depthLimit  int
	fieldBudget int
	logger      *zap.Logger
	trees       map[document.Ref]*DocumentTree
}

// NewStore creates a Store building trees with the given limits.
func NewStore(parser *Parser, depthLimit, fieldBudget int, logger *zap.Logger) *Store {
	if parser == nil {
		parser = NewParser(nil, logger)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		parser:      parser,
		depthLimit:  depthLimit,
		fieldBudget: fieldBudget,
		logger:      logger,
		trees:       make(map[document.Ref]*DocumentTree),
	}
}

// Get returns the stored tree of a document without checking staleness.
func (s *Store) Get(ref document.Ref) (*DocumentTree, bool) {
	dt, ok := s.trees[ref]
	return dt, ok
}

// Put stores dt, replacing any tree of the same document. A tree without a
// document has no key and is not stored; Put then reports false.
func (s *Store) Put(dt *DocumentTree) bool {
	if dt == nil || dt.Document == nil {
		s.logger.Debug("document tree without document not stored")
		return false
	}

	s.trees[dt.Document.Ref()] = dt

	return true
}

// Evict drops the tree of a document.
func (s *Store) Evict(ref document.Ref) {
	delete(s.trees, ref)
}

// Len returns the number of stored trees.
func (s *Store) Len() int {
	return len(s.trees)
}

// GetOrBuild returns the stored tree of doc, rebuilding it when the
// document pointer, the mapping tree pointer or the mapping revision
// changed since it was built. Source documents pass a nil mapping tree.
func (s *Store) GetOrBuild(doc *document.Document, mappings *mapping.Tree) *DocumentTree {
	ref := doc.Ref()

	if dt, ok := s.trees[ref]; ok && !dt.IsStale(doc, mappings) {
		return dt
	}

	dt := s.parser.BuildTree(visualize.NewDocumentNode(doc, mappings), s.depthLimit, s.fieldBudget)
	s.trees[ref] = dt

	s.logger.Debug("rebuilt document tree", zap.Stringer("document", ref), zap.Uint64("revision", dt.Revision))

	return dt
}
