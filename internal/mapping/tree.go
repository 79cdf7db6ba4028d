package mapping

import (
	"errors"
	"fmt"
	"slices"

	"datamapper/internal/document"
)

var (
	// ErrInvalidChild is returned when a kind is not allowed under a parent.
	ErrInvalidChild = errors.New("invalid child item")
	// ErrDuplicateOtherwise is returned when a choose already has an otherwise.
	ErrDuplicateOtherwise = errors.New("choose already has an otherwise branch")
	// ErrNotInTree is returned for items that do not belong to the tree.
	ErrNotInTree = errors.New("item does not belong to this tree")
	// ErrAttached is returned when inserting an item that already has a tree.
	ErrAttached = errors.New("item is already attached")
)

// Tree is the root container of the mapping items of one target document.
type Tree struct {
	Document     document.Ref
	NamespaceMap map[string]string

	children []Item
	seq      uint64
	revision uint64
}

// NewTree creates an empty mapping tree for a target document.
func NewTree(doc document.Ref) *Tree {
	return &Tree{
		Document:     doc,
		NamespaceMap: make(map[string]string),
	}
}

// Children returns the top-level items. The slice must not be modified.
func (t *Tree) Children() []Item {
	return t.children
}

// Revision is bumped on every structural change and by Touch.
func (t *Tree) Revision() uint64 {
	return t.revision
}

// Touch records a non-structural change, such as an edited expression.
func (t *Tree) Touch() {
	t.revision++
}

// Append attaches a detached item as the last child of parent. A nil parent
// means the top level. When branches are kept before the otherwise branch.
func (t *Tree) Append(parent Item, item Item) error {
	if err := t.checkInsert(parent, item); err != nil {
		return err
	}

	siblings := t.childList(parent)
	idx := len(*siblings)

	if item.Kind() == KindWhen {
		if i := slices.IndexFunc(*siblings, isOtherwise); i >= 0 {
			idx = i
		}
	}

	t.attach(parent, item, idx)

	return nil
}

// Remove detaches item and its subtree from the tree.
func (t *Tree) Remove(item Item) error {
	if item == nil || item.Tree() != t {
		return ErrNotInTree
	}

	siblings := t.childList(item.Parent())

	idx := slices.Index(*siblings, item)
	if idx < 0 {
		return ErrNotInTree
	}

	*siblings = slices.Delete(*siblings, idx, idx+1)

	b := item.base()
	b.parent = nil

	Walk([]Item{item}, func(it Item) bool {
		it.base().tree = nil
		return true
	})

	t.revision++

	return nil
}

// Wrap replaces item by wrapper at the same position and moves item under
// wrapper. For a ChooseItem wrapper the item is moved under branch, which
// must be a detached When or Otherwise item; branch is ignored otherwise.
func (t *Tree) Wrap(item Item, wrapper Item, branch Item) error {
	if item == nil || item.Tree() != t {
		return ErrNotInTree
	}

	if wrapper.Tree() != nil {
		return ErrAttached
	}

	parent := item.Parent()
	if err := checkKinds(parent, wrapper); err != nil {
		return err
	}

	holder := wrapper
	if wrapper.Kind() == KindChoose {
		if branch == nil || (branch.Kind() != KindWhen && branch.Kind() != KindOtherwise) {
			return fmt.Errorf("%w: choose needs a when or otherwise branch", ErrInvalidChild)
		}

		if branch.Tree() != nil {
			return ErrAttached
		}

		holder = branch
	}

	if err := checkKinds(holder, item); err != nil {
		return err
	}

	siblings := t.childList(parent)
	idx := slices.Index(*siblings, item)

	*siblings = slices.Delete(*siblings, idx, idx+1)
	t.attach(parent, wrapper, idx)

	// the wrapper takes the place of item in the creation order too
	wrapper.base().seq = item.Seq()

	if holder != wrapper {
		t.attach(wrapper, holder, 0)
	}

	ib := item.base()
	ib.parent = holder
	hb := holder.base()
	hb.children = append(hb.children, item)

	t.revision++

	return nil
}

// Unwrap removes a condition item and lifts its children into its place.
// Only for-each and if items can be unwrapped.
func (t *Tree) Unwrap(item Item) error {
	if item == nil || item.Tree() != t {
		return ErrNotInTree
	}

	switch item.Kind() {
	case KindForEach, KindIf:
	default:
		return fmt.Errorf("%w: cannot unwrap %s", ErrInvalidChild, item.Kind())
	}

	parent := item.Parent()
	for _, child := range item.Children() {
		if err := checkKinds(parent, child); err != nil {
			return err
		}
	}

	siblings := t.childList(parent)
	idx := slices.Index(*siblings, item)
	lifted := item.Children()

	for _, child := range lifted {
		child.base().parent = parent
	}

	*siblings = slices.Replace(*siblings, idx, idx+1, lifted...)

	b := item.base()
	b.children = nil
	b.parent = nil
	b.tree = nil

	t.revision++

	return nil
}

// Find returns the item with the given ID.
func (t *Tree) Find(id string) (Item, bool) {
	var found Item

	Walk(t.children, func(it Item) bool {
		if found != nil {
			return false
		}

		if it.ID() == id {
			found = it
			return false
		}

		return true
	})

	return found, found != nil
}

// Count returns the number of items in the tree.
func (t *Tree) Count() int {
	n := 0

	Walk(t.children, func(Item) bool {
		n++
		return true
	})

	return n
}

// CountKind returns the number of items of the given kind.
func (t *Tree) CountKind(kind Kind) int {
	n := 0

	Walk(t.children, func(it Item) bool {
		if it.Kind() == kind {
			n++
		}

		return true
	})

	return n
}

// Walk visits items depth-first. Returning false skips the item's children.
func Walk(items []Item, fn func(Item) bool) {
	for _, it := range items {
		if fn(it) {
			Walk(it.Children(), fn)
		}
	}
}

func (t *Tree) attach(parent Item, item Item, idx int) {
	t.seq++

	b := item.base()
	b.parent = parent
	b.seq = t.seq

	Walk([]Item{item}, func(it Item) bool {
		it.base().tree = t
		return true
	})

	siblings := t.childList(parent)
	*siblings = slices.Insert(*siblings, idx, item)

	t.revision++
}

func (t *Tree) childList(parent Item) *[]Item {
	if parent == nil {
		return &t.children
	}

	return &parent.base().children
}

func (t *Tree) checkInsert(parent Item, item Item) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", ErrInvalidChild)
	}

	if item.Tree() != nil {
		return ErrAttached
	}

	if parent != nil && parent.Tree() != t {
		return ErrNotInTree
	}

	return checkKinds(parent, item)
}

// checkKinds validates that child may be placed directly under parent.
func checkKinds(parent Item, child Item) error {
	childKind := child.Kind()

	if parent == nil {
		if childKind == KindWhen || childKind == KindOtherwise {
			return fmt.Errorf("%w: %s outside choose", ErrInvalidChild, childKind)
		}

		return nil
	}

	switch parent.Kind() {
	case KindValueSelector:
		return fmt.Errorf("%w: value selector cannot have children", ErrInvalidChild)
	case KindChoose:
		if childKind != KindWhen && childKind != KindOtherwise {
			return fmt.Errorf("%w: %s under choose", ErrInvalidChild, childKind)
		}

		if childKind == KindOtherwise && slices.ContainsFunc(parent.Children(), isOtherwise) {
			return ErrDuplicateOtherwise
		}
	default:
		if childKind == KindWhen || childKind == KindOtherwise {
			return fmt.Errorf("%w: %s outside choose", ErrInvalidChild, childKind)
		}
	}

	return nil
}

func isOtherwise(it Item) bool {
	return it.Kind() == KindOtherwise
}
