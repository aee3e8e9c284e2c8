package kaisou

// Edge is the per-entity bookkeeping of hierarchy K. It is stored as an
// ordinary component, so an entity carries one Edge per hierarchy it belongs
// to and Edge[A] never interferes with Edge[B].
//
// Children of one parent form a doubly linked list ordered most recently
// attached first. Links are plain handles; the zero Entity means "none".
type Edge[K any] struct {
	parent      Entity
	next        Entity
	prev        Entity
	firstChild  Entity
	numChildren int
}

// Parent returns the parent handle, or NilEntity for a root.
func (e *Edge[K]) Parent() Entity { return e.parent }

// NextSibling returns the sibling attached to the same parent just before this
// one, or NilEntity.
func (e *Edge[K]) NextSibling() Entity { return e.next }

// PrevSibling returns the sibling attached just after this one, or NilEntity
// when this entity is the parent's first child.
func (e *Edge[K]) PrevSibling() Entity { return e.prev }

// FirstChild returns the most recently attached child, or NilEntity.
func (e *Edge[K]) FirstChild() Entity { return e.firstChild }

// NumChildren returns the number of direct children.
func (e *Edge[K]) NumChildren() int { return e.numChildren }

// IsRoot reports whether the entity has no parent.
func (e *Edge[K]) IsRoot() bool { return e.parent.IsZero() }

// empty reports whether the record carries no links at all.
func (e *Edge[K]) empty() bool {
	return e.parent.IsZero() && e.numChildren == 0 && e.firstChild.IsZero()
}
