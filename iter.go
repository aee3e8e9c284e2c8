package kaisou

import (
	"iter"
	"slices"
)

// Iterator is the cursor protocol shared by every hierarchy traversal.
//
//	it := h.Children(parent)
//	for it.Next() {
//	    use(it.Entity())
//	}
//	if err := it.Err(); err != nil { ... }
//
// Traversals are lazy: each Next reads one record. Mutating the hierarchy
// during a traversal gives unspecified results.
type Iterator interface {
	// Next advances to the next entity and reports whether there is one.
	Next() bool
	// Entity returns the current entity. Only valid after Next returned true.
	Entity() Entity
	// Reset rewinds the traversal to its start.
	Reset()
	// Err returns the fault that stopped the traversal early, if any.
	Err() error
}

// Collect drains it from its current position.
func Collect(it Iterator) []Entity {
	var out []Entity
	for it.Next() {
		out = append(out, it.Entity())
	}
	return out
}

// all adapts it to a range-over-func sequence, rewinding it first.
func all(it Iterator) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		it.Reset()
		for it.Next() {
			if !yield(it.Entity()) {
				return
			}
		}
	}
}

// ChildrenIter yields the direct children of one entity, newest first.
type ChildrenIter[K any] struct {
	h         *Hierarchy[K]
	parent    Entity
	cur       Entity
	next      Entity
	remaining int
	err       error
}

// Children returns an iterator over parent's direct children. A stale parent
// or one without children yields nothing.
func (h *Hierarchy[K]) Children(parent Entity) *ChildrenIter[K] {
	it := &ChildrenIter[K]{h: h, parent: parent}
	it.Reset()
	return it
}

func (it *ChildrenIter[K]) Reset() {
	it.cur, it.next, it.remaining, it.err = NilEntity, NilEntity, 0, nil
	if pe := it.h.edge(it.parent); pe != nil {
		it.next = pe.firstChild
		it.remaining = pe.numChildren
	}
}

func (it *ChildrenIter[K]) Next() bool {
	if it.err != nil || it.remaining == 0 || it.next.IsZero() {
		return false
	}
	ce := it.h.edge(it.next)
	if ce == nil {
		it.err = it.h.dangling("children", it.next)
		return false
	}
	it.cur = it.next
	it.next = ce.next
	it.remaining--
	return true
}

func (it *ChildrenIter[K]) Entity() Entity { return it.cur }

func (it *ChildrenIter[K]) Err() error { return it.err }

// All returns the children as a sequence for use with range.
func (it *ChildrenIter[K]) All() iter.Seq[Entity] { return all(it) }

// AncestorIter walks parent links upwards, nearest ancestor first. The
// starting entity is not yielded.
type AncestorIter[K any] struct {
	h     *Hierarchy[K]
	start Entity
	cur   Entity
	next  Entity
	err   error
}

// Ancestors returns an iterator over e's parent, grandparent and so on up to
// the root.
func (h *Hierarchy[K]) Ancestors(e Entity) *AncestorIter[K] {
	it := &AncestorIter[K]{h: h, start: e}
	it.Reset()
	return it
}

func (it *AncestorIter[K]) Reset() {
	it.cur, it.next, it.err = NilEntity, NilEntity, nil
	if ed := it.h.edge(it.start); ed != nil {
		it.next = ed.parent
	}
}

func (it *AncestorIter[K]) Next() bool {
	if it.err != nil || it.next.IsZero() {
		return false
	}
	ed := it.h.edge(it.next)
	if ed == nil {
		it.err = it.h.dangling("ancestors", it.next)
		return false
	}
	it.cur = it.next
	it.next = ed.parent
	return true
}

func (it *AncestorIter[K]) Entity() Entity { return it.cur }

func (it *AncestorIter[K]) Err() error { return it.err }

// All returns the ancestors as a sequence for use with range.
func (it *AncestorIter[K]) All() iter.Seq[Entity] { return all(it) }

// DepthFirstIter walks a subtree in pre-order: every node comes before its
// descendants, and a child's whole subtree comes before its next sibling.
type DepthFirstIter[K any] struct {
	h           *Hierarchy[K]
	accept      func(*World, Entity) bool
	stack       []Entity
	start       Entity
	cur         Entity
	err         error
	includeSelf bool
}

// DescendantsDepthFirst returns a pre-order iterator over e's descendants.
// e itself is not yielded.
func (h *Hierarchy[K]) DescendantsDepthFirst(e Entity) *DepthFirstIter[K] {
	return h.newDepthFirst(e, false, nil)
}

// DepthFirst is DescendantsDepthFirst with e yielded first.
func (h *Hierarchy[K]) DepthFirst(e Entity) *DepthFirstIter[K] {
	return h.newDepthFirst(e, true, nil)
}

// Visit walks e's descendants depth first, skipping every node for which
// accept returns false together with that node's subtree.
func (h *Hierarchy[K]) Visit(e Entity, accept func(*World, Entity) bool) *DepthFirstIter[K] {
	return h.newDepthFirst(e, false, accept)
}

func (h *Hierarchy[K]) newDepthFirst(e Entity, includeSelf bool, accept func(*World, Entity) bool) *DepthFirstIter[K] {
	it := &DepthFirstIter[K]{h: h, start: e, includeSelf: includeSelf, accept: accept}
	it.Reset()
	return it
}

func (it *DepthFirstIter[K]) Reset() {
	it.stack = it.stack[:0]
	it.cur, it.err = NilEntity, nil
	if it.includeSelf {
		if it.h.world.IsValid(it.start) {
			it.stack = append(it.stack, it.start)
		}
		return
	}
	it.err = it.pushChildren(it.start)
}

// pushChildren pushes e's children so that the first sibling is popped first.
func (it *DepthFirstIter[K]) pushChildren(e Entity) error {
	base := len(it.stack)
	var err error
	it.stack, err = it.h.childList("depth first", e, it.stack)
	if err != nil {
		it.stack = it.stack[:base]
		return err
	}
	slices.Reverse(it.stack[base:])
	return nil
}

func (it *DepthFirstIter[K]) Next() bool {
	for it.err == nil && len(it.stack) > 0 {
		n := len(it.stack) - 1
		e := it.stack[n]
		it.stack = it.stack[:n]
		if it.accept != nil && !it.accept(it.h.world, e) {
			continue
		}
		// A broken child list ends the walk after e itself is yielded.
		it.err = it.pushChildren(e)
		it.cur = e
		return true
	}
	return false
}

func (it *DepthFirstIter[K]) Entity() Entity { return it.cur }

func (it *DepthFirstIter[K]) Err() error { return it.err }

// All returns the walk as a sequence for use with range.
func (it *DepthFirstIter[K]) All() iter.Seq[Entity] { return all(it) }

// BreadthFirstIter walks a subtree level by level, siblings in sibling order.
type BreadthFirstIter[K any] struct {
	h           *Hierarchy[K]
	queue       []Entity
	head        int
	start       Entity
	cur         Entity
	err         error
	includeSelf bool
}

// DescendantsBreadthFirst returns a level-order iterator over e's
// descendants. e itself is not yielded.
func (h *Hierarchy[K]) DescendantsBreadthFirst(e Entity) *BreadthFirstIter[K] {
	return h.newBreadthFirst(e, false)
}

// BreadthFirst is DescendantsBreadthFirst with e yielded first.
func (h *Hierarchy[K]) BreadthFirst(e Entity) *BreadthFirstIter[K] {
	return h.newBreadthFirst(e, true)
}

func (h *Hierarchy[K]) newBreadthFirst(e Entity, includeSelf bool) *BreadthFirstIter[K] {
	it := &BreadthFirstIter[K]{h: h, start: e, includeSelf: includeSelf}
	it.Reset()
	return it
}

func (it *BreadthFirstIter[K]) Reset() {
	it.queue = it.queue[:0]
	it.head = 0
	it.cur, it.err = NilEntity, nil
	if it.includeSelf {
		if it.h.world.IsValid(it.start) {
			it.queue = append(it.queue, it.start)
		}
		return
	}
	it.queue, it.err = it.h.childList("breadth first", it.start, it.queue)
}

func (it *BreadthFirstIter[K]) Next() bool {
	if it.err != nil || it.head == len(it.queue) {
		return false
	}
	e := it.queue[it.head]
	it.head++
	if it.head >= 64 && it.head*2 >= len(it.queue) {
		n := copy(it.queue, it.queue[it.head:])
		it.queue = it.queue[:n]
		it.head = 0
	}
	it.queue, it.err = it.h.childList("breadth first", e, it.queue)
	it.cur = e
	return true
}

func (it *BreadthFirstIter[K]) Entity() Entity { return it.cur }

func (it *BreadthFirstIter[K]) Err() error { return it.err }

// All returns the walk as a sequence for use with range.
func (it *BreadthFirstIter[K]) All() iter.Seq[Entity] { return all(it) }
