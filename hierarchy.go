package kaisou

import (
	"log/slog"
	"reflect"
)

// Hierarchy maintains one parent/child forest of kind K over a World's
// entities. Hierarchies of different kinds share entities but never each
// other's records.
//
// A Hierarchy is a thin view over the world: all state lives in Edge[K]
// components, so any number of Hierarchy[K] values over the same world agree.
// Like the World it is not safe for concurrent use.
type Hierarchy[K any] struct {
	world  *World
	logger *slog.Logger
	bus    *EventBus
	roots  *Filter[Edge[K]]
	kind   string
	edgeID uint8
}

// NewHierarchy returns the hierarchy of kind K over w.
func NewHierarchy[K any](w *World, opts ...Option) *Hierarchy[K] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	kind := reflect.TypeFor[K]().String()
	return &Hierarchy[K]{
		world:  w,
		logger: o.logger.With("kind", kind),
		bus:    o.bus,
		roots:  NewFilter[Edge[K]](w),
		kind:   kind,
		edgeID: w.getCompTypeID(reflect.TypeFor[Edge[K]]()),
	}
}

// HierarchyOf returns the hierarchy of kind K cached in w's resources,
// creating it with opts on first use. Later calls ignore opts.
func HierarchyOf[K any](w *World, opts ...Option) *Hierarchy[K] {
	if h, _ := GetResource[Hierarchy[K]](w.Resources()); h != nil {
		return h
	}
	h := NewHierarchy[K](w, opts...)
	w.Resources().Add(h)
	return h
}

// World returns the world the hierarchy lives in.
func (h *Hierarchy[K]) World() *World { return h.world }

// Kind returns the name of the kind type, as used in logs and errors.
func (h *Hierarchy[K]) Kind() string { return h.kind }

// Edge returns e's record, or nil when e is stale or not part of the
// hierarchy. The pointer is invalidated by the next structural change.
func (h *Hierarchy[K]) Edge(e Entity) *Edge[K] {
	return h.edge(e)
}

func (h *Hierarchy[K]) edge(e Entity) *Edge[K] {
	return (*Edge[K])(h.world.component(e, h.edgeID))
}

// ensureEdge adds an empty record to e when it has none.
func (h *Hierarchy[K]) ensureEdge(e Entity) {
	h.world.addComponent(e, h.edgeID)
}

func (h *Hierarchy[K]) fail(op string, e Entity, err error) error {
	return &HierarchyError{Op: op, Kind: h.kind, Entity: e, Err: err}
}

// dangling reports a link that points at a dead entity or at a live entity
// without a record.
func (h *Hierarchy[K]) dangling(op string, e Entity) error {
	h.logger.Warn("dangling hierarchy link", "op", op, "entity", e)
	return h.fail(op, e, ErrNoSuchEntity)
}

// Attach makes child the newest child of parent. A child that already has a
// parent is moved, keeping its own subtree. Attaching an ancestor under one of
// its descendants is not detected and leaves a cycle behind.
func (h *Hierarchy[K]) Attach(child, parent Entity) error {
	if !h.world.IsValid(child) {
		return h.fail("attach", child, ErrNoSuchEntity)
	}
	if !h.world.IsValid(parent) {
		return h.fail("attach", parent, ErrNoSuchEntity)
	}

	// Adding records moves entities between archetypes, so it happens before
	// any record pointer is taken.
	h.ensureEdge(child)
	h.ensureEdge(parent)

	ce := h.edge(child)
	prevParent := ce.parent
	if !prevParent.IsZero() {
		h.unlink(child, ce)
	}

	pe := h.edge(parent)
	if head := h.edge(pe.firstChild); head != nil {
		head.prev = child
	}
	ce.parent = parent
	ce.next = pe.firstChild
	ce.prev = NilEntity
	pe.firstChild = child
	pe.numChildren++

	if prevParent != parent {
		h.prune(prevParent)
	}

	h.logger.Debug("attach", "child", child, "parent", parent)
	Publish(h.bus, Attached[K]{Child: child, Parent: parent, PrevParent: prevParent})
	return nil
}

// AttachNew creates an entity, applies components to it and attaches it under
// parent. A stale parent fails before anything is created.
func (h *Hierarchy[K]) AttachNew(parent Entity, components ...ComponentFunc) (Entity, error) {
	if !h.world.IsValid(parent) {
		return NilEntity, h.fail("attach", parent, ErrNoSuchEntity)
	}
	e := h.world.CreateEntity()
	for _, apply := range components {
		apply(h.world, e)
	}
	if err := h.Attach(e, parent); err != nil {
		h.world.RemoveEntity(e)
		return NilEntity, err
	}
	return e, nil
}

// Detach removes e from its parent's children. e keeps its own children and
// becomes a root.
func (h *Hierarchy[K]) Detach(e Entity) error {
	if !h.world.IsValid(e) {
		return h.fail("detach", e, ErrNoSuchEntity)
	}
	ed := h.edge(e)
	if ed == nil || ed.parent.IsZero() {
		return h.fail("detach", e, ErrNotAttached)
	}
	parent := ed.parent
	h.unlink(e, ed)
	h.prune(e)
	h.prune(parent)

	h.logger.Debug("detach", "child", e, "parent", parent)
	Publish(h.bus, Detached[K]{Child: e, Parent: parent})
	return nil
}

// unlink takes e out of its parent's sibling list. Links to dead entities are
// skipped so that a child can leave a parent that was removed from the world.
func (h *Hierarchy[K]) unlink(e Entity, ed *Edge[K]) {
	pe := h.edge(ed.parent)
	if prev := h.edge(ed.prev); prev != nil {
		prev.next = ed.next
	} else if pe != nil && pe.firstChild == e {
		pe.firstChild = ed.next
	}
	if next := h.edge(ed.next); next != nil {
		next.prev = ed.prev
	}
	if pe != nil && pe.numChildren > 0 {
		pe.numChildren--
		if pe.numChildren == 0 {
			pe.firstChild = NilEntity
		}
	}
	ed.parent = NilEntity
	ed.next = NilEntity
	ed.prev = NilEntity
}

// prune drops e's record once it has neither parent nor children.
func (h *Hierarchy[K]) prune(e Entity) {
	if ed := h.edge(e); ed != nil && ed.empty() {
		h.world.removeComponent(e, h.edgeID)
	}
}

// childList returns parent's children in sibling order, appended to buf.
func (h *Hierarchy[K]) childList(op string, parent Entity, buf []Entity) ([]Entity, error) {
	pe := h.edge(parent)
	if pe == nil {
		return buf, nil
	}
	c := pe.firstChild
	for range pe.numChildren {
		if c.IsZero() {
			break
		}
		ce := h.edge(c)
		if ce == nil {
			return buf, h.dangling(op, c)
		}
		buf = append(buf, c)
		c = ce.next
	}
	return buf, nil
}

// DetachChildren detaches every direct child of parent and returns them in
// sibling order. Each child keeps its own subtree.
func (h *Hierarchy[K]) DetachChildren(parent Entity) ([]Entity, error) {
	if !h.world.IsValid(parent) {
		return nil, h.fail("detach children", parent, ErrNoSuchEntity)
	}
	children, err := h.childList("detach children", parent, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if err := h.Detach(c); err != nil {
			return nil, err
		}
	}
	return children, nil
}

// DetachAll detaches e's children and then e itself. Unlike Detach it
// succeeds for roots.
func (h *Hierarchy[K]) DetachAll(e Entity) error {
	if _, err := h.DetachChildren(e); err != nil {
		return err
	}
	if h.IsAttached(e) {
		return h.Detach(e)
	}
	return nil
}

// DespawnAll removes e and its whole subtree from the world. e is detached
// from its parent first, so no live record keeps a link to the removed
// entities. Children lost to earlier external removals are skipped.
func (h *Hierarchy[K]) DespawnAll(e Entity) error {
	if !h.world.IsValid(e) {
		return h.fail("despawn", e, ErrNoSuchEntity)
	}
	if h.IsAttached(e) {
		if err := h.Detach(e); err != nil {
			return err
		}
	}

	doomed := []Entity{e}
	for i := 0; i < len(doomed); i++ {
		ed := h.edge(doomed[i])
		if ed == nil {
			continue
		}
		c := ed.firstChild
		for range ed.numChildren {
			ce := h.edge(c)
			if ce == nil {
				if !c.IsZero() {
					h.logger.Warn("dangling hierarchy link", "op", "despawn", "entity", c)
				}
				break
			}
			doomed = append(doomed, c)
			c = ce.next
		}
	}
	h.world.RemoveEntities(doomed)
	h.logger.Debug("despawn", "root", e, "count", len(doomed))
	return nil
}

// DespawnChildren removes every descendant of parent from the world. parent
// itself stays.
func (h *Hierarchy[K]) DespawnChildren(parent Entity) error {
	if !h.world.IsValid(parent) {
		return h.fail("despawn children", parent, ErrNoSuchEntity)
	}
	children, err := h.childList("despawn children", parent, nil)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := h.DespawnAll(c); err != nil {
			return err
		}
	}
	return nil
}

// Parent returns e's parent and whether it has one.
func (h *Hierarchy[K]) Parent(e Entity) (Entity, bool) {
	ed := h.edge(e)
	if ed == nil || ed.parent.IsZero() {
		return NilEntity, false
	}
	return ed.parent, true
}

// Root returns the topmost ancestor of e, or e itself when it has no parent.
func (h *Hierarchy[K]) Root(e Entity) (Entity, error) {
	if !h.world.IsValid(e) {
		return NilEntity, h.fail("root", e, ErrNoSuchEntity)
	}
	cur := e
	for {
		p, ok := h.Parent(cur)
		if !ok {
			return cur, nil
		}
		if !h.world.IsValid(p) {
			return NilEntity, h.dangling("root", p)
		}
		cur = p
	}
}

// NumChildren returns the number of direct children of e.
func (h *Hierarchy[K]) NumChildren(e Entity) int {
	if ed := h.edge(e); ed != nil {
		return ed.numChildren
	}
	return 0
}

// IsAttached reports whether e has a parent.
func (h *Hierarchy[K]) IsAttached(e Entity) bool {
	ed := h.edge(e)
	return ed != nil && !ed.parent.IsZero()
}

// Roots returns every entity that has children but no parent. The order
// follows the world's storage layout.
func (h *Hierarchy[K]) Roots() []Entity {
	var roots []Entity
	h.roots.Reset()
	for h.roots.Next() {
		if ed := h.roots.Get(); ed.parent.IsZero() && ed.numChildren > 0 {
			roots = append(roots, h.roots.Entity())
		}
	}
	return roots
}
