package kaisou

// Shorthands operating on the world's cached hierarchy of kind K (see
// HierarchyOf).

// Attach attaches child under parent in w's hierarchy of kind K.
func Attach[K any](w *World, child, parent Entity) error {
	return HierarchyOf[K](w).Attach(child, parent)
}

// AttachNew creates an entity carrying payload and attaches it under parent
// in w's hierarchy of kind K. A stale parent fails before anything is
// created.
func AttachNew[K, T any](w *World, parent Entity, payload T) (Entity, error) {
	h := HierarchyOf[K](w)
	if !w.IsValid(parent) {
		return NilEntity, h.fail("attach", parent, ErrNoSuchEntity)
	}
	e := NewBuilder[T](w).NewEntityWith(payload)
	if err := h.Attach(e, parent); err != nil {
		w.RemoveEntity(e)
		return NilEntity, err
	}
	return e, nil
}

// Detach detaches e from its parent in w's hierarchy of kind K.
func Detach[K any](w *World, e Entity) error {
	return HierarchyOf[K](w).Detach(e)
}

func Children[K any](w *World, parent Entity) *ChildrenIter[K] {
	return HierarchyOf[K](w).Children(parent)
}

func Ancestors[K any](w *World, e Entity) *AncestorIter[K] {
	return HierarchyOf[K](w).Ancestors(e)
}

func DescendantsDepthFirst[K any](w *World, e Entity) *DepthFirstIter[K] {
	return HierarchyOf[K](w).DescendantsDepthFirst(e)
}

func DescendantsBreadthFirst[K any](w *World, e Entity) *BreadthFirstIter[K] {
	return HierarchyOf[K](w).DescendantsBreadthFirst(e)
}

// Parent returns e's parent in w's hierarchy of kind K.
func Parent[K any](w *World, e Entity) (Entity, bool) {
	return HierarchyOf[K](w).Parent(e)
}
