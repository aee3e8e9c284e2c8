package kaisou

// ComponentFunc adds one or more components to a freshly created entity.
type ComponentFunc func(*World, Entity)

// Component returns a ComponentFunc storing v on the entity.
func Component[T any](v T) ComponentFunc {
	return func(w *World, e Entity) {
		SetComponent(w, e, v)
	}
}

// TreeBuilder describes a subtree of hierarchy K that can be spawned into a
// world, any number of times. Children are spawned so that iterating a
// spawned node's children yields them in the order they were added to the
// builder.
//
//	root := kaisou.NewTreeBuilder[Scene](kaisou.Component(Name("root"))).
//	    Attach(kaisou.NewTreeBuilder[Scene](kaisou.Component(Name("a")))).
//	    AttachLeaf(kaisou.Component(Name("b")))
//	e, err := root.Spawn(w)
type TreeBuilder[K any] struct {
	components []ComponentFunc
	children   []*TreeBuilder[K]
}

// NewTreeBuilder returns a builder for a node carrying components.
func NewTreeBuilder[K any](components ...ComponentFunc) *TreeBuilder[K] {
	return &TreeBuilder[K]{components: components}
}

// Add appends components to the node.
func (b *TreeBuilder[K]) Add(components ...ComponentFunc) *TreeBuilder[K] {
	b.components = append(b.components, components...)
	return b
}

// Attach appends child subtrees to the node.
func (b *TreeBuilder[K]) Attach(children ...*TreeBuilder[K]) *TreeBuilder[K] {
	b.children = append(b.children, children...)
	return b
}

// AttachLeaf appends a childless node carrying components.
func (b *TreeBuilder[K]) AttachLeaf(components ...ComponentFunc) *TreeBuilder[K] {
	return b.Attach(NewTreeBuilder[K](components...))
}

// Children returns the node's direct child builders. The slice must not be
// modified.
func (b *TreeBuilder[K]) Children() []*TreeBuilder[K] {
	return b.children
}

// Len returns the number of nodes in the subtree, b included.
func (b *TreeBuilder[K]) Len() int {
	n := 1
	for _, c := range b.children {
		n += c.Len()
	}
	return n
}

// Clone returns a deep copy of the builder's structure. Component functions
// are shared.
func (b *TreeBuilder[K]) Clone() *TreeBuilder[K] {
	c := &TreeBuilder[K]{
		components: append([]ComponentFunc(nil), b.components...),
		children:   make([]*TreeBuilder[K], len(b.children)),
	}
	for i, child := range b.children {
		c.children[i] = child.Clone()
	}
	return c
}

// Spawn creates the subtree in w's cached hierarchy of kind K and returns
// its root.
func (b *TreeBuilder[K]) Spawn(w *World) (Entity, error) {
	return b.SpawnInto(HierarchyOf[K](w))
}

// SpawnInto creates the subtree in h and returns its root.
func (b *TreeBuilder[K]) SpawnInto(h *Hierarchy[K]) (Entity, error) {
	root := h.world.CreateEntity()
	for _, apply := range b.components {
		apply(h.world, root)
	}
	return root, b.spawnChildren(h, root)
}

func (b *TreeBuilder[K]) spawnChildren(h *Hierarchy[K], parent Entity) error {
	// Newest child comes first in iteration, so attach in reverse.
	for i := len(b.children) - 1; i >= 0; i-- {
		child := b.children[i]
		e, err := h.AttachNew(parent, child.components...)
		if err != nil {
			return err
		}
		if err := child.spawnChildren(h, e); err != nil {
			return err
		}
	}
	return nil
}
