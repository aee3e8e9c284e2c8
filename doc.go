// Package kaisou adds parent/child hierarchies to a chunked archetype ECS.
//
// A World stores entities and their components. A Hierarchy[K] links those
// entities into a forest; the type parameter K is a kind tag, usually an
// empty struct, so one entity can sit in a scene tree and a UI tree at once:
//
//	type Scene struct{}
//
//	w := kaisou.NewWorld(1024)
//	scene := kaisou.HierarchyOf[Scene](w)
//	root := w.CreateEntity()
//	child, _ := scene.AttachNew(root, kaisou.Component(Name("child")))
//	for e := range scene.DescendantsDepthFirst(root).All() {
//	    ...
//	}
//
// The links of kind K live in an Edge[K] component on each participating
// entity. Children of one parent are kept in a doubly linked list with the
// most recently attached child first, which makes attach and detach O(1).
//
// Component pointers returned by GetComponent, Filter.Get or Hierarchy.Edge
// point into chunk storage and are invalidated by any structural change.
package kaisou
