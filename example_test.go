package kaisou_test

import (
	"fmt"

	"github.com/edwinsyarief/kaisou"
)

type Scene struct{}

func label(w *kaisou.World, e kaisou.Entity) string {
	if n := kaisou.GetComponent[Name](w, e); n != nil {
		return string(*n)
	}
	return e.String()
}

func Example() {
	w := kaisou.NewWorld(16)
	scene := kaisou.HierarchyOf[Scene](w)

	root := kaisou.NewBuilder[Name](w).NewEntityWith("root")
	child := kaisou.NewBuilder[Name](w).NewEntityWith("child")
	if err := scene.Attach(child, root); err != nil {
		panic(err)
	}
	grandchild, err := scene.AttachNew(child, kaisou.Component(Name("grandchild")))
	if err != nil {
		panic(err)
	}

	for e := range scene.DepthFirst(root).All() {
		fmt.Println(label(w, e))
	}

	if err := scene.Detach(child); err != nil {
		panic(err)
	}
	fmt.Println("root children:", len(kaisou.Collect(scene.Children(root))))
	for e := range scene.Ancestors(grandchild).All() {
		fmt.Println("ancestor:", label(w, e))
	}
	// Output:
	// root
	// child
	// grandchild
	// root children: 0
	// ancestor: child
}

func ExampleHierarchy_Children() {
	w := kaisou.NewWorld(16)
	h := kaisou.HierarchyOf[Scene](w)
	parent := w.CreateEntity()
	for _, n := range []Name{"a", "b", "c"} {
		if _, err := kaisou.AttachNew[Scene](w, parent, n); err != nil {
			panic(err)
		}
	}

	it := h.Children(parent)
	for it.Next() {
		fmt.Println(label(w, it.Entity()))
	}
	// Output:
	// c
	// b
	// a
}

func ExampleTreeBuilder() {
	w := kaisou.NewWorld(16)
	root, err := kaisou.NewTreeBuilder[Scene](kaisou.Component(Name("world"))).
		Attach(kaisou.NewTreeBuilder[Scene](kaisou.Component(Name("player"))).
			AttachLeaf(kaisou.Component(Name("sword")))).
		AttachLeaf(kaisou.Component(Name("camera"))).
		Spawn(w)
	if err != nil {
		panic(err)
	}

	for e := range kaisou.HierarchyOf[Scene](w).BreadthFirst(root).All() {
		fmt.Println(label(w, e))
	}
	// Output:
	// world
	// player
	// camera
	// sword
}
