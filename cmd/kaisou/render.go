package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/edwinsyarief/kaisou"
)

// Scene is the hierarchy kind used by every command.
type Scene struct{}

// Label names an entity in printed output.
type Label string

func label(w *kaisou.World, e kaisou.Entity) string {
	if l := kaisou.GetComponent[Label](w, e); l != nil {
		return string(*l)
	}
	return e.String()
}

// renderTree draws root and everything below it.
func renderTree(h *kaisou.Hierarchy[Scene], root kaisou.Entity, st styles) (string, error) {
	t, err := subtree(h, root)
	if err != nil {
		return "", err
	}
	t.Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(st.enum).
		RootStyle(st.root).
		ItemStyle(st.item)
	return t.String(), nil
}

func subtree(h *kaisou.Hierarchy[Scene], e kaisou.Entity) (*tree.Tree, error) {
	w := h.World()
	t := tree.Root(label(w, e))
	it := h.Children(e)
	for it.Next() {
		c := it.Entity()
		if h.NumChildren(c) == 0 {
			t.Child(label(w, c))
			continue
		}
		sub, err := subtree(h, c)
		if err != nil {
			return nil, err
		}
		t.Child(sub)
	}
	return t, it.Err()
}

// renderOrder lists the entities of it one per line, indented by their depth
// below root.
func renderOrder(h *kaisou.Hierarchy[Scene], root kaisou.Entity, it kaisou.Iterator, st styles) (string, error) {
	w := h.World()
	base := len(kaisou.Collect(h.Ancestors(root)))
	var sb strings.Builder
	i := 0
	for it.Next() {
		e := it.Entity()
		depth := len(kaisou.Collect(h.Ancestors(e))) - base
		style := st.item
		if e == root {
			style = st.root
		}
		fmt.Fprintf(&sb, "%s %s%s\n",
			st.muted.Render(fmt.Sprintf("%3d", i)),
			strings.Repeat("  ", depth),
			style.Render(label(w, e)))
		i++
	}
	return sb.String(), it.Err()
}

// render prints the subtree at root in the given order: "tree", "dfs" or
// "bfs".
func render(h *kaisou.Hierarchy[Scene], root kaisou.Entity, order string, st styles) (string, error) {
	switch order {
	case "tree":
		return renderTree(h, root, st)
	case "dfs":
		return renderOrder(h, root, h.DepthFirst(root), st)
	case "bfs":
		return renderOrder(h, root, h.BreadthFirst(root), st)
	default:
		return "", fmt.Errorf("unknown order %q (want tree, dfs or bfs)", order)
	}
}
