package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edwinsyarief/kaisou"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Walk through attach, detach and despawn on a small tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	})
}

func runDemo(out, errOut io.Writer) error {
	st := currentStyles()
	w := kaisou.NewWorld(16)

	bus := &kaisou.EventBus{}
	kaisou.Subscribe(bus, func(e kaisou.Attached[Scene]) {
		fmt.Fprintln(out, st.muted.Render(fmt.Sprintf("  attached %s to %s", label(w, e.Child), label(w, e.Parent))))
	})
	kaisou.Subscribe(bus, func(e kaisou.Detached[Scene]) {
		fmt.Fprintln(out, st.muted.Render(fmt.Sprintf("  detached %s from %s", label(w, e.Child), label(w, e.Parent))))
	})
	h := kaisou.HierarchyOf[Scene](w, kaisou.WithLogger(newLogger(errOut)), kaisou.WithEventBus(bus))
	spawn := kaisou.NewBuilder[Label](w)

	section := func(title string) {
		fmt.Fprintln(out, st.header.Render(title))
	}
	show := func(root kaisou.Entity) error {
		s, err := renderTree(h, root, st)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}

	section("Attach a child to the root")
	root := spawn.NewEntityWith("Root")
	child := spawn.NewEntityWith("Child 1")
	if err := h.Attach(child, root); err != nil {
		return err
	}
	for c := range h.Children(root).All() {
		fmt.Fprintf(out, "child: %s %s\n", c, label(w, c))
	}

	section("Add a grandchild and walk depth first")
	if _, err := h.AttachNew(child, kaisou.Component(Label("Grandchild"))); err != nil {
		return err
	}
	for c := range h.DescendantsDepthFirst(root).All() {
		fmt.Fprintf(out, "descendant: %s %s\n", c, label(w, c))
	}

	section("Move Child 1 under a new Child 2")
	if err := h.Detach(child); err != nil {
		return err
	}
	child2, err := kaisou.AttachNew[Scene](w, root, Label("Child 2"))
	if err != nil {
		return err
	}
	if err := h.Attach(child, child2); err != nil {
		return err
	}
	if _, err := kaisou.AttachNew[Scene](w, root, Label("Child 3")); err != nil {
		return err
	}
	if err := show(root); err != nil {
		return err
	}

	section("Despawn Child 2 with its subtree")
	if err := h.DespawnAll(child2); err != nil {
		return err
	}
	if err := show(root); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d entities left\n", w.Len())
	return nil
}
