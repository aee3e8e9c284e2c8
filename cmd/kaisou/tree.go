package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/edwinsyarief/kaisou"
)

const maxTreeNodes = 100000

var (
	treeDepth   int
	treeBreadth int
	treeOrder   string
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 3, "Levels below the root")
	cmd.Flags().IntVar(&treeBreadth, "breadth", 2, "Children per node")
	cmd.Flags().StringVar(&treeOrder, "order", "tree", "Output order: tree, dfs or bfs")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Generate a synthetic tree and print it",
		Long: `The tree command spawns a full tree of the given depth and breadth and
prints it as a tree, or as a depth-first or breadth-first listing.

Example:
  kaisou tree --depth 2 --breadth 3
  kaisou tree --order bfs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runTree(out, errOut io.Writer) error {
	if treeDepth < 0 || treeBreadth < 0 {
		return fmt.Errorf("depth and breadth must not be negative")
	}
	n := countNodes(treeDepth, treeBreadth)
	if n > maxTreeNodes {
		return fmt.Errorf("tree of depth %d and breadth %d has more than %d nodes", treeDepth, treeBreadth, maxTreeNodes)
	}

	w := kaisou.NewWorld(n)
	h := kaisou.NewHierarchy[Scene](w, kaisou.WithLogger(newLogger(errOut)))
	root, err := syntheticTree("root", treeDepth, treeBreadth).SpawnInto(h)
	if err != nil {
		return fmt.Errorf("failed to spawn tree: %w", err)
	}

	s, err := render(h, root, treeOrder, currentStyles())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s)
	return nil
}

// countNodes returns the node count of a full tree, saturating just above
// maxTreeNodes.
func countNodes(depth, breadth int) int {
	total, level := 1, 1
	for range depth {
		level *= breadth
		total += level
		if total > maxTreeNodes {
			return maxTreeNodes + 1
		}
	}
	return total
}

// syntheticTree describes a full tree whose nodes are labeled by their path,
// e.g. "root.1.0".
func syntheticTree(name string, depth, breadth int) *kaisou.TreeBuilder[Scene] {
	b := kaisou.NewTreeBuilder[Scene](kaisou.Component(Label(name)))
	if depth == 0 {
		return b
	}
	for i := range breadth {
		b.Attach(syntheticTree(name+"."+strconv.Itoa(i), depth-1, breadth))
	}
	return b
}
