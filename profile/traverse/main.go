// Profiling:
// go build ./profile/traverse
// go tool pprof -http=":8000" -nodefraction=0.001 ./traverse cpu.pprof

package main

import (
	"github.com/edwinsyarief/kaisou"
	"github.com/pkg/profile"
)

type tree struct{}

type transform struct {
	X, Y, Rot float64
}

func main() {
	rounds := 20
	iters := 1000
	entities := 10000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

// run walks a fan-out-8 tree depth first and breadth first, accumulating
// each node's transform into its children.
func run(rounds, iters, numEntities int) {
	for range rounds {
		w := kaisou.NewWorld(numEntities)
		h := kaisou.NewHierarchy[tree](w)
		ents := kaisou.NewBuilder[transform](w).NewEntities(numEntities, transform{X: 1, Y: 1})
		for i := 1; i < len(ents); i++ {
			_ = h.Attach(ents[i], ents[(i-1)/8])
		}

		dfs := h.DescendantsDepthFirst(ents[0])
		bfs := h.DescendantsBreadthFirst(ents[0])
		for range iters {
			dfs.Reset()
			for dfs.Next() {
				e := dfs.Entity()
				parent, _ := h.Parent(e)
				t := kaisou.GetComponent[transform](w, e)
				pt := kaisou.GetComponent[transform](w, parent)
				t.Rot = pt.Rot + 0.01
			}
			bfs.Reset()
			for bfs.Next() {
				kaisou.GetComponent[transform](w, bfs.Entity()).X += 1
			}
		}
	}
}
