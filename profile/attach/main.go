// Profiling:
// go build ./profile/attach
// go tool pprof -http=":8000" -nodefraction=0.001 ./attach mem.pprof

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
	rounds := 50
	iters := 200
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

// run builds a fan-out-4 tree, moves every node to another parent and
// despawns the tree again, iters times per world.
func run(rounds, iters, numEntities int) {
	for range rounds {
		w := kaisou.NewWorld(numEntities)
		h := kaisou.NewHierarchy[tree](w)
		builder := kaisou.NewBuilder[transform](w)

		for range iters {
			ents := builder.NewEntities(numEntities, transform{})
			for i := 1; i < len(ents); i++ {
				_ = h.Attach(ents[i], ents[(i-1)/4])
			}
			for i := 2; i < len(ents); i++ {
				_ = h.Attach(ents[i], ents[i/2-1+i%2])
			}
			_ = h.DespawnAll(ents[0])
			w.RemoveEntities(ents)
		}
	}
}
