// Profiling:
// go build ./profile/groups
// go tool pprof -http=":8000" -nodefraction=0.001 ./groups cpu.pprof

package main

import (
	"github.com/TheBitDrifter/stockpile"
	"github.com/TheBitDrifter/table"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	c1 := stockpile.FactoryNewComponent[comp1]()
	c2 := stockpile.FactoryNewComponent[comp2]()

	for range rounds {
		registry := stockpile.Factory.NewRegistry(table.Factory.NewSchema())
		registry.CreateGroup([]stockpile.Component{c1, c2})
		slice, _ := registry.GroupSlice([]stockpile.Component{c1, c2})

		for range iters {
			for range numEntities {
				e := registry.NewEntity()
				c1.Add(registry, e, comp1{})
				c2.Add(registry, e, comp2{V: 1, W: 1})
			}
			stockpile.ForEach2(slice, func(a *comp1, b *comp2) {
				a.V += b.V
				a.W += b.W
			})
			for _, e := range stockpile.Entities(slice) {
				registry.DestroyEntity(e)
			}
		}
	}
}
