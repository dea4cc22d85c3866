package bench

import (
	"testing"

	"github.com/mlange-42/arche/ecs"
)

func BenchmarkIterArche(b *testing.B) {
	b.StopTimer()
	world := ecs.NewWorld(ecs.NewConfig().WithCapacityIncrement(1024))

	posID := ecs.ComponentID[Position](&world)
	velID := ecs.ComponentID[Velocity](&world)

	ecs.NewBuilder(&world, posID).NewBatch(nPos)
	ecs.NewBuilder(&world, posID, velID).NewBatch(nPosVel)

	var filter ecs.Filter = ecs.All(posID, velID)
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		query := world.Query(filter)
		for query.Next() {
			pos := (*Position)(query.Get(posID))
			vel := (*Velocity)(query.Get(velID))
			pos.X += vel.X
			pos.Y += vel.Y

		}
	}
}

func BenchmarkAddRemoveArche(b *testing.B) {
	b.StopTimer()
	world := ecs.NewWorld(ecs.NewConfig().WithCapacityIncrement(1024))

	posID := ecs.ComponentID[Position](&world)
	velID := ecs.ComponentID[Velocity](&world)

	entities := make([]ecs.Entity, 0, nPos+nPosVel)
	for i := range nPos + nPosVel {
		if i%10 == 0 {
			entities = append(entities, world.NewEntity(posID, velID))
		} else {
			entities = append(entities, world.NewEntity(posID))
		}
	}
	b.StartTimer()

	// Same churn as BenchmarkAddRemoveGrouped: dropping a grouped entity's
	// velocity drops its position too
	for i := 0; i < b.N; i++ {
		e := entities[i%len(entities)]
		if world.Has(e, velID) {
			world.Remove(e, posID, velID)
		} else if world.Has(e, posID) {
			world.Add(e, velID)
		} else {
			world.Add(e, posID, velID)
		}
	}
}
