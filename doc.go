/*
Package stockpile provides sparse-set component storage for Entity-Component-System
(ECS) games and simulations.

Every component type lives in its own pool: a dense array of entities, an aligned dense
array of values and a paged sparse index resolving entities to dense slots. Insertion,
removal and lookup are O(1) and iteration walks contiguous memory.

Core Concepts:

  - Entity: An opaque integer identifier. NullEntity is the "no entity" sentinel.
  - Pool: Dense-plus-sparse storage for one component type.
  - Owning Group: Keeps several pools packed so entities present in all of them occupy
    the same contiguous, identically ordered prefix of every pool.
  - Group Slice: Iteration over a group's packed prefix, optionally filtered by view pools.
  - View: Ad hoc intersection over pools, driven by the smallest one.

Basic Usage:

	schema := table.Factory.NewSchema()
	registry := stockpile.Factory.NewRegistry(schema)

	position := stockpile.FactoryNewComponent[Position]()
	velocity := stockpile.FactoryNewComponent[Velocity]()

	e := registry.NewEntity()
	position.Add(registry, e, Position{})
	velocity.Add(registry, e, Velocity{X: 1})

	// Pack hot combinations once
	registry.CreateGroup([]stockpile.Component{position, velocity})
	slice, _ := registry.GroupSlice([]stockpile.Component{position, velocity})

	stockpile.ForEach2(slice, func(pos *Position, vel *Velocity) {
		pos.X += vel.X
	})

	// Or iterate with a cursor
	cursor := stockpile.Factory.NewCursor(slice)
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		pos.Y += 1
	}

Registries are not safe for concurrent use.
*/
package stockpile
