package stockpile

// EntityBuilder allocates an entity and attaches components to it in a
// chain. The first failure is kept and returned by Err.
type EntityBuilder struct {
	reg    *Registry
	entity Entity
	err    error
}

func newEntityBuilder(r *Registry) *EntityBuilder {
	return &EntityBuilder{
		reg:    r,
		entity: r.NewEntity(),
	}
}

// With adds value as component c of the builder's entity
func With[T any](b *EntityBuilder, c AccessibleComponent[T], value T) *EntityBuilder {
	if b.err != nil {
		return b
	}
	b.err = c.Add(b.reg, b.entity, value)
	return b
}

func (b *EntityBuilder) Entity() Entity {
	return b.entity
}

func (b *EntityBuilder) Err() error {
	return b.err
}
