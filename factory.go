package stockpile

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

func (f factory) NewRegistry(schema table.Schema) *Registry {
	return newRegistry(schema)
}

func (f factory) NewCursor(query Query) *Cursor {
	return newCursor(query)
}

func (f factory) NewEntityBuilder(r *Registry) *EntityBuilder {
	return newEntityBuilder(r)
}

// NewOwningGroup builds a group over pools outside of any registry.
// Exclusivity across groups is the caller's concern.
func (f factory) NewOwningGroup(owned []Pool, views ...Pool) (*OwningGroup, error) {
	g, err := newOwningGroup(0, owned, views)
	if err != nil {
		return nil, err
	}
	g.Repack()
	return g, nil
}

func (f factory) NewView(pools ...Pool) *View {
	return newView(pools, nil)
}

func (f factory) NewRunner(p Pool) *Runner {
	return newRunner(p, nil)
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{
		ElementType: table.FactoryNewElementType[T](),
	}
}

// FactoryNewPool creates a standalone pool with the given type key
func FactoryNewPool[T any](key uint32) *ComponentPool[T] {
	return newComponentPool[T](key, Config.poolReservation)
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
