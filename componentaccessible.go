package stockpile

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

var _ Component = AccessibleComponent[struct{}]{}

// AccessibleComponent is the typed handle for a component. It resolves the
// component's pool in a registry and reads values from cursors.
type AccessibleComponent[T any] struct {
	table.ElementType
}

func (c AccessibleComponent[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c AccessibleComponent[T]) newPool(key uint32, reservation int) Pool {
	return newComponentPool[T](key, reservation)
}

// Pool returns the component's pool in r, or nil if none exists yet
func (c AccessibleComponent[T]) Pool(r *Registry) *ComponentPool[T] {
	p, ok := r.lookupPool(c)
	if !ok {
		return nil
	}
	return p.(*ComponentPool[T])
}

// Add attaches value to the entity, overwriting any existing value
func (c AccessibleComponent[T]) Add(r *Registry, e Entity, value T) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	p, err := r.findOrCreatePool(c)
	if err != nil {
		return err
	}
	p.(*ComponentPool[T]).Emplace(e, value)
	return nil
}

// EnqueueAdd adds the component immediately when r is unlocked and defers
// the addition until the final unlock otherwise
func (c AccessibleComponent[T]) EnqueueAdd(r *Registry, e Entity, value T) error {
	if !r.Locked() {
		return c.Add(r, e, value)
	}
	r.opQueue.EnqueueComponentOp(opAddComponent, e, c, func() error {
		return c.Add(r, e, value)
	})
	return nil
}

func (c AccessibleComponent[T]) Remove(r *Registry, e Entity) error {
	return r.RemoveComponent(e, c)
}

func (c AccessibleComponent[T]) EnqueueRemove(r *Registry, e Entity) error {
	return r.EnqueueRemoveComponent(e, c)
}

func (c AccessibleComponent[T]) Has(r *Registry, e Entity) bool {
	return r.HasComponent(e, c)
}

// Get returns the entity's value, or nil when the entity lacks the component
func (c AccessibleComponent[T]) Get(r *Registry, e Entity) *T {
	p := c.Pool(r)
	if p == nil {
		return nil
	}
	return p.Get(e)
}

// Runner returns a single-pool query over the component
func (c AccessibleComponent[T]) Runner(r *Registry) (*Runner, error) {
	p, err := r.findOrCreatePool(c)
	if err != nil {
		return nil, err
	}
	return newRunner(p, r), nil
}

// GetFromCursor retrieves the component value for the row at the cursor
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	col := columnFor[T](cursor.query)
	if !col.ok() {
		return nil
	}
	return col.at(cursor.current)
}

// GetFromCursorSafe reports whether the cursor's query carries the
// component, returning its value if so
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if !c.CheckCursor(cursor) {
		return false, nil
	}
	return true, c.GetFromCursor(cursor)
}

// CheckCursor determines if the cursor's query has a column for the component
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	for _, col := range cursor.query.columns() {
		if _, ok := col.pool.(*ComponentPool[T]); ok {
			return true
		}
	}
	return false
}
