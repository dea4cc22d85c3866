package stockpile

import "iter"

var _ Pool = &ComponentPool[struct{}]{}

// ComponentPool stores every value of a single component type. Keys and
// values are dense and index aligned; the sparse index resolves entities to
// dense slots.
type ComponentPool[T any] struct {
	key    uint32
	keys   []Entity
	values []T
	sparse sparseIndex
	owner  Owner
}

func newComponentPool[T any](key uint32, reservation int) *ComponentPool[T] {
	p := &ComponentPool[T]{
		key:    key,
		keys:   make([]Entity, 0, reservation),
		values: make([]T, 0, reservation),
	}
	p.sparse.grow(1)
	return p
}

func (p *ComponentPool[T]) Key() uint32 {
	return p.key
}

// Emplace stores v for e and returns its dense index. A new entity is
// appended and reported to the owner; an existing one has its value
// overwritten in place without notifying the owner.
func (p *ComponentPool[T]) Emplace(e Entity, v T) int {
	index := p.sparse.get(e)
	if index != absent {
		p.values[index] = v
		return index
	}
	return p.insert(e, v)
}

// TryEmplace behaves like Emplace but leaves an existing value untouched
func (p *ComponentPool[T]) TryEmplace(e Entity, v T) int {
	index := p.sparse.get(e)
	if index != absent {
		return index
	}
	return p.insert(e, v)
}

func (p *ComponentPool[T]) insert(e Entity, v T) int {
	if !e.Valid() {
		Config.fatal(InvalidEntityError{Entity: e})
		return absent
	}
	index := len(p.keys)
	p.keys = append(p.keys, e)
	p.values = append(p.values, v)
	p.sparse.set(e, index)

	if p.owner != nil {
		p.owner.OnInsert(e)
		return p.sparse.get(e)
	}
	return index
}

// Remove deletes e. When an owner is attached the removal is delegated to it.
func (p *ComponentPool[T]) Remove(e Entity) {
	if !p.sparse.contains(e) {
		return
	}
	if p.owner != nil {
		p.owner.OnRemove(e)
		return
	}
	p.removeBySelf(e)
}

func (p *ComponentPool[T]) removeBySelf(e Entity) {
	index := p.sparse.get(e)
	if index == absent {
		return
	}
	last := len(p.keys) - 1
	if index != last {
		p.keys[index] = p.keys[last]
		p.values[index] = p.values[last]
		p.sparse.set(p.keys[index], index)
	}
	var zero T
	p.values[last] = zero
	p.keys = p.keys[:last]
	p.values = p.values[:last]
	p.sparse.unset(e)
}

// Swap exchanges the dense positions of a and b
func (p *ComponentPool[T]) Swap(a, b Entity) {
	i1 := p.sparse.get(a)
	i2 := p.sparse.get(b)
	if i1 == absent || i2 == absent || i1 == i2 {
		return
	}
	p.keys[i1], p.keys[i2] = p.keys[i2], p.keys[i1]
	p.values[i1], p.values[i2] = p.values[i2], p.values[i1]
	p.sparse.set(a, i2)
	p.sparse.set(b, i1)
}

func (p *ComponentPool[T]) Contains(e Entity) bool {
	return p.sparse.contains(e)
}

// ContainsAt is Contains for callers that already split the entity
func (p *ComponentPool[T]) ContainsAt(page, offset int) bool {
	return p.sparse.containsAt(page, offset)
}

func (p *ComponentPool[T]) Len() int {
	return len(p.keys)
}

// IndexOf returns the dense index of e, or -1 when absent
func (p *ComponentPool[T]) IndexOf(e Entity) int {
	return p.sparse.get(e)
}

func (p *ComponentPool[T]) KeyAt(index int) Entity {
	return p.keys[index]
}

// Keys exposes the dense key order. The slice must not be modified.
func (p *ComponentPool[T]) Keys() []Entity {
	return p.keys
}

// Shrink releases unused dense capacity
func (p *ComponentPool[T]) Shrink() {
	if cap(p.keys) > len(p.keys) {
		keys := make([]Entity, len(p.keys))
		copy(keys, p.keys)
		p.keys = keys
	}
	if cap(p.values) > len(p.values) {
		values := make([]T, len(p.values))
		copy(values, p.values)
		p.values = values
	}
}

// Get returns the value stored for e, or nil
func (p *ComponentPool[T]) Get(e Entity) *T {
	index := p.sparse.get(e)
	if index == absent {
		return nil
	}
	return &p.values[index]
}

// MustGet returns the value stored for e. Absence is a contract violation.
func (p *ComponentPool[T]) MustGet(e Entity) *T {
	index := p.sparse.get(e)
	if index == absent {
		Config.fatal(EntityNotFoundError{Entity: e, Key: p.key})
		return nil
	}
	return &p.values[index]
}

// At returns the value at dense index i without checks
func (p *ComponentPool[T]) At(i int) *T {
	return &p.values[i]
}

// AtPage returns the value for an entity already split into page and
// offset. The entity must be present.
func (p *ComponentPool[T]) AtPage(page, offset int) *T {
	return &p.values[p.sparse.pages[page][offset]]
}

// Each calls fn for every stored value in dense order
func (p *ComponentPool[T]) Each(fn func(Entity, *T)) {
	for i := range p.keys {
		fn(p.keys[i], &p.values[i])
	}
}

func (p *ComponentPool[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := range p.keys {
			if !yield(p.keys[i], &p.values[i]) {
				return
			}
		}
	}
}

// Attach registers o as the pool's single owner
func (p *ComponentPool[T]) Attach(o Owner) (Ownership, error) {
	if o == nil {
		return Ownership{}, NilOwnerError{Key: p.key}
	}
	if p.owner != nil {
		return Ownership{}, PoolOwnedError{Key: p.key}
	}
	p.owner = o
	return Ownership{pool: p, owner: o}, nil
}

func (p *ComponentPool[T]) Owned() bool {
	return p.owner != nil
}

func (p *ComponentPool[T]) detach(o Owner) {
	if p.owner == o {
		p.owner = nil
	}
}
