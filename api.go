package stockpile

import "iter"

// Pool is the type-erased capability set shared by every component pool
type Pool interface {
	Key() uint32
	Contains(Entity) bool
	ContainsAt(page, offset int) bool
	Remove(Entity)
	Swap(a, b Entity)
	Len() int
	Shrink()
	KeyAt(index int) Entity
	Keys() []Entity
	Attach(Owner) (Ownership, error)
	Owned() bool

	removeBySelf(Entity)
	detach(Owner)
}

// Query is implemented by group slices, views and runners
type Query interface {
	Rows() iter.Seq[Row]

	bound() int
	row(i int) (Row, bool)
	columns() []column
	registry() *Registry
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
}

type Cursor struct {
	query Query
	reg   *Registry

	// Current iteration state
	current Row
	index   int
	locked  bool
}

type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}
