package stockpile

import (
	"iter"
	"reflect"

	iter_util "github.com/TheBitDrifter/util/iter"
)

// Row locates one matched entity inside a query. Index is the dense index
// in the query's driver pool; Page and Offset are the entity's sparse
// coordinates.
type Row struct {
	Entity Entity
	Index  int
	Page   int
	Offset int
}

type column struct {
	pool   Pool
	packed bool
}

type typedColumn[T any] struct {
	pool   *ComponentPool[T]
	packed bool
}

func (c typedColumn[T]) at(r Row) *T {
	if c.packed {
		return c.pool.At(r.Index)
	}
	return c.pool.AtPage(r.Page, r.Offset)
}

func (c typedColumn[T]) ok() bool {
	return c.pool != nil
}

// columnFor finds the column storing T. Packed columns are addressed by
// dense index, the rest by sparse coordinates.
func columnFor[T any](q Query) typedColumn[T] {
	for _, col := range q.columns() {
		if p, ok := col.pool.(*ComponentPool[T]); ok {
			return typedColumn[T]{pool: p, packed: col.packed}
		}
	}
	Config.fatal(ColumnNotFoundError{Type: reflect.TypeFor[T]()})
	return typedColumn[T]{}
}

func rowsOf(q Query) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i := 0; i < q.bound(); i++ {
			r, ok := q.row(i)
			if !ok {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Entities collects the entities matched by q in iteration order
func Entities(q Query) []Entity {
	var seq iter.Seq[Entity] = func(yield func(Entity) bool) {
		for r := range q.Rows() {
			if !yield(r.Entity) {
				return
			}
		}
	}
	return iter_util.Collect(seq)
}

// Count returns the number of rows matched by q
func Count(q Query) int {
	n := 0
	for range q.Rows() {
		n++
	}
	return n
}

// lockFor locks the query's registry for the duration of an iteration and
// returns the matching unlock
func lockFor(q Query) func() {
	reg := q.registry()
	if reg == nil {
		return func() {}
	}
	reg.beginIteration()
	return reg.endIteration
}
