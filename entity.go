package stockpile

import "math"

// Entity is an opaque identifier that groups component values across pools
type Entity uint32

// NullEntity is the "no entity" sentinel
const NullEntity Entity = math.MaxUint32

// PageSize is the number of sparse slots held by a single index page
const PageSize = 512

// Valid reports whether e is not the sentinel
func (e Entity) Valid() bool {
	return e != NullEntity
}

// Split decomposes the entity into its sparse page and offset
func (e Entity) Split() (page, offset int) {
	return int(e / PageSize), int(e % PageSize)
}

type entitySource struct {
	next Entity
}

func (s *entitySource) allocate() (Entity, error) {
	if s.next == NullEntity {
		return NullEntity, EntityExhaustedError{}
	}
	e := s.next
	s.next++
	return e, nil
}
