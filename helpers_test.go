package stockpile

import (
	"slices"
	"testing"
)

// Test component types
type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Health struct {
	Current, Max int
}

type Frozen struct{}

// recordFatal swaps the fatal handler for one that records violations
func recordFatal(t *testing.T) *[]error {
	t.Helper()
	var errs []error
	Config.SetFatalHandler(func(err error) {
		errs = append(errs, err)
	})
	t.Cleanup(func() {
		Config.SetFatalHandler(nil)
	})
	return &errs
}

// checkGroupInvariant verifies that the packed prefix is identical across
// owned pools and holds exactly the entities present in all of them
func checkGroupInvariant(t *testing.T, g *OwningGroup) {
	t.Helper()
	first := g.owned[0]
	for _, p := range g.owned[1:] {
		for i := 0; i < g.Len(); i++ {
			if p.KeyAt(i) != first.KeyAt(i) {
				t.Fatalf("pool %d KeyAt(%d) = %d, pool %d has %d", p.Key(), i, p.KeyAt(i), first.Key(), first.KeyAt(i))
			}
		}
	}
	packed := slices.Clone(first.Keys()[:g.Len()])
	var want []Entity
	for _, e := range first.Keys() {
		if g.Contains(e) {
			want = append(want, e)
		}
	}
	slices.Sort(packed)
	slices.Sort(want)
	if !slices.Equal(packed, want) {
		t.Fatalf("packed prefix = %v, want %v", packed, want)
	}
}

func sortedEntities(q Query) []Entity {
	entities := Entities(q)
	slices.Sort(entities)
	return entities
}
