package stockpile

import (
	"math/rand"
	"testing"
)

// checkPoolInvariant verifies that every dense key resolves back to its slot
func checkPoolInvariant[T any](t *testing.T, p *ComponentPool[T]) {
	t.Helper()
	if len(p.keys) != len(p.values) {
		t.Fatalf("len(keys) = %d, len(values) = %d, want equal", len(p.keys), len(p.values))
	}
	if p.Len() != len(p.keys) {
		t.Fatalf("Len() = %d, want %d", p.Len(), len(p.keys))
	}
	for i, e := range p.keys {
		if got := p.IndexOf(e); got != i {
			t.Fatalf("IndexOf(%d) = %d, want %d", e, got, i)
		}
	}
}

func TestPoolEmplaceRemove(t *testing.T) {
	p := FactoryNewPool[string](0)

	p.Emplace(5, "x")
	p.Emplace(9, "y")

	if !p.Contains(5) {
		t.Errorf("Contains(5) = false, want true")
	}
	if p.Contains(7) {
		t.Errorf("Contains(7) = true, want false")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}

	p.Remove(5)
	if p.Contains(5) {
		t.Errorf("Contains(5) after Remove = true, want false")
	}
	if p.Len() != 1 {
		t.Errorf("Len() after Remove = %d, want 1", p.Len())
	}
	if got := *p.Get(9); got != "y" {
		t.Errorf("Get(9) = %q, want %q", got, "y")
	}
	checkPoolInvariant(t, p)

	// Removing an absent key is a no-op
	p.Remove(5)
	p.Remove(1000)
	if p.Len() != 1 {
		t.Errorf("Len() after absent removals = %d, want 1", p.Len())
	}
}

func TestPoolEmplaceExisting(t *testing.T) {
	tests := []struct {
		name  string
		try   bool
		value int
		want  int
	}{
		{"Emplace overwrites", false, 20, 20},
		{"TryEmplace keeps", true, 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FactoryNewPool[int](0)
			first := p.Emplace(3, 10)
			p.Emplace(4, 11)

			var second int
			if tt.try {
				second = p.TryEmplace(3, tt.value)
			} else {
				second = p.Emplace(3, tt.value)
			}

			if second != first {
				t.Errorf("index = %d, want existing %d", second, first)
			}
			if p.Len() != 2 {
				t.Errorf("Len() = %d, want 2", p.Len())
			}
			if got := *p.Get(3); got != tt.want {
				t.Errorf("Get(3) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPoolSwap(t *testing.T) {
	p := FactoryNewPool[int](0)
	for e := Entity(1); e <= 4; e++ {
		p.Emplace(e, int(e)*10)
	}
	original := append([]Entity(nil), p.Keys()...)

	p.Swap(1, 4)
	if p.KeyAt(0) != 4 || p.KeyAt(3) != 1 {
		t.Errorf("keys after swap = %v, want 4 first and 1 last", p.Keys())
	}
	if *p.At(0) != 40 {
		t.Errorf("At(0) = %d, want 40", *p.At(0))
	}
	checkPoolInvariant(t, p)

	p.Swap(1, 4)
	for i, e := range original {
		if p.KeyAt(i) != e {
			t.Errorf("KeyAt(%d) = %d after round trip, want %d", i, p.KeyAt(i), e)
		}
	}

	// Absent or identical keys leave the order untouched
	p.Swap(1, 99)
	p.Swap(2, 2)
	for i, e := range original {
		if p.KeyAt(i) != e {
			t.Errorf("KeyAt(%d) = %d after no-op swaps, want %d", i, p.KeyAt(i), e)
		}
	}
}

func TestPoolInvariantRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := FactoryNewPool[Entity](0)
	present := make(map[Entity]bool)

	for i := 0; i < 5000; i++ {
		e := Entity(rng.Intn(3 * PageSize))
		switch rng.Intn(3) {
		case 0, 1:
			p.Emplace(e, e)
			present[e] = true
		case 2:
			p.Remove(e)
			delete(present, e)
		}
		checkPoolInvariant(t, p)
	}

	if p.Len() != len(present) {
		t.Fatalf("Len() = %d, want %d", p.Len(), len(present))
	}
	for e := range present {
		if got := p.Get(e); got == nil || *got != e {
			t.Fatalf("Get(%d) = %v, want value %d", e, got, e)
		}
	}
}

func TestPoolAccessors(t *testing.T) {
	p := FactoryNewPool[Position](0)
	e := Entity(PageSize + 3)
	p.Emplace(e, Position{X: 1, Y: 2})

	page, offset := e.Split()
	if !p.ContainsAt(page, offset) {
		t.Fatalf("ContainsAt(%d, %d) = false, want true", page, offset)
	}
	p.AtPage(page, offset).X = 5
	if got := p.MustGet(e).X; got != 5 {
		t.Errorf("MustGet(%d).X = %v, want 5", e, got)
	}
	if p.Get(0) != nil {
		t.Errorf("Get(0) = non-nil, want nil")
	}

	errs := recordFatal(t)
	if got := p.MustGet(0); got != nil {
		t.Errorf("MustGet(0) = %v, want nil", got)
	}
	if len(*errs) != 1 {
		t.Fatalf("fatal reports = %d, want 1", len(*errs))
	}
	if _, ok := (*errs)[0].(EntityNotFoundError); !ok {
		t.Errorf("fatal error = %T, want EntityNotFoundError", (*errs)[0])
	}
}

func TestPoolRejectsNullEntity(t *testing.T) {
	errs := recordFatal(t)
	p := FactoryNewPool[int](0)
	p.Emplace(NullEntity, 1)

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if len(*errs) != 1 {
		t.Errorf("fatal reports = %d, want 1", len(*errs))
	}
}

func TestPoolIteration(t *testing.T) {
	p := FactoryNewPool[int](0)
	for e := Entity(0); e < 5; e++ {
		p.Emplace(e, int(e))
	}

	sum := 0
	p.Each(func(e Entity, v *int) {
		sum += *v
		*v = 0
	})
	if sum != 10 {
		t.Errorf("Each sum = %d, want 10", sum)
	}

	visited := 0
	for _, v := range p.All() {
		if *v != 0 {
			t.Errorf("value = %d after Each reset, want 0", *v)
		}
		visited++
		if visited == 3 {
			break
		}
	}
	if visited != 3 {
		t.Errorf("visited = %d, want 3", visited)
	}
}

func TestPoolShrink(t *testing.T) {
	p := FactoryNewPool[int](0)
	for e := Entity(0); e < 100; e++ {
		p.Emplace(e, int(e))
	}
	for e := Entity(0); e < 90; e++ {
		p.Remove(e)
	}
	p.Shrink()

	if cap(p.keys) != p.Len() || cap(p.values) != p.Len() {
		t.Errorf("cap(keys) = %d, cap(values) = %d, want %d", cap(p.keys), cap(p.values), p.Len())
	}
	checkPoolInvariant(t, p)
}

type recordingOwner struct {
	inserted []Entity
	removed  []Entity
}

func (o *recordingOwner) OnInsert(e Entity) { o.inserted = append(o.inserted, e) }
func (o *recordingOwner) OnRemove(e Entity) { o.removed = append(o.removed, e) }

func TestPoolOwnership(t *testing.T) {
	p := FactoryNewPool[int](1)
	owner := &recordingOwner{}

	ownership, err := p.Attach(owner)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if !p.Owned() {
		t.Errorf("Owned() = false, want true")
	}
	if _, err := p.Attach(&recordingOwner{}); err == nil {
		t.Errorf("second Attach succeeded, want PoolOwnedError")
	}
	if _, err := p.Attach(nil); err == nil {
		t.Errorf("Attach(nil) succeeded, want error")
	}

	p.Emplace(1, 10)
	p.Emplace(2, 20)
	p.Emplace(1, 11) // overwrite, not reported
	if len(owner.inserted) != 2 {
		t.Errorf("inserted = %v, want 2 entries", owner.inserted)
	}

	// Removal is delegated entirely to the owner
	p.Remove(1)
	p.Remove(3)
	if len(owner.removed) != 1 || owner.removed[0] != 1 {
		t.Errorf("removed = %v, want [1]", owner.removed)
	}
	if !p.Contains(1) {
		t.Errorf("Contains(1) = false, owner did not remove it yet")
	}

	// The capability compacts locally
	ownership.Remove(1)
	if p.Contains(1) || p.Len() != 1 {
		t.Errorf("after Ownership.Remove: Contains(1) = %v, Len() = %d", p.Contains(1), p.Len())
	}
	checkPoolInvariant(t, p)

	ownership.Release()
	if p.Owned() {
		t.Errorf("Owned() after Release = true, want false")
	}
	p.Remove(2)
	if p.Len() != 0 {
		t.Errorf("Len() after unowned Remove = %d, want 0", p.Len())
	}
}
