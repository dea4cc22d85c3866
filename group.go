package stockpile

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
)

// OwningGroup keeps its owned pools packed so that entities present in all
// of them occupy the same, identically ordered prefix [0, Len()) of every
// owned pool's dense arrays.
type OwningGroup struct {
	id        uint32
	owned     []Pool
	views     []Pool
	members   []*groupMember
	ownership []Ownership
	ownedMask mask.Mask
	nextIndex int
}

// groupMember is the owner attached to a single owned pool. It remembers
// which pool it serves so unpacked removals stay local to that pool.
type groupMember struct {
	group *OwningGroup
	slot  int
}

func (m *groupMember) OnInsert(e Entity) {
	m.group.onInsert(e)
}

func (m *groupMember) OnRemove(e Entity) {
	m.group.onRemove(m.slot, e)
}

func newOwningGroup(id uint32, owned, views []Pool) (*OwningGroup, error) {
	if len(owned) < 2 {
		return nil, GroupArityError{Owned: len(owned)}
	}
	g := &OwningGroup{
		id:    id,
		owned: owned,
		views: views,
	}
	seen := make(map[uint32]struct{}, len(owned)+len(views))
	for _, p := range append(append([]Pool{}, owned...), views...) {
		if _, dup := seen[p.Key()]; dup {
			return nil, DuplicateComponentError{Key: p.Key()}
		}
		seen[p.Key()] = struct{}{}
	}
	for i, p := range owned {
		member := &groupMember{group: g, slot: i}
		ownership, err := p.Attach(member)
		if err != nil {
			g.release()
			return nil, fmt.Errorf("failed to attach group %d to pool %d: %w", id, p.Key(), err)
		}
		g.members = append(g.members, member)
		g.ownership = append(g.ownership, ownership)
		g.ownedMask.Mark(p.Key())
	}
	return g, nil
}

func (g *OwningGroup) release() {
	for _, o := range g.ownership {
		o.Release()
	}
	g.ownership = nil
	g.members = nil
}

func (g *OwningGroup) ID() uint32 {
	return g.id
}

// Len returns the size of the packed prefix
func (g *OwningGroup) Len() int {
	return g.nextIndex
}

// Contains reports whether e is present in every owned pool. View pools
// are not consulted.
func (g *OwningGroup) Contains(e Entity) bool {
	for _, p := range g.owned {
		if !p.Contains(e) {
			return false
		}
	}
	return true
}

func (g *OwningGroup) Owns(key uint32) bool {
	var m mask.Mask
	m.Mark(key)
	return g.ownedMask.ContainsAll(m)
}

func (g *OwningGroup) OwnsAll(keys ...uint32) bool {
	var m mask.Mask
	for _, key := range keys {
		m.Mark(key)
	}
	return g.ownedMask.ContainsAll(m)
}

func (g *OwningGroup) Pools() []Pool {
	return g.owned
}

func (g *OwningGroup) Views() []Pool {
	return g.views
}

// Repack rebuilds the packed prefix from the current pool contents. It is
// idempotent on an already packed group.
func (g *OwningGroup) Repack() {
	driver := g.owned[0]
	for _, p := range g.owned[1:] {
		if p.Len() < driver.Len() {
			driver = p
		}
	}
	g.nextIndex = 0
	for i := 0; i < driver.Len(); i++ {
		e := driver.KeyAt(i)
		if !g.Contains(e) {
			continue
		}
		g.packAt(e)
	}
}

// packAt moves e into slot nextIndex of every owned pool
func (g *OwningGroup) packAt(e Entity) {
	for _, p := range g.owned {
		p.Swap(p.KeyAt(g.nextIndex), e)
	}
	g.nextIndex++
}

func (g *OwningGroup) onInsert(e Entity) {
	if g.Contains(e) {
		g.packAt(e)
	}
}

// onRemove moves a packed entity to the last packed slot and drops it from
// every owned pool. An entity outside the prefix is only removed from the
// pool that asked.
func (g *OwningGroup) onRemove(slot int, e Entity) {
	if !g.Contains(e) {
		g.ownership[slot].Remove(e)
		return
	}
	g.nextIndex--
	target := g.owned[0].KeyAt(g.nextIndex)
	for i, p := range g.owned {
		p.Swap(e, target)
		g.ownership[i].Remove(e)
	}
}

// Slice returns a group slice over all owned pools filtered by the group's
// own view pools
func (g *OwningGroup) Slice() *GroupSlice {
	return newGroupSlice(g, g.owned, g.views, nil)
}
