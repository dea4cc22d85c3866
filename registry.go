package stockpile

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

const userLockBit = 0

// Registry owns every pool and group built over one entity space. It
// assigns type keys through its schema, creates pools on first use and
// enforces that each component type is owned by at most one group.
type Registry struct {
	schema   table.Schema
	keys     map[reflect.Type]uint32
	types    map[uint32]reflect.Type
	pools    []Pool
	groups   *SimpleCache[*OwningGroup]
	owned    mask.Mask
	entities entitySource

	locks     mask.Mask
	iterating int
	opQueue   opQueue
}

func newRegistry(schema table.Schema) *Registry {
	return &Registry{
		schema: schema,
		keys:   make(map[reflect.Type]uint32),
		types:  make(map[uint32]reflect.Type),
		groups: &SimpleCache[*OwningGroup]{
			itemIndices: make(map[string]int),
			maxCapacity: Config.groupCapacity,
		},
		opQueue: newOpQueue(),
	}
}

// fail reports a contract violation through the configured fatal handler
// and returns it, still typed, for handlers that do not abort
func (r *Registry) fail(err error) error {
	Config.fatal(err)
	return err
}

// NewEntity allocates the next entity id
func (r *Registry) NewEntity() Entity {
	e, err := r.entities.allocate()
	if err != nil {
		r.fail(err)
		return NullEntity
	}
	return e
}

func (r *Registry) NewEntities(n int) []Entity {
	entities := make([]Entity, 0, n)
	for range n {
		e := r.NewEntity()
		if !e.Valid() {
			break
		}
		entities = append(entities, e)
	}
	return entities
}

// DestroyEntity removes every component of e, routing each removal through
// the owning group where one exists
func (r *Registry) DestroyEntity(e Entity) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	for _, p := range r.pools {
		if p != nil && p.Contains(e) {
			p.Remove(e)
		}
	}
	return nil
}

func (r *Registry) EnqueueDestroyEntity(e Entity) error {
	if !r.Locked() {
		return r.DestroyEntity(e)
	}
	r.opQueue.EnqueueDestroy(e)
	return nil
}

// RemoveComponent removes c from e. Missing pools and components are no-ops.
func (r *Registry) RemoveComponent(e Entity, c Component) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	p, ok := r.lookupPool(c)
	if !ok {
		return nil
	}
	p.Remove(e)
	return nil
}

func (r *Registry) EnqueueRemoveComponent(e Entity, c Component) error {
	if !r.Locked() {
		return r.RemoveComponent(e, c)
	}
	r.opQueue.EnqueueComponentOp(opRemoveComponent, e, c, func() error {
		return r.RemoveComponent(e, c)
	})
	return nil
}

func (r *Registry) HasComponent(e Entity, c Component) bool {
	p, ok := r.lookupPool(c)
	return ok && p.Contains(e)
}

// PoolFor returns the pool of c. A missing pool is reported as a warning.
func (r *Registry) PoolFor(c Component) (Pool, bool) {
	p, ok := r.lookupPool(c)
	if !ok {
		Config.warn("pool not found", bark.KeyComponent, c.componentType().String())
	}
	return p, ok
}

// KeyFor returns the stable type key of c, assigning one on first use
func (r *Registry) KeyFor(c Component) (uint32, error) {
	t := c.componentType()
	if key, ok := r.keys[t]; ok {
		return key, nil
	}
	r.schema.Register(c)
	key := r.schema.RowIndexFor(c)
	if existing, taken := r.types[key]; taken && existing != t {
		return 0, r.fail(TypeKeyCollisionError{Key: key, Existing: existing, Incoming: t})
	}
	r.keys[t] = key
	r.types[key] = t
	return key, nil
}

func (r *Registry) lookupPool(c Component) (Pool, bool) {
	key, ok := r.keys[c.componentType()]
	if !ok || int(key) >= len(r.pools) || r.pools[key] == nil {
		return nil, false
	}
	return r.pools[key], true
}

func (r *Registry) findOrCreatePool(c Component) (Pool, error) {
	key, err := r.KeyFor(c)
	if err != nil {
		return nil, err
	}
	if int(key) >= len(r.pools) {
		r.pools = append(r.pools, make([]Pool, int(key)+1-len(r.pools))...)
	}
	if r.pools[key] == nil {
		r.pools[key] = c.newPool(key, Config.poolReservation)
	}
	return r.pools[key], nil
}

func (r *Registry) poolsFor(components []Component) ([]Pool, error) {
	pools := make([]Pool, 0, len(components))
	for _, c := range components {
		p, err := r.findOrCreatePool(c)
		if err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return pools, nil
}

// CreateGroup creates the owning group for owned, filtered by views, and
// packs existing pool contents. Requesting an existing combination returns
// the existing group. Owning a component already owned by another group is
// a contract violation.
func (r *Registry) CreateGroup(owned []Component, views ...Component) (*OwningGroup, error) {
	if r.Locked() {
		return nil, LockedRegistryError{}
	}
	ownedKeys, err := r.keysFor(owned)
	if err != nil {
		return nil, err
	}
	viewKeys, err := r.keysFor(views)
	if err != nil {
		return nil, err
	}
	if err := validateGroupKeys(ownedKeys, viewKeys); err != nil {
		return nil, r.fail(err)
	}

	sig := groupSignature(ownedKeys, viewKeys)
	if idx, ok := r.groups.GetIndex(sig); ok {
		return *r.groups.GetItem(idx), nil
	}
	for _, key := range ownedKeys {
		var m mask.Mask
		m.Mark(key)
		if r.owned.ContainsAny(m) {
			return nil, r.fail(GroupConflictError{Key: key})
		}
	}
	ownedPools, err := r.poolsFor(owned)
	if err != nil {
		return nil, err
	}
	viewPools, err := r.poolsFor(views)
	if err != nil {
		return nil, err
	}

	g, err := newOwningGroup(uint32(r.groups.Len()), ownedPools, viewPools)
	if err != nil {
		return nil, r.fail(err)
	}
	if _, err := r.groups.Register(sig, g); err != nil {
		g.release()
		return nil, fmt.Errorf("failed to register group %s: %w", sig, err)
	}
	for _, key := range ownedKeys {
		r.owned.Mark(key)
	}
	g.Repack()
	return g, nil
}

// Group returns a previously created group. Asking for a group that was
// never created is a contract violation.
func (r *Registry) Group(owned []Component, views ...Component) (*OwningGroup, error) {
	ownedKeys, err := r.keysFor(owned)
	if err != nil {
		return nil, err
	}
	viewKeys, err := r.keysFor(views)
	if err != nil {
		return nil, err
	}
	sig := groupSignature(ownedKeys, viewKeys)
	idx, ok := r.groups.GetIndex(sig)
	if !ok {
		return nil, r.fail(GroupNotFoundError{Signature: sig})
	}
	return *r.groups.GetItem(idx), nil
}

// Groups returns every group in creation order
func (r *Registry) Groups() []*OwningGroup {
	return r.groups.Items()
}

// GroupSlice builds a slice over the group owning every component in owned,
// filtered by the given view components
func (r *Registry) GroupSlice(owned []Component, views ...Component) (*GroupSlice, error) {
	ownedKeys, err := r.keysFor(owned)
	if err != nil {
		return nil, err
	}
	if len(ownedKeys) == 0 {
		return nil, r.fail(GroupArityError{Owned: 0})
	}
	var owner *OwningGroup
	for _, g := range r.groups.Items() {
		if g.OwnsAll(ownedKeys...) {
			owner = g
			break
		}
	}
	if owner == nil {
		return nil, r.fail(NoOwningGroupError{Keys: ownedKeys})
	}
	viewKeys, err := r.keysFor(views)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(slices.Concat(ownedKeys, viewKeys)); err != nil {
		return nil, r.fail(err)
	}
	ownedPools, err := r.poolsFor(owned)
	if err != nil {
		return nil, err
	}
	viewPools, err := r.poolsFor(views)
	if err != nil {
		return nil, err
	}
	return newGroupSlice(owner, ownedPools, viewPools, r), nil
}

// View builds an unpacked view over the given components. Components that
// have no pool yet get an empty one, so the view matches nothing.
func (r *Registry) View(components ...Component) (*View, error) {
	pools := make([]Pool, 0, len(components))
	seen := make(map[uint32]struct{}, len(components))
	for _, c := range components {
		p, ok := r.PoolFor(c)
		if !ok {
			created, err := r.findOrCreatePool(c)
			if err != nil {
				return nil, err
			}
			p = created
		}
		if _, dup := seen[p.Key()]; dup {
			return nil, r.fail(DuplicateComponentError{Key: p.Key()})
		}
		seen[p.Key()] = struct{}{}
		pools = append(pools, p)
	}
	return newView(pools, r), nil
}

// Shrink releases unused capacity in every pool
func (r *Registry) Shrink() {
	for _, p := range r.pools {
		if p != nil {
			p.Shrink()
		}
	}
}

func (r *Registry) keysFor(components []Component) ([]uint32, error) {
	keys := make([]uint32, 0, len(components))
	for _, c := range components {
		key, err := r.KeyFor(c)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func validateGroupKeys(owned, views []uint32) error {
	if err := checkUnique(slices.Concat(owned, views)); err != nil {
		return err
	}
	if len(owned) < 2 {
		return GroupArityError{Owned: len(owned)}
	}
	return nil
}

func checkUnique(keys []uint32) error {
	seen := make(map[uint32]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			return DuplicateComponentError{Key: key}
		}
		seen[key] = struct{}{}
	}
	return nil
}

func groupSignature(owned, views []uint32) string {
	var b strings.Builder
	b.WriteString("own")
	writeKeys(&b, owned)
	b.WriteString("|view")
	writeKeys(&b, views)
	return b.String()
}

func writeKeys(b *strings.Builder, keys []uint32) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	for _, key := range sorted {
		fmt.Fprintf(b, ":%d", key)
	}
}

func (r *Registry) Locked() bool {
	return r.locks != (mask.Mask{}) || r.iterating > 0
}

func (r *Registry) Lock() {
	r.AddLock(userLockBit)
}

func (r *Registry) Unlock() {
	r.RemoveLock(userLockBit)
}

// AddLock sets a lock bit. The registry stays locked while any bit is set.
func (r *Registry) AddLock(bit uint32) {
	r.locks.Mark(bit)
}

// RemoveLock clears a lock bit and flushes queued operations once the
// registry is fully unlocked
func (r *Registry) RemoveLock(bit uint32) {
	r.locks.Unmark(bit)
	r.flushIfUnlocked()
}

func (r *Registry) beginIteration() {
	r.iterating++
}

func (r *Registry) endIteration() {
	if r.iterating > 0 {
		r.iterating--
	}
	r.flushIfUnlocked()
}

func (r *Registry) flushIfUnlocked() {
	if r.Locked() {
		return
	}
	if err := r.processOperationQueue(); err != nil {
		r.fail(err)
	}
}
