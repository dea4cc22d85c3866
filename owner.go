package stockpile

// Owner is an external synchronizer that takes over a pool's insert and
// remove resolution once attached
type Owner interface {
	OnInsert(Entity)
	OnRemove(Entity)
}

// Ownership is the capability granted by Pool.Attach. It is the only way
// to compact a pool locally while an owner is attached.
type Ownership struct {
	pool  Pool
	owner Owner
}

// Pool returns the pool this capability was granted for
func (o Ownership) Pool() Pool {
	return o.pool
}

// Remove physically deletes e from the pool with swap-with-last compaction,
// bypassing the owner
func (o Ownership) Remove(e Entity) {
	o.pool.removeBySelf(e)
}

// Release detaches the owner from the pool
func (o Ownership) Release() {
	o.pool.detach(o.owner)
}
