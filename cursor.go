package stockpile

// newCursor creates a cursor over q. Registry backed queries lock the
// registry while the cursor is active.
func newCursor(q Query) *Cursor {
	return &Cursor{
		query: q,
		reg:   q.registry(),
	}
}

// Next advances to the next matching row. It resets the cursor and returns
// false once the query is exhausted. The first call locks the registry;
// callers that stop before exhaustion must call Reset, or every later
// structural change returns LockedRegistryError.
func (c *Cursor) Next() bool {
	if !c.locked && c.reg != nil {
		c.reg.beginIteration()
		c.locked = true
	}
	for c.index < c.query.bound() {
		r, ok := c.query.row(c.index)
		c.index++
		if ok {
			c.current = r
			return true
		}
	}
	c.Reset()
	return false
}

// Reset rewinds the cursor and releases its registry lock, flushing queued
// operations if no other lock remains. Required after breaking out of a
// Next loop early.
func (c *Cursor) Reset() {
	c.index = 0
	c.current = Row{}
	if c.locked {
		c.locked = false
		c.reg.endIteration()
	}
}

func (c *Cursor) Entity() Entity {
	return c.current.Entity
}

func (c *Cursor) Row() Row {
	return c.current
}

// TotalMatched counts matching rows without moving the cursor
func (c *Cursor) TotalMatched() int {
	return Count(c.query)
}
