package stockpile

import (
	"errors"
	"fmt"
	"reflect"
)

type operation struct {
	typ    operationType
	entity Entity
	comp   Component
	apply  func() error
}

type operationType int

const (
	opNoop operationType = iota
	opAddComponent
	opRemoveComponent
	opDestroy
)

type opKey struct {
	entity Entity
	typ    reflect.Type
}

// opQueue holds structural changes requested while a registry is locked
type opQueue struct {
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[Entity]struct{}
	pendingMods    map[opKey]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[Entity]struct{}),
		pendingMods:    make(map[opKey]int),
	}
}

func (q *opQueue) Len() int {
	return len(q.componentOps) + len(q.destroyOps)
}

// processOperationQueue applies queued operations. A failing operation does
// not stop the rest; every failure is joined into the returned error.
func (r *Registry) processOperationQueue() error {
	if r.opQueue.Len() == 0 {
		return nil
	}
	componentOps := r.opQueue.componentOps
	destroyOps := r.opQueue.destroyOps
	r.opQueue.reset()

	var errs []error

	// Component modifications first, in the order they were requested
	for _, op := range componentOps {
		if op.typ == opNoop {
			continue
		}
		if err := op.apply(); err != nil {
			errs = append(errs, fmt.Errorf("failed to apply queued component operation on entity %d: %w", op.entity, err))
		}
	}

	// Process destroys last
	for _, op := range destroyOps {
		if err := r.DestroyEntity(op.entity); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy queued entity %d: %w", op.entity, err))
		}
	}
	return errors.Join(errs...)
}

func (q *opQueue) reset() {
	q.componentOps = nil
	q.destroyOps = nil
	clear(q.pendingDestroy)
	clear(q.pendingMods)
}

func (q *opQueue) EnqueueDestroy(e Entity) {
	if _, exists := q.pendingDestroy[e]; exists {
		return
	}
	q.pendingDestroy[e] = struct{}{}

	// Drop pending component operations for this entity
	for key, idx := range q.pendingMods {
		if key.entity == e {
			q.componentOps[idx].typ = opNoop
			delete(q.pendingMods, key)
		}
	}
	q.destroyOps = append(q.destroyOps, operation{
		typ:    opDestroy,
		entity: e,
	})
}

// EnqueueComponentOp queues an add or remove. A later operation on the same
// entity and component replaces the earlier one.
func (q *opQueue) EnqueueComponentOp(typ operationType, e Entity, c Component, apply func() error) {
	// If entity is pending destroy, ignore component operations
	if _, isDestroyed := q.pendingDestroy[e]; isDestroyed {
		return
	}
	key := opKey{entity: e, typ: c.componentType()}
	if existingIdx, exists := q.pendingMods[key]; exists {
		q.componentOps[existingIdx].typ = opNoop
	}
	q.pendingMods[key] = len(q.componentOps)
	q.componentOps = append(q.componentOps, operation{
		typ:    typ,
		entity: e,
		comp:   c,
		apply:  apply,
	})
}
