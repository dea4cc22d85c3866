package stockpile

import (
	"fmt"
	"reflect"
)

type LockedRegistryError struct{}

func (e LockedRegistryError) Error() string {
	return "registry is currently locked"
}

type EntityExhaustedError struct{}

func (e EntityExhaustedError) Error() string {
	return "entity id space exhausted"
}

type InvalidEntityError struct {
	Entity Entity
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("invalid entity: %d", e.Entity)
}

type EntityNotFoundError struct {
	Entity Entity
	Key    uint32
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d not found in pool %d", e.Entity, e.Key)
}

type PoolOwnedError struct {
	Key uint32
}

func (e PoolOwnedError) Error() string {
	return fmt.Sprintf("pool %d already has an owner", e.Key)
}

type NilOwnerError struct {
	Key uint32
}

func (e NilOwnerError) Error() string {
	return fmt.Sprintf("cannot attach nil owner to pool %d", e.Key)
}

type GroupConflictError struct {
	Key uint32
}

func (e GroupConflictError) Error() string {
	return fmt.Sprintf("groups conflict: component %d is already owned by another group", e.Key)
}

type GroupArityError struct {
	Owned int
}

func (e GroupArityError) Error() string {
	return fmt.Sprintf("group needs at least two owned components, got %d", e.Owned)
}

type DuplicateComponentError struct {
	Key uint32
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %d listed more than once", e.Key)
}

type GroupNotFoundError struct {
	Signature string
}

func (e GroupNotFoundError) Error() string {
	return fmt.Sprintf("group %s has not been created", e.Signature)
}

type NoOwningGroupError struct {
	Keys []uint32
}

func (e NoOwningGroupError) Error() string {
	return fmt.Sprintf("no group owns components %v", e.Keys)
}

type TypeKeyCollisionError struct {
	Key      uint32
	Existing reflect.Type
	Incoming reflect.Type
}

func (e TypeKeyCollisionError) Error() string {
	return fmt.Sprintf("type key %d already bound to %v, cannot bind %v", e.Key, e.Existing, e.Incoming)
}

type ColumnNotFoundError struct {
	Type reflect.Type
}

func (e ColumnNotFoundError) Error() string {
	return fmt.Sprintf("query has no column of type %v", e.Type)
}

type CacheCapacityError struct {
	Capacity int
	Key      string
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d), cannot register %q", e.Capacity, e.Key)
}
