package stockpile

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

// Component represents a data attribute that can be attached to entities.
// Components key pools in a registry and select columns in queries.
type Component interface {
	table.ElementType
	componentType() reflect.Type
	newPool(key uint32, reservation int) Pool
}
