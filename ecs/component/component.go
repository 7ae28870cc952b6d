package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID distinguishes component types inside a world.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentHandle is the typed key for one component type. Declare one
// package-level handle per type.
type ComponentHandle[T any] struct {
	id ComponentID
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}
