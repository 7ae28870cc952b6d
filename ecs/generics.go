package ecs

import (
	"fmt"

	"github.com/milk9111/templehub/ecs/component"
)

func storeOf[T any](w *World, handle component.ComponentHandle[T], create bool) *sparseSet[T] {
	if w == nil || !handle.Valid() {
		return nil
	}
	if s, ok := w.stores[handle.ID()]; ok {
		return s.(*sparseSet[T])
	}
	if !create {
		return nil
	}
	s := &sparseSet[T]{}
	w.stores[handle.ID()] = s
	return s
}

// Add sets e's component, replacing any previous value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !handle.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	storeOf(w, handle, true).set(e, value)
	return nil
}

// Remove deletes e's component and reports whether it had one.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeOf(w, handle, false)
	return s != nil && s.drop(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	_, ok := Get(w, e, handle)
	return ok
}

// Get returns a pointer to e's component. Writes through it are visible to
// later readers.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	s := storeOf(w, handle, false)
	if s == nil || !IsAlive(w, e) {
		return nil, false
	}
	return s.get(e)
}

// First returns an entity carrying the component. Use it for singletons
// such as the rig or the HUD.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, bool) {
	s := storeOf(w, handle, false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.dense {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// Count returns how many entities carry the component.
func Count[T any](w *World, handle component.ComponentHandle[T]) int {
	s := storeOf(w, handle, false)
	if s == nil {
		return 0
	}
	return s.size()
}

// ForEach visits every entity with the component. fn may add or destroy
// entities; ones added during the walk are not visited.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	s := storeOf(w, handle, false)
	if s == nil {
		return
	}
	for _, e := range s.entities() {
		if v, ok := s.get(e); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities that carry both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	sa := storeOf(w, ha, false)
	sb := storeOf(w, hb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range sa.entities() {
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}
