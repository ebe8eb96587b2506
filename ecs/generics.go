package ecs

import "github.com/milk9111/flyto/ecs/component"

// Add stores a copy of value as e's T component.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.AddComponent(e, handle, &value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle)
}

// Get returns a pointer to e's T component; writes through it are kept.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	value, ok := w.GetComponent(e, handle)
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// First returns the lowest-slot entity that has a T and its component.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, *T, bool) {
	e, ok := w.First(handle)
	if !ok {
		return 0, nil, false
	}
	v, ok := Get(w, e, handle)
	return e, v, ok
}

// ForEach calls fn for every live entity with a T, in slot order.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	for _, e := range w.Query(handle) {
		if v, ok := Get(w, e, handle); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ha, hb) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}
