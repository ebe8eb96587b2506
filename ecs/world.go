package ecs

import "github.com/milk9111/flyto/ecs/component"

// Kind is anything naming a component storage: a ComponentKind or a
// ComponentHandle.
type Kind interface {
	ID() component.ComponentID
}

// World owns entities and their component storages.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in creation-slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if s, ok := w.stores[id]; ok {
		return s
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = map[component.ComponentID]*SparseSet{}
	}
	s := &SparseSet{}
	w.stores[id] = s
	return s
}

// AddComponent stores value (a *T) for e, replacing any previous value.
func (w *World) AddComponent(e Entity, kind Kind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func (w *World) RemoveComponent(e Entity, kind Kind) bool {
	if w == nil || kind == nil {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

func (w *World) GetComponent(e Entity, kind Kind) (any, bool) {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(kind.ID(), false)
	if !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

func (w *World) HasComponent(e Entity, kind Kind) bool {
	_, ok := w.GetComponent(e, kind)
	return ok
}

// First returns the live entity with kind that has the lowest slot id.
func (w *World) First(kind Kind) (Entity, bool) {
	found := Entity(0)
	for _, e := range w.Query(kind) {
		if found == 0 || e.id() < found.id() {
			found = e
		}
	}
	return found, found != 0
}

// Query returns the live entities holding every kind, ordered by slot id.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		if k == nil {
			return nil
		}
		s := w.store(k.ID(), false)
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	return intersectEntities(w, sets)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
