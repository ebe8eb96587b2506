package ecs

import "strconv"

// Entity packs a slot id (low 32 bits) with the slot generation (high 32
// bits) so stale handles stop resolving once a slot is reused.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Valid reports whether e was ever handed out by a world. It does not
// check liveness.
func (e Entity) Valid() bool {
	return e.id() > 0
}
