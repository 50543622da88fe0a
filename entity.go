package stockroom

import "fmt"

// Entity is an opaque handle to one logical object. The generation tells a
// recycled id apart from a stale handle to its previous occupant.
type Entity struct {
	ID         uint32
	Generation uint32
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d:%d)", e.ID, e.Generation)
}

type entitySlot struct {
	archetype  ArchetypeID
	row        int
	generation uint32
	alive      bool
}

// entityIndex maps entity ids to their archetype and row and recycles
// destroyed ids through a LIFO free list.
type entityIndex struct {
	slots []entitySlot
	free  []uint32
	live  int
}

func newEntityIndex(capacity int) entityIndex {
	return entityIndex{
		slots: make([]entitySlot, 0, capacity),
	}
}

// allocate pops a recycled id if one is waiting, otherwise appends a new slot.
// The returned entity is alive but not yet placed in an archetype.
func (ix *entityIndex) allocate() Entity {
	var id uint32
	if n := len(ix.free); n > 0 {
		id = ix.free[n-1]
		ix.free = ix.free[:n-1]
	} else {
		id = uint32(len(ix.slots))
		ix.slots = append(ix.slots, entitySlot{generation: 1})
	}
	slot := &ix.slots[id]
	slot.alive = true
	ix.live++
	return Entity{ID: id, Generation: slot.generation}
}

func (ix *entityIndex) lookup(e Entity) (*entitySlot, bool) {
	if int(e.ID) >= len(ix.slots) {
		return nil, false
	}
	slot := &ix.slots[e.ID]
	if !slot.alive || slot.generation != e.Generation {
		return nil, false
	}
	return slot, true
}

func (ix *entityIndex) place(e Entity, arch ArchetypeID, row int) {
	slot := &ix.slots[e.ID]
	slot.archetype = arch
	slot.row = row
}

// release invalidates every outstanding handle to e and queues its id for reuse.
func (ix *entityIndex) release(e Entity) {
	slot := &ix.slots[e.ID]
	slot.alive = false
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	ix.free = append(ix.free, e.ID)
	ix.live--
}

func (ix *entityIndex) entities() []Entity {
	out := make([]Entity, 0, ix.live)
	for id, slot := range ix.slots {
		if slot.alive {
			out = append(out, Entity{ID: uint32(id), Generation: slot.generation})
		}
	}
	return out
}
