package stockroom

import "github.com/TheBitDrifter/mask"

// archetypes owns every archetype of a registry, addressed by ArchetypeID.
// Archetypes are never freed while the registry lives.
type archetypes struct {
	asSlice          []*archetype
	idsGroupedByMask map[mask.Mask]ArchetypeID
}

func newArchetypes() *archetypes {
	as := &archetypes{
		idsGroupedByMask: make(map[mask.Mask]ArchetypeID),
	}
	as.register(newArchetype(0, nil))
	return as
}

func (as *archetypes) register(a *archetype) {
	as.asSlice = append(as.asSlice, a)
	as.idsGroupedByMask[a.mask] = a.id
}

func (as *archetypes) nextID() ArchetypeID {
	return ArchetypeID(len(as.asSlice))
}

func (as *archetypes) get(id ArchetypeID) *archetype {
	return as.asSlice[id]
}

func (as *archetypes) empty() *archetype {
	return as.asSlice[0]
}

func (as *archetypes) len() int {
	return len(as.asSlice)
}

// withAdded resolves the archetype holding src's components plus c. Created
// reports whether a new archetype had to be built.
func (as *archetypes) withAdded(src *archetype, c Component) (dst *archetype, created bool) {
	if id, ok := src.edge(c.ID()); ok {
		return as.get(id), false
	}
	destMask := src.mask
	destMask.Mark(uint32(c.ID()))
	if id, found := as.idsGroupedByMask[destMask]; found {
		dst = as.get(id)
		src.link(dst, c.ID())
		return dst, false
	}
	dst = src.withAddedComponent(as.nextID(), c)
	as.register(dst)
	return dst, true
}

func (as *archetypes) withRemoved(src *archetype, c Component) (dst *archetype, created bool) {
	if id, ok := src.edge(c.ID()); ok {
		return as.get(id), false
	}
	destMask := src.mask
	destMask.Unmark(uint32(c.ID()))
	if id, found := as.idsGroupedByMask[destMask]; found {
		dst = as.get(id)
		src.link(dst, c.ID())
		return dst, false
	}
	dst = src.withRemovedComponent(as.nextID(), c)
	as.register(dst)
	return dst, true
}

// matching returns every archetype carrying all ids, in arena order.
func (as *archetypes) matching(ids ...ComponentID) []*archetype {
	var out []*archetype
	for _, a := range as.asSlice {
		if a.hasAll(ids...) {
			out = append(out, a)
		}
	}
	return out
}
