package stockroom

import "iter"

// View is the logical concatenation of the entity lists of every archetype
// matching a query. The matching set is fixed when the view is built;
// archetypes created later are not visible through it.
type View struct {
	registry   *registry
	archetypes []ArchetypeID
}

func newView(query QueryNode, r Registry) *View {
	reg := r.(*registry)
	v := &View{registry: reg}
	for _, arch := range reg.archetypes.asSlice {
		if query.Evaluate(arch) {
			v.archetypes = append(v.archetypes, arch.id)
		}
	}
	return v
}

// View returns a view over the entities carrying every one of comps.
func (r *registry) View(comps ...Component) *View {
	return newView(newLeafNode(comps), r)
}

func (v *View) archetype(i int) *archetype {
	return v.registry.archetypes.get(v.archetypes[i])
}

func (v *View) Len() int {
	total := 0
	for i := range v.archetypes {
		total += v.archetype(i).Len()
	}
	return total
}

// At returns the i-th entity of the view. It walks the archetype list, so it
// costs O(#archetypes).
func (v *View) At(i int) (Entity, bool) {
	if i < 0 {
		return Entity{}, false
	}
	for k := range v.archetypes {
		arch := v.archetype(k)
		if i < arch.Len() {
			return arch.entities[i], true
		}
		i -= arch.Len()
	}
	return Entity{}, false
}

func (v *View) Contains(e Entity) bool {
	slot, ok := v.registry.entities.lookup(e)
	if !ok {
		return false
	}
	for _, id := range v.archetypes {
		if id == slot.archetype {
			return true
		}
	}
	return false
}

func (v *View) Begin() ViewIterator {
	it := ViewIterator{view: v}
	it.settle()
	return it
}

func (v *View) End() ViewIterator {
	return ViewIterator{view: v, archetype: len(v.archetypes)}
}

// All ranges over the view with the registry locked.
func (v *View) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		v.registry.Lock()
		defer v.registry.Unlock()
		for it := v.Begin(); !it.Done(); it.Next() {
			if !yield(it.Entity()) {
				return
			}
		}
	}
}

// Entities snapshots the view into a slice.
func (v *View) Entities() []Entity {
	out := make([]Entity, 0, v.Len())
	for k := range v.archetypes {
		out = append(out, v.archetype(k).entities...)
	}
	return out
}

// ViewIterator is a position within a View. Positions are kept canonical: an
// iterator never rests on an exhausted archetype unless it is at the end.
type ViewIterator struct {
	view      *View
	archetype int
	row       int
}

func (it *ViewIterator) settle() {
	for it.archetype < len(it.view.archetypes) && it.row >= it.view.archetype(it.archetype).Len() {
		it.archetype++
		it.row = 0
	}
}

func (it ViewIterator) Done() bool {
	return it.archetype >= len(it.view.archetypes)
}

// Entity returns the entity under the iterator, or the zero Entity at the end.
func (it ViewIterator) Entity() Entity {
	if it.Done() {
		return Entity{}
	}
	return it.view.archetype(it.archetype).entities[it.row]
}

func (it *ViewIterator) Next() bool {
	if it.Done() {
		return false
	}
	it.row++
	it.settle()
	return !it.Done()
}

func (it *ViewIterator) Prev() bool {
	if !it.Done() && it.row > 0 {
		it.row--
		return true
	}
	for k := min(it.archetype, len(it.view.archetypes)) - 1; k >= 0; k-- {
		if n := it.view.archetype(k).Len(); n > 0 {
			it.archetype, it.row = k, n-1
			return true
		}
	}
	return false
}

// Advance moves the iterator n positions, backwards when n is negative. It
// stops at either end of the view.
func (it *ViewIterator) Advance(n int) {
	for ; n < 0; n++ {
		if !it.Prev() {
			return
		}
	}
	for n > 0 && !it.Done() {
		left := it.view.archetype(it.archetype).Len() - it.row
		if n < left {
			it.row += n
			return
		}
		n -= left
		it.archetype++
		it.row = 0
		it.settle()
	}
}

// Index is the iterator's position within the view.
func (it ViewIterator) Index() int {
	idx := it.row
	for k := 0; k < it.archetype && k < len(it.view.archetypes); k++ {
		idx += it.view.archetype(k).Len()
	}
	return idx
}

func (it ViewIterator) Equal(other ViewIterator) bool {
	return it.view == other.view && it.archetype == other.archetype && it.row == other.row
}
