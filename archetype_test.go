package stockroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArchetypeDeduplication checks that a component set maps to one archetype
// whatever path led to it.
func TestArchetypeDeduplication(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()

	tests := []struct {
		name                string
		firstComponents     []Component
		secondComponents    []Component
		expectSameArchetype bool
	}{
		{"Identical components", []Component{posComp, velComp}, []Component{posComp, velComp}, true},
		{"Different order", []Component{posComp, velComp}, []Component{velComp, posComp}, true},
		{"Three in reverse", []Component{posComp, velComp, healthComp}, []Component{healthComp, velComp, posComp}, true},
		{"Different components", []Component{posComp}, []Component{velComp}, false},
		{"Subset components", []Component{posComp, velComp}, []Component{posComp}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as := newArchetypes()
			walk := func(comps []Component) *archetype {
				arch := as.empty()
				for _, c := range comps {
					arch, _ = as.withAdded(arch, c)
				}
				return arch
			}

			first := walk(tt.firstComponents)
			second := walk(tt.secondComponents)
			assert.Equal(t, tt.expectSameArchetype, first.ID() == second.ID())

			seen := make(map[ArchetypeID]bool)
			for _, a := range as.asSlice {
				assert.False(t, seen[a.id])
				seen[a.id] = true
				assert.Equal(t, a.id, as.idsGroupedByMask[a.mask])
			}
		})
	}
}

func TestArchetypeEdges(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	as := newArchetypes()
	empty := as.empty()
	require.Equal(t, ArchetypeID(0), empty.ID())

	withPos, created := as.withAdded(empty, posComp)
	require.True(t, created)

	next, ok := empty.edge(posComp.ID())
	require.True(t, ok)
	assert.Equal(t, withPos.ID(), next)
	back, ok := withPos.edge(posComp.ID())
	require.True(t, ok)
	assert.Equal(t, empty.ID(), back)

	again, created := as.withAdded(empty, posComp)
	assert.False(t, created)
	assert.Same(t, withPos, again)

	removed, created := as.withRemoved(withPos, posComp)
	assert.False(t, created)
	assert.Same(t, empty, removed)

	// Reaching {pos, vel} from vel discovers the existing archetype and caches
	// the edge on both sides.
	both, _ := as.withAdded(withPos, velComp)
	withVel, _ := as.withAdded(empty, velComp)
	found, created := as.withAdded(withVel, posComp)
	assert.False(t, created)
	assert.Same(t, both, found)
	back, ok = both.edge(posComp.ID())
	require.True(t, ok)
	assert.Equal(t, withVel.ID(), back)

	// Removing from {pos, vel} towards {pos} uses the cached edge.
	onlyPos, created := as.withRemoved(both, velComp)
	assert.False(t, created)
	assert.Same(t, withPos, onlyPos)
	assert.Equal(t, 4, as.len())
}

func TestArchetypeRowOperations(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	as := newArchetypes()
	withPos, _ := as.withAdded(as.empty(), posComp)
	both, _ := as.withAdded(withPos, velComp)

	entities := []Entity{{ID: 0, Generation: 1}, {ID: 1, Generation: 1}, {ID: 2, Generation: 1}}
	for i, e := range entities {
		row := both.add(e)
		require.NoError(t, setAt(both, posComp.ID(), row, Position{X: float64(i)}))
		require.NoError(t, set(both, velComp.ID(), e, Velocity{Y: float64(i)}))
	}
	assert.True(t, both.Has(posComp, velComp))
	assert.False(t, withPos.Has(velComp))
	assert.ElementsMatch(t, []ComponentID{posComp.ID(), velComp.ID()}, idsOf(both.Components()...))

	t.Run("Move drops absent columns", func(t *testing.T) {
		withPos.add(entities[0])
		swapped, ok, err := both.move(withPos, entities[0])
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, entities[2], swapped)
		assert.Equal(t, []Entity{entities[2], entities[1]}, both.Entities())

		pos, found := componentAt[Position](withPos, posComp.ID(), 0)
		require.True(t, found)
		assert.Equal(t, Position{X: 0}, *pos)

		vel, found := componentAt[Velocity](both, velComp.ID(), 0)
		require.True(t, found)
		assert.Equal(t, Velocity{Y: 2}, *vel)
	})

	t.Run("Copy keeps source row", func(t *testing.T) {
		target := withPos.Len()
		withPos.add(entities[1])
		require.NoError(t, both.copy(withPos, entities[1]))
		pos, _ := componentAt[Position](withPos, posComp.ID(), target)
		assert.Equal(t, Position{X: 1}, *pos)
		assert.Equal(t, 2, both.Len())
	})

	t.Run("Set by entity", func(t *testing.T) {
		require.NoError(t, set(both, velComp.ID(), entities[1], Velocity{Y: 7}))
		vel, _ := componentAt[Velocity](both, velComp.ID(), both.search(entities[1]))
		assert.Equal(t, Velocity{Y: 7}, *vel)

		err := set(both, velComp.ID(), Entity{ID: 99, Generation: 1}, Velocity{})
		assert.ErrorAs(t, err, &UnknownEntityError{})
		assert.ErrorAs(t, set(withPos, velComp.ID(), entities[0], Velocity{}), &ComponentNotFoundError{})
	})

	t.Run("Remove unknown entity", func(t *testing.T) {
		_, _, err := both.remove(Entity{ID: 99, Generation: 1})
		assert.ErrorAs(t, err, &UnknownEntityError{})
	})

	t.Run("Remove last row reports no swap", func(t *testing.T) {
		_, ok, err := both.remove(entities[1])
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []Entity{entities[2]}, both.Entities())
		for _, col := range both.columns {
			assert.Equal(t, both.Len(), col.len())
		}
	})
}
