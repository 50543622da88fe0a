package stockroom

import (
	"iter"
)

var _ iCursor = &Cursor{}

// Cursor steps through every entity of the archetypes matching a query.
// The registry stays locked from the first Next until the cursor is exhausted
// or Reset.
type Cursor struct {
	query    QueryNode
	registry *registry

	currentArchetype *archetype
	storageIndex     int
	entityIndex      int
	remaining        int

	initialized       bool
	matchedArchetypes []*archetype
}

func newCursor(query QueryNode, r Registry) *Cursor {
	return &Cursor{
		query:    query,
		registry: r.(*registry),
	}
}

func (c *Cursor) Next() bool {
	if c.initialized && c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.storageIndex < len(c.matchedArchetypes) {
		c.currentArchetype = c.matchedArchetypes[c.storageIndex]
		c.remaining = c.currentArchetype.Len()

		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.storageIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// Entities yields the position and handle of each matching entity. Breaking
// out of the loop resets the cursor.
func (c *Cursor) Entities() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		i := 0
		for c.Next() {
			if !yield(i, c.CurrentEntity()) {
				c.Reset()
				return
			}
			i++
		}
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.matchedArchetypes = c.matching()
	c.registry.Lock()
	c.initialized = true
}

func (c *Cursor) matching() []*archetype {
	matched := make([]*archetype, 0)
	for _, arch := range c.registry.archetypes.asSlice {
		if c.query.Evaluate(arch) {
			matched = append(matched, arch)
		}
	}
	return matched
}

// Reset rewinds the cursor and releases its registry lock.
func (c *Cursor) Reset() {
	if c.initialized {
		c.registry.Unlock()
	}
	c.storageIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.currentArchetype = nil
	c.matchedArchetypes = nil
	c.initialized = false
}

// CurrentEntity returns the entity the cursor points at, or the zero Entity
// before the first Next.
func (c *Cursor) CurrentEntity() Entity {
	if c.currentArchetype == nil || c.entityIndex == 0 {
		return Entity{}
	}
	return c.currentArchetype.entities[c.entityIndex-1]
}

func (c *Cursor) CurrentArchetype() Archetype {
	if c.currentArchetype == nil {
		return nil
	}
	return c.currentArchetype
}

func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

// TotalMatched counts the matching entities without starting iteration.
func (c *Cursor) TotalMatched() int {
	archetypes := c.matchedArchetypes
	if !c.initialized {
		archetypes = c.matching()
	}
	total := 0
	for _, arch := range archetypes {
		total += arch.Len()
	}
	return total
}
