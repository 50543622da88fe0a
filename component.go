package stockroom

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/TheBitDrifter/mask"
)

// MaxComponentTypes is the number of distinct component types a process can register.
// It follows the width of mask.Mask, which is chosen by the m256/m512/m1024 build tags.
const MaxComponentTypes = mask.MaxBits

// ComponentID identifies a component type. Ids are assigned once per Go type, in
// registration order, and are never reclaimed.
type ComponentID uint32

// Component represents a data attribute/state that can be attached to entities
// Components can be used to create queries for entities
type Component interface {
	ID() ComponentID
	Name() string
	newColumn() column
}

var componentTypes = &typeRegistry{byType: make(map[reflect.Type]ComponentID)}

type typeRegistry struct {
	mu     sync.RWMutex
	next   atomic.Uint32
	byType map[reflect.Type]ComponentID
	byID   []Component
}

type componentType[T any] struct {
	id   ComponentID
	name string
}

func (c componentType[T]) ID() ComponentID {
	return c.id
}

func (c componentType[T]) Name() string {
	return c.name
}

func (c componentType[T]) newColumn() column {
	return newTypedColumn[T](c.id)
}

func (c componentType[T]) String() string {
	return fmt.Sprintf("%s(%d)", c.name, c.id)
}

func registerComponent[T any]() Component {
	typ := reflect.TypeFor[T]()
	return componentTypes.register(typ, func(id ComponentID) Component {
		return componentType[T]{id: id, name: typ.String()}
	})
}

// register returns the component for typ, creating it on first use. The fast
// path only takes the read lock; ids come from an atomic counter so concurrent
// first-use from worker goroutines stays monotonic.
func (tr *typeRegistry) register(typ reflect.Type, build func(ComponentID) Component) Component {
	tr.mu.RLock()
	if id, ok := tr.byType[typ]; ok {
		c := tr.byID[id]
		tr.mu.RUnlock()
		return c
	}
	tr.mu.RUnlock()

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if id, ok := tr.byType[typ]; ok {
		return tr.byID[id]
	}
	id := tr.next.Add(1) - 1
	if id >= MaxComponentTypes {
		panic(fmt.Sprintf("cannot register component %s: maximum number of component types (%d) reached", typ, MaxComponentTypes))
	}
	c := build(ComponentID(id))
	tr.byType[typ] = ComponentID(id)
	tr.byID = append(tr.byID, c)
	return c
}

func (tr *typeRegistry) lookup(id ComponentID) (Component, bool) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	if int(id) >= len(tr.byID) {
		return nil, false
	}
	return tr.byID[id], true
}

// ComponentByID returns the registered component for id.
func ComponentByID(id ComponentID) (Component, bool) {
	return componentTypes.lookup(id)
}

func maskOf(components ...Component) mask.Mask {
	var m mask.Mask
	for _, c := range components {
		m.Mark(uint32(c.ID()))
	}
	return m
}

func idsOf(components ...Component) []ComponentID {
	ids := make([]ComponentID, len(components))
	for i, c := range components {
		ids[i] = c.ID()
	}
	return ids
}

// uniqueComponents drops repeated tokens, keeping the first occurrence.
func uniqueComponents(components ...Component) []Component {
	var seen mask.Mask
	out := make([]Component, 0, len(components))
	for _, c := range components {
		if seen.Contains(uint32(c.ID())) {
			continue
		}
		seen.Mark(uint32(c.ID()))
		out = append(out, c)
	}
	return out
}
