package stockroom

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// Registry owns entities, archetypes and everything observing them.
// It is not safe for concurrent structural mutation.
type Registry interface {
	Create() (Entity, error)
	NewEntities(n int, comps ...Component) ([]Entity, error)
	Destroy(Entity) error
	Valid(Entity) bool

	Has(Entity, ...Component) bool
	Any(Entity, ...Component) bool
	Remove(Entity, ...Component) error
	Clear(...Component) error
	Components(Entity) []Component

	Entities() []Entity
	Orphans() []Entity
	Len() int
	ArchetypeOf(Entity) (Archetype, error)
	Archetypes() []Archetype

	View(...Component) *View
	OnConstruct(Component) *Observer
	OnDestroy(Component) *Observer
	OnUpdate(Component) *Observer
	CreateCommandBuffer() *CommandBuffer

	AddSystem(name string, system System) error
	Systems() []string
	Update() error

	Locked() bool
	Lock()
	Unlock()
}

// Archetype is the read-only face of a group of entities sharing one component set.
type Archetype interface {
	ID() ArchetypeID
	Len() int
	Entities() []Entity
	Mask() mask.Mask
	Components() []Component
	Has(...Component) bool
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(archetype Archetype) bool
}

type iCursor interface {
	Entities() iter.Seq2[int, Entity]
	Next() bool
}

// System is one named unit of per-tick work driven by Registry.Update.
type System interface {
	Update(Registry) error
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(Registry) error

func (f SystemFunc) Update(r Registry) error {
	return f(r)
}

// Command is a recorded mutation replayed by a CommandBuffer. Entity is
// checked for validity before Execute is called.
type Command interface {
	Entity() Entity
	Execute(Registry) error
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
	Clear()
}

// AccessibleComponent is the typed token for component T. It satisfies
// Component and carries the typed accessors.
type AccessibleComponent[T any] struct {
	Component
}
