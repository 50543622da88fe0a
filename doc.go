/*
Package stockroom provides archetype-based storage for entities and their components.

Entities that carry exactly the same set of component types live together in one
archetype, whose components are stored column by column. Adding or removing a
component migrates the entity to the neighbouring archetype; neighbours are found
through cached edges and deduplicated by their component mask, so every component
set exists at most once.

Core Concepts:

  - Entity: A recyclable id paired with a generation that detects stale handles.
  - Component: Any Go type registered through FactoryNewComponent.
  - Archetype: The entities sharing one component set, plus one column per type.
  - Observer: Callbacks fired on construct, update and destroy of a component.
  - CommandBuffer: Mutations recorded now and replayed later.
  - View and Cursor: Iteration over every archetype matching a query.

Basic Usage:

	registry := stockroom.Factory.NewRegistry()

	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()

	e, _ := registry.Create()
	position.Emplace(registry, e, Position{})
	velocity.Emplace(registry, e, Velocity{X: 1})

	stockroom.Each2(registry, position, velocity, func(pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

Structural changes (Create, Destroy, Emplace, Remove, Clear) are refused with
LockedRegistryError while a cursor, view or for-each is iterating; record them in a
CommandBuffer and Execute it afterwards.

A Registry is not safe for concurrent use. The job sub-package offers a worker pool
for running systems off the calling goroutine.
*/
package stockroom
