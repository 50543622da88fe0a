package stockroom_test

import (
	"fmt"

	"github.com/TheBitDrifter/stockroom"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// Example shows basic stockroom usage with entity creation and queries
func Example_basic() {
	registry := stockroom.Factory.NewRegistry()

	// Define components
	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()
	name := stockroom.FactoryNewComponent[Name]()

	// Create entities
	registry.NewEntities(5, position)
	registry.NewEntities(3, position, velocity)

	// Create one named entity
	player, _ := registry.Create()
	position.Emplace(registry, player, Position{X: 10, Y: 20})
	velocity.Emplace(registry, player, Velocity{X: 1, Y: 2})
	name.Emplace(registry, player, Name{Value: "Player"})

	// Query for all entities with position and velocity
	query := stockroom.Factory.NewQuery()
	queryNode := query.And(position, velocity)
	cursor := stockroom.Factory.NewCursor(queryNode, registry)

	matchCount := 0
	for cursor.Next() {
		matchCount++
	}
	fmt.Printf("Found %d entities with position and velocity\n", matchCount)

	// Query for just the named entity
	query = stockroom.Factory.NewQuery()
	queryNode = query.And(name)
	cursor = stockroom.Factory.NewCursor(queryNode, registry)

	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		nme := name.GetFromCursor(cursor)

		pos.X += vel.X
		pos.Y += vel.Y

		fmt.Printf("Updated %s to position (%.1f, %.1f)\n", nme.Value, pos.X, pos.Y)
	}

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player to position (11.0, 22.0)
}

// Example_queries shows how to use different query operations
func Example_queries() {
	registry := stockroom.Factory.NewRegistry()

	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()
	name := stockroom.FactoryNewComponent[Name]()

	registry.NewEntities(3, position)
	registry.NewEntities(3, position, velocity)
	registry.NewEntities(3, position, name)
	registry.NewEntities(3, position, velocity, name)

	// AND query: entities with position AND velocity
	query := stockroom.Factory.NewQuery()
	andQuery := query.And(position, velocity)

	cursor := stockroom.Factory.NewCursor(andQuery, registry)
	fmt.Printf("AND query matched %d entities\n", cursor.TotalMatched())

	// OR query: entities with velocity OR name
	orQuery := query.Or(velocity, name)

	cursor = stockroom.Factory.NewCursor(orQuery, registry)
	fmt.Printf("OR query matched %d entities\n", cursor.TotalMatched())

	// NOT query: entities without velocity
	notQuery := query.Not(velocity)

	cursor = stockroom.Factory.NewCursor(notQuery, registry)
	fmt.Printf("NOT query matched %d entities\n", cursor.TotalMatched())

	// Output:
	// AND query matched 6 entities
	// OR query matched 9 entities
	// NOT query matched 6 entities
}

// Example_observers shows lifecycle callbacks
func Example_observers() {
	registry := stockroom.Factory.NewRegistry()
	name := stockroom.FactoryNewComponent[Name]()

	registry.OnConstruct(name).Connect(func(r stockroom.Registry, e stockroom.Entity) {
		n, _ := name.Get(r, e)
		fmt.Printf("hello %s\n", n.Value)
	})
	registry.OnDestroy(name).Connect(func(r stockroom.Registry, e stockroom.Entity) {
		n, _ := name.Get(r, e)
		fmt.Printf("goodbye %s\n", n.Value)
	})

	e, _ := registry.Create()
	name.Emplace(registry, e, Name{Value: "crate"})
	registry.Destroy(e)

	// Output:
	// hello crate
	// goodbye crate
}

// Example_commandBuffer shows deferring destruction until iteration is over
func Example_commandBuffer() {
	registry := stockroom.Factory.NewRegistry()
	position := stockroom.FactoryNewComponent[Position]()
	registry.NewEntities(4, position)

	buffer := registry.CreateCommandBuffer()
	view := registry.View(position)
	for e := range view.All() {
		buffer.AddCommand(stockroom.DestroyCommand(e))
	}
	fmt.Printf("queued %d, alive %d\n", buffer.Len(), registry.Len())

	if err := buffer.Execute(); err != nil {
		fmt.Println(err)
	}
	fmt.Printf("alive %d, in view %d\n", registry.Len(), registry.View(position).Len())

	// Output:
	// queued 4, alive 4
	// alive 0, in view 0
}
