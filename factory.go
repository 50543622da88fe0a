package stockroom

type factory struct{}

// Factory is the entry point for registries, queries, cursors and views.
var Factory factory

func (f factory) NewRegistry(opts ...Option) Registry {
	return newRegistry(opts...)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(query QueryNode, r Registry) *Cursor {
	return newCursor(query, r)
}

func (f factory) NewView(query QueryNode, r Registry) *View {
	return newView(query, r)
}

// FactoryNewComponent returns the token for T, registering T on first use.
// Every call for the same T yields the same ComponentID.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{
		Component: registerComponent[T](),
	}
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
