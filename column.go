package stockroom

// column is type-erased storage for one component type inside one archetype.
// Rows are aligned with the owning archetype's entity list.
type column interface {
	componentID() ComponentID
	len() int
	makeEmpty() column
	appendDefault()
	removeRow(i int) error
	copyRow(dst column, i int) error
	moveRow(dst column, i int) error
}

var _ column = &typedColumn[struct{}]{}

type typedColumn[T any] struct {
	id   ComponentID
	data []T
}

func newTypedColumn[T any](id ComponentID) *typedColumn[T] {
	return &typedColumn[T]{id: id}
}

func (c *typedColumn[T]) componentID() ComponentID {
	return c.id
}

func (c *typedColumn[T]) len() int {
	return len(c.data)
}

func (c *typedColumn[T]) makeEmpty() column {
	return newTypedColumn[T](c.id)
}

func (c *typedColumn[T]) appendDefault() {
	var zero T
	c.data = append(c.data, zero)
}

// removeRow swaps row i with the last row and shrinks the column by one.
func (c *typedColumn[T]) removeRow(i int) error {
	last := len(c.data) - 1
	if i < 0 || i > last {
		return RowIndexError{Component: c.id, Index: i, Len: len(c.data)}
	}
	c.data[i] = c.data[last]
	var zero T
	c.data[last] = zero
	c.data = c.data[:last]
	return nil
}

func (c *typedColumn[T]) copyRow(dst column, i int) error {
	target, err := c.target(dst, i)
	if err != nil {
		return err
	}
	target.data[len(target.data)-1] = c.data[i]
	return nil
}

// moveRow behaves like copyRow but also zeroes the source slot, so the value is
// only reachable from dst.
func (c *typedColumn[T]) moveRow(dst column, i int) error {
	target, err := c.target(dst, i)
	if err != nil {
		return err
	}
	target.data[len(target.data)-1] = c.data[i]
	var zero T
	c.data[i] = zero
	return nil
}

func (c *typedColumn[T]) target(dst column, i int) (*typedColumn[T], error) {
	target, ok := dst.(*typedColumn[T])
	if !ok {
		return nil, ColumnMismatchError{Source: c.id, Destination: dst.componentID()}
	}
	if i < 0 || i >= len(c.data) {
		return nil, RowIndexError{Component: c.id, Index: i, Len: len(c.data)}
	}
	if len(target.data) == 0 {
		return nil, RowIndexError{Component: target.id, Index: 0, Len: 0}
	}
	return target, nil
}

func (c *typedColumn[T]) at(i int) *T {
	return &c.data[i]
}

func (c *typedColumn[T]) set(i int, v T) {
	c.data[i] = v
}
