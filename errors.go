package stockroom

import "fmt"

type LockedRegistryError struct{}

func (e LockedRegistryError) Error() string {
	return "registry is currently locked"
}

type UnknownEntityError struct {
	Entity Entity
}

func (e UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity: %v", e.Entity)
}

type ComponentExistsError struct {
	Component Component
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %s", e.Component.Name())
}

type ComponentNotFoundError struct {
	Component Component
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %s", e.Component.Name())
}

type RowIndexError struct {
	Component ComponentID
	Index     int
	Len       int
}

func (e RowIndexError) Error() string {
	return fmt.Sprintf("row index out of range: component %d, index %d, length %d", e.Component, e.Index, e.Len)
}

type ColumnMismatchError struct {
	Source, Destination ComponentID
}

func (e ColumnMismatchError) Error() string {
	return fmt.Sprintf("column mismatch: cannot transfer component %d into column of component %d", e.Source, e.Destination)
}

type DuplicateSystemError struct {
	Name string
}

func (e DuplicateSystemError) Error() string {
	return fmt.Sprintf("system %q is already registered", e.Name)
}

type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}
