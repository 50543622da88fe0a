package stockroom

import (
	"slices"

	"github.com/TheBitDrifter/mask"
)

// ArchetypeID is the stable arena index of an archetype. The canonical empty
// archetype is always 0.
type ArchetypeID uint32

const absent = -1

var _ Archetype = &archetype{}

type archetype struct {
	id ArchetypeID

	// signature maps a component id to its column index, or absent.
	signature []int
	mask      mask.Mask
	columns   []column
	entities  []Entity

	// edges toggle one component: add it when the archetype lacks it, remove it
	// otherwise. Values are arena ids, never owning references.
	edges map[ComponentID]ArchetypeID
}

func newArchetype(id ArchetypeID, columns []column) *archetype {
	a := &archetype{
		id:      id,
		columns: columns,
		edges:   make(map[ComponentID]ArchetypeID),
	}
	for i, col := range columns {
		a.addToSignature(i, col.componentID())
	}
	return a
}

func (a *archetype) addToSignature(index int, id ComponentID) {
	for len(a.signature) <= int(id) {
		a.signature = append(a.signature, absent)
	}
	a.signature[id] = index
	a.mask.Mark(uint32(id))
}

func (a *archetype) ID() ArchetypeID {
	return a.id
}

func (a *archetype) Len() int {
	return len(a.entities)
}

func (a *archetype) Entities() []Entity {
	return slices.Clone(a.entities)
}

func (a *archetype) Mask() mask.Mask {
	return a.mask
}

func (a *archetype) Components() []Component {
	comps := make([]Component, 0, len(a.columns))
	for _, col := range a.columns {
		if c, ok := ComponentByID(col.componentID()); ok {
			comps = append(comps, c)
		}
	}
	return comps
}

func (a *archetype) Has(components ...Component) bool {
	return a.hasAll(idsOf(components...)...)
}

func (a *archetype) columnIndex(id ComponentID) int {
	if int(id) >= len(a.signature) {
		return absent
	}
	return a.signature[id]
}

func (a *archetype) column(id ComponentID) column {
	idx := a.columnIndex(id)
	if idx == absent {
		return nil
	}
	return a.columns[idx]
}

func (a *archetype) hasAll(ids ...ComponentID) bool {
	for _, id := range ids {
		if a.columnIndex(id) == absent {
			return false
		}
	}
	return true
}

func (a *archetype) hasAny(ids ...ComponentID) bool {
	for _, id := range ids {
		if a.columnIndex(id) != absent {
			return true
		}
	}
	return false
}

// add appends a default row to every column and the entity to the entity list.
func (a *archetype) add(e Entity) int {
	for _, col := range a.columns {
		col.appendDefault()
	}
	a.entities = append(a.entities, e)
	return len(a.entities) - 1
}

func (a *archetype) search(e Entity) int {
	for i, resident := range a.entities {
		if resident == e {
			return i
		}
	}
	return absent
}

// removeAt swap-removes row from every column and the entity list. When another
// entity was moved into row it is returned with ok set.
func (a *archetype) removeAt(row int) (swapped Entity, ok bool, err error) {
	last := len(a.entities) - 1
	if row < 0 || row > last {
		return Entity{}, false, RowIndexError{Index: row, Len: len(a.entities)}
	}
	for _, col := range a.columns {
		if err := col.removeRow(row); err != nil {
			return Entity{}, false, err
		}
	}
	a.entities[row] = a.entities[last]
	a.entities = a.entities[:last]
	if row == last {
		return Entity{}, false, nil
	}
	return a.entities[row], true, nil
}

func (a *archetype) remove(e Entity) (swapped Entity, ok bool, err error) {
	row := a.search(e)
	if row == absent {
		return Entity{}, false, UnknownEntityError{Entity: e}
	}
	return a.removeAt(row)
}

// transferRow writes row of every column not in exclude into the last row of
// the matching dst column. Columns dst does not carry are dropped.
func (a *archetype) transferRow(dst *archetype, row int, move bool, exclude ...ComponentID) error {
	for _, col := range a.columns {
		id := col.componentID()
		if slices.Contains(exclude, id) {
			continue
		}
		target := dst.column(id)
		if target == nil {
			continue
		}
		var err error
		if move {
			err = col.moveRow(target, row)
		} else {
			err = col.copyRow(target, row)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// moveAt moves row into the already grown last row of dst and removes it here.
func (a *archetype) moveAt(dst *archetype, row int, exclude ...ComponentID) (swapped Entity, ok bool, err error) {
	if err := a.transferRow(dst, row, true, exclude...); err != nil {
		return Entity{}, false, err
	}
	return a.removeAt(row)
}

func (a *archetype) move(dst *archetype, e Entity, exclude ...ComponentID) (swapped Entity, ok bool, err error) {
	row := a.search(e)
	if row == absent {
		return Entity{}, false, UnknownEntityError{Entity: e}
	}
	return a.moveAt(dst, row, exclude...)
}

func (a *archetype) copy(dst *archetype, e Entity, exclude ...ComponentID) error {
	row := a.search(e)
	if row == absent {
		return UnknownEntityError{Entity: e}
	}
	return a.transferRow(dst, row, false, exclude...)
}

func (a *archetype) edge(id ComponentID) (ArchetypeID, bool) {
	next, ok := a.edges[id]
	return next, ok
}

func (a *archetype) link(other *archetype, id ComponentID) {
	a.edges[id] = other.id
	other.edges[id] = a.id
}

// withAddedComponent builds the neighbour holding every column of a plus one
// for c. The neighbour starts empty; callers migrate rows themselves.
func (a *archetype) withAddedComponent(id ArchetypeID, c Component) *archetype {
	cols := make([]column, 0, len(a.columns)+1)
	for _, col := range a.columns {
		cols = append(cols, col.makeEmpty())
	}
	cols = append(cols, c.newColumn())
	next := newArchetype(id, cols)
	a.link(next, c.ID())
	return next
}

func (a *archetype) withRemovedComponent(id ArchetypeID, c Component) *archetype {
	cols := make([]column, 0, len(a.columns))
	for _, col := range a.columns {
		if col.componentID() != c.ID() {
			cols = append(cols, col.makeEmpty())
		}
	}
	next := newArchetype(id, cols)
	a.link(next, c.ID())
	return next
}

func componentAt[T any](a *archetype, id ComponentID, row int) (*T, bool) {
	col, ok := a.column(id).(*typedColumn[T])
	if !ok || row < 0 || row >= col.len() {
		return nil, false
	}
	return col.at(row), true
}

func setAt[T any](a *archetype, id ComponentID, row int, v T) error {
	col, ok := a.column(id).(*typedColumn[T])
	if !ok {
		return ComponentNotFoundError{Component: mustComponent(id)}
	}
	if row < 0 || row >= col.len() {
		return RowIndexError{Component: id, Index: row, Len: col.len()}
	}
	col.set(row, v)
	return nil
}

// set locates e by scanning and overwrites its T value.
func set[T any](a *archetype, id ComponentID, e Entity, v T) error {
	row := a.search(e)
	if row == absent {
		return UnknownEntityError{Entity: e}
	}
	return setAt(a, id, row, v)
}

func mustComponent(id ComponentID) Component {
	c, ok := ComponentByID(id)
	if !ok {
		panic("unregistered component id")
	}
	return c
}
