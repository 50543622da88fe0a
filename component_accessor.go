package stockroom

// Emplace attaches v to e, migrating e to the archetype that additionally
// carries T. The returned pointer stays valid until the next structural change
// to that archetype. When a construct observer destroys e or strips T again,
// the emplace still counts and the pointer is nil.
func (c AccessibleComponent[T]) Emplace(r Registry, e Entity, v T) (*T, error) {
	reg := r.(*registry)
	if reg.Locked() {
		return nil, LockedRegistryError{}
	}
	src, row, err := reg.locate(e)
	if err != nil {
		return nil, err
	}
	if src.hasAll(c.ID()) {
		return nil, ComponentExistsError{Component: c.Component}
	}
	dst := reg.neighbourWith(src, c.Component)
	dstRow, err := reg.relocate(e, src, row, dst)
	if err != nil {
		return nil, err
	}
	if err := setAt(dst, c.ID(), dstRow, v); err != nil {
		return nil, err
	}
	reg.metrics.recordMigration(migrationEmplace)
	reg.logger.Trace().
		Uint32("entity_id", e.ID).
		Int("from_archetype", int(src.id)).
		Int("to_archetype", int(dst.id)).
		Str("component", c.Name()).
		Msg("component emplaced")

	reg.constructed.notify(c.ID(), reg, e)
	ptr, _ := c.TryGet(reg, e)
	return ptr, nil
}

// Remove detaches T from e. It is a no-op when e does not carry T.
func (c AccessibleComponent[T]) Remove(r Registry, e Entity) error {
	return r.Remove(e, c.Component)
}

// Replace overwrites the T value of e in place and fires the update observers.
func (c AccessibleComponent[T]) Replace(r Registry, e Entity, v T) error {
	ptr, err := c.Get(r, e)
	if err != nil {
		return err
	}
	*ptr = v
	r.(*registry).updated.notify(c.ID(), r, e)
	return nil
}

// Patch hands fn the T value of e for in-place modification, then fires the
// update observers.
func (c AccessibleComponent[T]) Patch(r Registry, e Entity, fn func(*T)) error {
	ptr, err := c.Get(r, e)
	if err != nil {
		return err
	}
	fn(ptr)
	r.(*registry).updated.notify(c.ID(), r, e)
	return nil
}

func (c AccessibleComponent[T]) Get(r Registry, e Entity) (*T, error) {
	reg := r.(*registry)
	arch, row, err := reg.locate(e)
	if err != nil {
		return nil, err
	}
	ptr, ok := componentAt[T](arch, c.ID(), row)
	if !ok {
		return nil, ComponentNotFoundError{Component: c.Component}
	}
	return ptr, nil
}

// TryGet is Get without the error: a missing entity or component yields (nil, false).
func (c AccessibleComponent[T]) TryGet(r Registry, e Entity) (*T, bool) {
	ptr, err := c.Get(r, e)
	return ptr, err == nil
}

// GetFromCursor retrieves a component value for the entity at the cursor position
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	ptr, _ := componentAt[T](cursor.currentArchetype, c.ID(), cursor.entityIndex-1)
	return ptr
}

// GetFromCursorSafe safely retrieves a component value, checking if the component exists
// Returns a boolean indicating success and the component pointer if found
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if !c.CheckCursor(cursor) {
		return false, nil
	}
	return true, c.GetFromCursor(cursor)
}

// CheckCursor determines if the component exists in the archetype at the cursor position
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	return cursor.currentArchetype != nil && cursor.currentArchetype.hasAll(c.ID())
}

// GetFromView finds e among the archetypes of v by scanning their entity lists.
func (c AccessibleComponent[T]) GetFromView(v *View, e Entity) (*T, bool) {
	for _, id := range v.archetypes {
		arch := v.registry.archetypes.get(id)
		row := arch.search(e)
		if row == absent {
			continue
		}
		return componentAt[T](arch, c.ID(), row)
	}
	return nil, false
}

// Get2 fetches two components of e; it fails if either is missing.
func Get2[A, B any](r Registry, e Entity, a AccessibleComponent[A], b AccessibleComponent[B]) (*A, *B, error) {
	pa, err := a.Get(r, e)
	if err != nil {
		return nil, nil, err
	}
	pb, err := b.Get(r, e)
	if err != nil {
		return nil, nil, err
	}
	return pa, pb, nil
}

func Get3[A, B, C any](r Registry, e Entity, a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C]) (*A, *B, *C, error) {
	pa, pb, err := Get2(r, e, a, b)
	if err != nil {
		return nil, nil, nil, err
	}
	pc, err := c.Get(r, e)
	if err != nil {
		return nil, nil, nil, err
	}
	return pa, pb, pc, nil
}

// TryGet2 returns a nil pointer for each component e does not carry.
func TryGet2[A, B any](r Registry, e Entity, a AccessibleComponent[A], b AccessibleComponent[B]) (*A, *B) {
	pa, _ := a.TryGet(r, e)
	pb, _ := b.TryGet(r, e)
	return pa, pb
}

// Patch2 requires e to carry both components before fn runs.
func Patch2[A, B any](r Registry, e Entity, a AccessibleComponent[A], b AccessibleComponent[B], fn func(*A, *B)) error {
	pa, pb, err := Get2(r, e, a, b)
	if err != nil {
		return err
	}
	fn(pa, pb)
	reg := r.(*registry)
	reg.updated.notify(a.ID(), r, e)
	reg.updated.notify(b.ID(), r, e)
	return nil
}

func Patch3[A, B, C any](r Registry, e Entity, a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C], fn func(*A, *B, *C)) error {
	pa, pb, pc, err := Get3(r, e, a, b, c)
	if err != nil {
		return err
	}
	fn(pa, pb, pc)
	reg := r.(*registry)
	reg.updated.notify(a.ID(), r, e)
	reg.updated.notify(b.ID(), r, e)
	reg.updated.notify(c.ID(), r, e)
	return nil
}
