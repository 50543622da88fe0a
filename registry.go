package stockroom

import (
	"slices"

	"github.com/TheBitDrifter/mask"
	"github.com/rs/zerolog"
)

var _ Registry = &registry{}

type registry struct {
	logger  zerolog.Logger
	metrics *Metrics

	archetypes *archetypes
	entities   entityIndex

	constructed observerSet
	destroyed   observerSet
	updated     observerSet

	systems     Cache[System]
	systemNames []string

	// locks counts active iterations; structural mutation is refused while
	// it is non-zero.
	locks int
}

func newRegistry(opts ...Option) *registry {
	s := Config.settings()
	for _, opt := range opts {
		opt(&s)
	}
	r := &registry{
		logger:      s.logger,
		metrics:     s.metrics,
		archetypes:  newArchetypes(),
		entities:    newEntityIndex(s.entityCapacity),
		constructed: make(observerSet),
		destroyed:   make(observerSet),
		updated:     make(observerSet),
		systems:     FactoryNewCache[System](s.systemCapacity),
	}
	r.metrics.recordArchetypeCreated()
	return r
}

func (r *registry) Create() (Entity, error) {
	if r.Locked() {
		return Entity{}, LockedRegistryError{}
	}
	e := r.entities.allocate()
	empty := r.archetypes.empty()
	r.entities.place(e, empty.id, empty.add(e))
	r.metrics.recordEntityCreated()
	return e, nil
}

// NewEntities creates n entities that start out carrying comps with zero
// values. Repeated tokens count once; construct observers fire once per entity
// and component.
func (r *registry) NewEntities(n int, comps ...Component) ([]Entity, error) {
	if r.Locked() {
		return nil, LockedRegistryError{}
	}
	comps = uniqueComponents(comps...)
	arch := r.archetypes.empty()
	for _, c := range comps {
		arch = r.neighbourWith(arch, c)
	}
	entities := make([]Entity, max(n, 0))
	for i := range entities {
		e := r.entities.allocate()
		r.entities.place(e, arch.id, arch.add(e))
		r.metrics.recordEntityCreated()
		entities[i] = e
	}
	for _, e := range entities {
		for _, c := range comps {
			if r.Valid(e) {
				r.constructed.notify(c.ID(), r, e)
			}
		}
	}
	return entities, nil
}

// Destroy fires the destroy observers of every component e carries, while the
// values are still readable, then releases e. Components attached by those
// observers are notified as well, each exactly once.
func (r *registry) Destroy(e Entity) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	arch, row, err := r.locate(e)
	if err != nil {
		return err
	}
	var notified mask.Mask
	for {
		id, pending := unnotified(arch, notified)
		if !pending {
			break
		}
		notified.Mark(uint32(id))
		r.destroyed.notify(id, r, e)

		// Observers may have moved or destroyed e.
		if arch, row, err = r.locate(e); err != nil {
			return nil
		}
	}
	swapped, ok, err := arch.removeAt(row)
	if err != nil {
		return err
	}
	if ok {
		r.entities.place(swapped, arch.id, row)
	}
	r.entities.release(e)
	r.metrics.recordEntityDestroyed()
	r.logger.Trace().
		Uint32("entity_id", e.ID).
		Int("archetype_id", int(arch.id)).
		Msg("entity destroyed")
	return nil
}

func (r *registry) Valid(e Entity) bool {
	_, ok := r.entities.lookup(e)
	return ok
}

func (r *registry) Has(e Entity, comps ...Component) bool {
	arch, _, err := r.locate(e)
	if err != nil {
		return false
	}
	return arch.hasAll(idsOf(comps...)...)
}

func (r *registry) Any(e Entity, comps ...Component) bool {
	arch, _, err := r.locate(e)
	if err != nil {
		return false
	}
	return arch.hasAny(idsOf(comps...)...)
}

// Remove strips comps from e in order. Components e does not carry are skipped.
func (r *registry) Remove(e Entity, comps ...Component) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	if !r.Valid(e) {
		return UnknownEntityError{Entity: e}
	}
	for _, c := range comps {
		if !r.Valid(e) {
			return nil
		}
		if err := r.remove(e, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *registry) remove(e Entity, c Component) error {
	arch, _, err := r.locate(e)
	if err != nil {
		return err
	}
	if !arch.hasAll(c.ID()) {
		return nil
	}
	r.destroyed.notify(c.ID(), r, e)

	// Observers may have moved, stripped or destroyed e.
	src, row, err := r.locate(e)
	if err != nil || !src.hasAll(c.ID()) {
		return nil
	}
	dst := r.neighbourWithout(src, c)
	if _, err := r.relocate(e, src, row, dst, c.ID()); err != nil {
		return err
	}
	r.metrics.recordMigration(migrationRemove)
	r.logger.Trace().
		Uint32("entity_id", e.ID).
		Int("from_archetype", int(src.id)).
		Int("to_archetype", int(dst.id)).
		Str("component", c.Name()).
		Msg("component removed")
	return nil
}

// Clear removes each of comps from every entity. With no arguments it destroys
// every entity that carries at least one component.
func (r *registry) Clear(comps ...Component) error {
	if r.Locked() {
		return LockedRegistryError{}
	}
	for _, e := range r.entities.entities() {
		if !r.Valid(e) {
			continue
		}
		var err error
		if len(comps) == 0 {
			if r.isOrphan(e) {
				continue
			}
			err = r.Destroy(e)
		} else {
			err = r.Remove(e, comps...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *registry) Components(e Entity) []Component {
	arch, _, err := r.locate(e)
	if err != nil {
		return nil
	}
	return arch.Components()
}

func (r *registry) Entities() []Entity {
	return r.entities.entities()
}

// Orphans returns the live entities that carry no component.
func (r *registry) Orphans() []Entity {
	return slices.Clone(r.archetypes.empty().entities)
}

func (r *registry) isOrphan(e Entity) bool {
	slot, ok := r.entities.lookup(e)
	return ok && slot.archetype == r.archetypes.empty().id
}

func (r *registry) Len() int {
	return r.entities.live
}

func (r *registry) ArchetypeOf(e Entity) (Archetype, error) {
	arch, _, err := r.locate(e)
	if err != nil {
		return nil, err
	}
	return arch, nil
}

func (r *registry) Archetypes() []Archetype {
	out := make([]Archetype, 0, r.archetypes.len())
	for _, a := range r.archetypes.asSlice {
		out = append(out, a)
	}
	return out
}

func (r *registry) OnConstruct(c Component) *Observer {
	return r.constructed.get(c.ID())
}

func (r *registry) OnDestroy(c Component) *Observer {
	return r.destroyed.get(c.ID())
}

func (r *registry) OnUpdate(c Component) *Observer {
	return r.updated.get(c.ID())
}

func (r *registry) Locked() bool {
	return r.locks > 0
}

func (r *registry) Lock() {
	r.locks++
}

func (r *registry) Unlock() {
	if r.locks > 0 {
		r.locks--
	}
}

// locate resolves a live entity to its archetype and row.
func (r *registry) locate(e Entity) (*archetype, int, error) {
	slot, ok := r.entities.lookup(e)
	if !ok {
		return nil, absent, UnknownEntityError{Entity: e}
	}
	arch := r.archetypes.get(slot.archetype)
	if slot.row >= arch.Len() || arch.entities[slot.row] != e {
		return nil, absent, RowIndexError{Index: slot.row, Len: arch.Len()}
	}
	return arch, slot.row, nil
}

// relocate migrates e from row of src into a fresh row of dst. Columns listed
// in exclude are left behind. It returns the destination row.
func (r *registry) relocate(e Entity, src *archetype, row int, dst *archetype, exclude ...ComponentID) (int, error) {
	dstRow := dst.add(e)
	swapped, ok, err := src.moveAt(dst, row, exclude...)
	if err != nil {
		dst.removeAt(dstRow)
		return absent, err
	}
	if ok {
		r.entities.place(swapped, src.id, row)
	}
	r.entities.place(e, dst.id, dstRow)
	return dstRow, nil
}

func (r *registry) neighbourWith(src *archetype, c Component) *archetype {
	dst, created := r.archetypes.withAdded(src, c)
	if created {
		r.archetypeCreated(dst)
	}
	return dst
}

func (r *registry) neighbourWithout(src *archetype, c Component) *archetype {
	dst, created := r.archetypes.withRemoved(src, c)
	if created {
		r.archetypeCreated(dst)
	}
	return dst
}

func (r *registry) archetypeCreated(a *archetype) {
	r.metrics.recordArchetypeCreated()
	loadArchetypeIntoEvent(r.logger.Debug(), a).Msg("archetype created")
}

func componentIDs(a *archetype) []ComponentID {
	ids := make([]ComponentID, len(a.columns))
	for i, col := range a.columns {
		ids[i] = col.componentID()
	}
	return ids
}

// unnotified returns the first component of a whose id is not yet in notified.
func unnotified(a *archetype, notified mask.Mask) (ComponentID, bool) {
	for _, col := range a.columns {
		if id := col.componentID(); !notified.Contains(uint32(id)) {
			return id, true
		}
	}
	return 0, false
}
