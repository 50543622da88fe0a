package stockroom

import "slices"

// ObserverID identifies one connected callback within its Observer.
type ObserverID uint32

type ObserverCallback func(Registry, Entity)

type observerEntry struct {
	id       ObserverID
	callback ObserverCallback
}

// Observer is an ordered list of lifecycle callbacks for one component type
// and one event kind.
type Observer struct {
	nextID  ObserverID
	entries []observerEntry
}

// Connect appends cb and returns the id needed to disconnect it.
func (o *Observer) Connect(cb ObserverCallback) ObserverID {
	id := o.nextID
	o.nextID++
	o.entries = append(o.entries, observerEntry{id: id, callback: cb})
	return id
}

func (o *Observer) Disconnect(id ObserverID) bool {
	idx := slices.IndexFunc(o.entries, func(entry observerEntry) bool {
		return entry.id == id
	})
	if idx < 0 {
		return false
	}
	o.entries = slices.Delete(o.entries, idx, idx+1)
	return true
}

// Notify invokes every callback connected when Notify started, in
// registration order.
func (o *Observer) Notify(r Registry, e Entity) {
	if len(o.entries) == 0 {
		return
	}
	for _, entry := range slices.Clone(o.entries) {
		entry.callback(r, e)
	}
}

func (o *Observer) Len() int {
	return len(o.entries)
}

type observerSet map[ComponentID]*Observer

func (s observerSet) get(id ComponentID) *Observer {
	o, ok := s[id]
	if !ok {
		o = &Observer{}
		s[id] = o
	}
	return o
}

func (s observerSet) notify(id ComponentID, r Registry, e Entity) {
	if o, ok := s[id]; ok {
		o.Notify(r, e)
	}
}
