package stockroom

// Each calls fn with the T value of every entity carrying T. Archetypes are
// visited in creation order and rows in storage order. The registry is locked
// for the duration.
func (c AccessibleComponent[T]) Each(r Registry, fn func(*T)) {
	c.EachEntity(r, func(_ Entity, v *T) {
		fn(v)
	})
}

func (c AccessibleComponent[T]) EachEntity(r Registry, fn func(Entity, *T)) {
	reg := r.(*registry)
	reg.Lock()
	defer reg.Unlock()
	for _, arch := range reg.archetypes.matching(c.ID()) {
		col := arch.column(c.ID()).(*typedColumn[T])
		for row, e := range arch.entities {
			fn(e, col.at(row))
		}
	}
}

func Each2[A, B any](r Registry, a AccessibleComponent[A], b AccessibleComponent[B], fn func(*A, *B)) {
	ForEach2(r, a, b, func(_ Entity, pa *A, pb *B) {
		fn(pa, pb)
	})
}

// ForEach2 visits every entity carrying both A and B.
func ForEach2[A, B any](r Registry, a AccessibleComponent[A], b AccessibleComponent[B], fn func(Entity, *A, *B)) {
	reg := r.(*registry)
	reg.Lock()
	defer reg.Unlock()
	for _, arch := range reg.archetypes.matching(a.ID(), b.ID()) {
		colA := arch.column(a.ID()).(*typedColumn[A])
		colB := arch.column(b.ID()).(*typedColumn[B])
		for row, e := range arch.entities {
			fn(e, colA.at(row), colB.at(row))
		}
	}
}

func Each3[A, B, C any](r Registry, a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C], fn func(*A, *B, *C)) {
	ForEach3(r, a, b, c, func(_ Entity, pa *A, pb *B, pc *C) {
		fn(pa, pb, pc)
	})
}

func ForEach3[A, B, C any](r Registry, a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C], fn func(Entity, *A, *B, *C)) {
	reg := r.(*registry)
	reg.Lock()
	defer reg.Unlock()
	for _, arch := range reg.archetypes.matching(a.ID(), b.ID(), c.ID()) {
		colA := arch.column(a.ID()).(*typedColumn[A])
		colB := arch.column(b.ID()).(*typedColumn[B])
		colC := arch.column(c.ID()).(*typedColumn[C])
		for row, e := range arch.entities {
			fn(e, colA.at(row), colB.at(row), colC.at(row))
		}
	}
}
