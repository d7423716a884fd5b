package ecs

// SparseSet stores one component kind. Values are kept densely packed for
// iteration and found through a sparse slot index. The dense side keeps the
// full Entity, so a handle from an older generation never matches.
type SparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func (s *SparseSet) index(e Entity) (int, bool) {
	if s == nil {
		return 0, false
	}
	slot := int(e.id()) - 1
	if slot < 0 || slot >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[slot]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *SparseSet) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

// Get returns the value stored for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	idx, ok := s.index(e)
	if !ok {
		return nil
	}
	return s.values[idx]
}

// Set inserts or replaces the value for e.
func (s *SparseSet) Set(e Entity, v any) {
	if s == nil || !e.Valid() {
		return
	}
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	slot := int(e.id()) - 1
	for len(s.sparse) <= slot {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[slot] = len(s.dense) - 1
}

// Remove swaps the last value into e's place.
func (s *SparseSet) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[int(moved.id())-1] = idx

	s.dense[last] = 0
	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[int(e.id())-1] = -1
	return true
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns a copy of the dense entity list, safe to iterate while
// the set changes.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return append([]Entity(nil), s.dense...)
}
