package lightgrid

import "github.com/bits-and-blooms/bitset"

// cellSet is a fixed-size set of lattice indices used by the marking passes.
type cellSet struct {
	bits  *bitset.BitSet
	count int
}

func newCellSet(n int) *cellSet {
	return &cellSet{bits: bitset.New(uint(n))}
}

// Mark adds i and reports whether it was newly added.
func (s *cellSet) Mark(i int) bool {
	if s.bits.Test(uint(i)) {
		return false
	}
	s.bits.Set(uint(i))
	s.count++
	return true
}

func (s *cellSet) Has(i int) bool {
	return s.bits.Test(uint(i))
}

func (s *cellSet) Len() int {
	return s.count
}

func (s *cellSet) Reset() {
	s.bits.ClearAll()
	s.count = 0
}

// AppendTo appends the members in ascending order.
func (s *cellSet) AppendTo(dst []int32) []int32 {
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		dst = append(dst, int32(i))
	}
	return dst
}
