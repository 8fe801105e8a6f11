package lightgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellSet(t *testing.T) {
	s := newCellSet(100)

	assert.True(t, s.Mark(42))
	assert.True(t, s.Mark(3))
	assert.False(t, s.Mark(42))
	assert.True(t, s.Mark(99))

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(4))
	assert.Equal(t, []int32{7, 3, 42, 99}, s.AppendTo([]int32{7}))

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has(42))
	assert.Empty(t, s.AppendTo(nil))
}
