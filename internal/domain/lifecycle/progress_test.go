package lifecycle_test

import (
	"testing"

	"github.com/socialjobs/workmatch/internal/domain/lifecycle"
	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	cases := []struct {
		hired, needed, want int
	}{
		{3, 4, 75},
		{0, 4, 0},
		{1, 2, 50},
		{2, 2, 100},
		{1, 3, 33},
		{2, 3, 67},
		{3, 0, 300}, // zero quota is treated as one
		{5, 2, 250},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, lifecycle.ComputeProgress(c.hired, c.needed), "hired=%d needed=%d", c.hired, c.needed)
	}
}

func TestComputeProgress_Idempotent(t *testing.T) {
	first := lifecycle.ComputeProgress(3, 4)
	second := lifecycle.ComputeProgress(3, 4)
	assert.Equal(t, first, second)
}

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0, lifecycle.ClampProgress(-5))
	assert.Equal(t, 42, lifecycle.ClampProgress(42))
	assert.Equal(t, 100, lifecycle.ClampProgress(300))
}
