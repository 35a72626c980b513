package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3}, 2, 15, 31)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, int64(31), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPaginated([]int{}, 1, 15, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
