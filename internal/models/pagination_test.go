package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(12, 2, 5)
	assert.Equal(t, int64(12), p.TotalCount)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, 5, p.PerPage)

	// exact multiple
	p = NewPagination(10, 1, 5)
	assert.Equal(t, 2, p.LastPage)

	// empty result set still reports page one
	p = NewPagination(0, 1, 5)
	assert.Equal(t, 1, p.LastPage)
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range OrderStatusValues {
		assert.True(t, IsValidOrderStatus(status), status)
	}
	assert.False(t, IsValidOrderStatus("teleported"))
	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("Pending"))
}
