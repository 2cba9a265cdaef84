package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAndNormalizePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "valid", page: 2, pageSize: 50, wantPage: 2, wantPageSize: 50},
		{name: "zero page", page: 0, pageSize: 20, wantPage: 1, wantPageSize: 20},
		{name: "negative page", page: -3, pageSize: 20, wantPage: 1, wantPageSize: 20},
		{name: "zero page size defaults", page: 1, pageSize: 0, wantPage: 1, wantPageSize: 20},
		{name: "page size capped", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := ValidateAndNormalizePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestCalculatePaginationInfo(t *testing.T) {
	info := CalculatePaginationInfo(45, 2, 20)

	assert.Equal(t, 45, info.Total)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrevious)

	empty := CalculatePaginationInfo(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 20))
	assert.Equal(t, 40, CalculateOffset(3, 20))
}

func TestParsePaginationFromQuery(t *testing.T) {
	page, pageSize := ParsePaginationFromQuery("3", "25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, pageSize)

	// Missing page_size means fetch everything
	page, pageSize = ParsePaginationFromQuery("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 1000, pageSize)

	// Garbage falls back to defaults
	page, pageSize = ParsePaginationFromQuery("abc", "-5")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
}
