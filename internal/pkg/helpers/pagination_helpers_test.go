package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page default size", page: 1, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 20, wantOffset: 40, wantLimit: 20},
		{name: "zero page falls back to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page falls back to first", page: -2, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size falls back to default", page: 1, size: 0, wantOffset: 0, wantLimit: DefaultPageSize},
		{name: "oversized size falls back to default", page: 1, size: 5000, wantOffset: 0, wantLimit: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("full pages", func(t *testing.T) {
		info := NewPaginationInfo(45, 2, 10)
		assert.Equal(t, int64(45), info.TotalItems)
		assert.Equal(t, 5, info.TotalPages)
		assert.Equal(t, 2, info.CurrentPage)
		assert.Equal(t, 10, info.PageSize)
	})

	t.Run("empty result still reports one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 10)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("page past the end is clamped", func(t *testing.T) {
		info := NewPaginationInfo(15, 9, 10)
		assert.Equal(t, 2, info.TotalPages)
		assert.Equal(t, 2, info.CurrentPage)
	})
}
