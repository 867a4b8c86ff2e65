package request

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedRequest(t *testing.T) {
	tests := []struct {
		name            string
		page, perPage   string
		wantPage, limit int
		offset          int
	}{
		{"defaults", "", "", 1, DefaultPerPage, 0},
		{"explicit", "3", "20", 3, 20, 40},
		{"per page capped", "1", "1000", 1, MaxPerPage, 0},
		{"garbage", "x", "-5", 1, DefaultPerPage, 0},
		{"huge page", "184467440737095517", "100", MaxPage, MaxPerPage, (MaxPage - 1) * MaxPerPage},
		{"overflowing page", "99999999999999999999999", "100", 1, MaxPerPage, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginatedRequest(tt.page, tt.perPage)

			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.limit, p.Limit())
			assert.Equal(t, tt.offset, p.Offset())
			assert.GreaterOrEqual(t, p.Offset(), 0)
			assert.LessOrEqual(t, p.Offset(), math.MaxInt32)
		})
	}
}

func TestOffset_UnclampedPage(t *testing.T) {
	p := PaginatedRequest{Page: math.MaxInt64 / 2, PerPage: MaxPerPage}

	assert.Equal(t, (MaxPage-1)*MaxPerPage, p.Offset())
}
