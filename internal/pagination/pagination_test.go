package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_PageArithmetic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		total      int64
		requested  int
		wantNumber int
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{"Empty collection", 0, 1, 1, 1, false, false},
		{"Single partial page", 3, 1, 1, 1, false, false},
		{"Exactly one full page", 10, 1, 1, 1, false, false},
		{"Thirteen items first page", 13, 1, 1, 2, true, false},
		{"Thirteen items second page", 13, 2, 2, 2, false, true},
		{"Middle page", 35, 2, 2, 4, true, true},
		{"Requested past end clamps to last", 13, 9, 2, 2, false, true},
		{"Requested zero clamps to first", 13, 0, 1, 2, true, false},
		{"Requested negative clamps to first", 13, -4, 1, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.total, tt.requested)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
			assert.Equal(t, tt.total, p.TotalItems)
		})
	}
}

// Page k of an N-item collection holds min(10, N-10*(k-1)) items; the
// limit/offset pair must line up with that.
func TestPage_LimitOffset(t *testing.T) {
	t.Parallel()
	for _, total := range []int64{0, 1, 10, 13, 99, 100} {
		for requested := 1; requested <= 12; requested++ {
			p := New(total, requested)
			offset := p.Offset()
			assert.GreaterOrEqual(t, offset, 0)
			if total > 0 {
				assert.Less(t, int64(offset), max64(total, 1), "offset stays inside the collection (total=%d page=%d)", total, requested)
			}
			remaining := total - int64(offset)
			want := remaining
			if want > int64(p.Size) {
				want = int64(p.Size)
			}
			if want < 0 {
				want = 0
			}
			// items actually fetched by LIMIT/OFFSET
			got := min64(int64(p.Limit()), remaining)
			if got < 0 {
				got = 0
			}
			assert.Equal(t, want, got, "total=%d page=%d", total, requested)
		}
	}
}

func TestNewWithSize_DefaultsOnBadSize(t *testing.T) {
	t.Parallel()
	p := NewWithSize(25, 1, 0)
	assert.Equal(t, PostsPerPage, p.Size)
	assert.Equal(t, 3, p.TotalPages)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
