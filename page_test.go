package gopage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustPageRequest(t *testing.T, page, size int, sort ...SortDirective) *PageRequest {
	t.Helper()

	req, err := NewPageRequest(page, size, sort...)
	require.NoError(t, err)

	return req
}

func mustPositionRequest(t *testing.T, position, size int, sort ...SortDirective) *PageRequest {
	t.Helper()

	req, err := NewPositionRequest(position, size, sort...)
	require.NoError(t, err)

	return req
}

func Test_BuildPage_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		content  int
		total    int64
		req      func(t *testing.T) *PageRequest
		expected PageDetails
	}{
		{
			name:    "first page of 25 by 10",
			content: 10,
			total:   25,
			req: func(t *testing.T) *PageRequest {
				return mustPageRequest(t, 0, 10)
			},
			expected: PageDetails{
				TotalPages: 3, PageIndex: 0, Position: 0,
				TotalElements: 25, ElementsPerPage: 10, ElementsInPage: 10,
				First: true, Last: false, HasNext: true, HasPrevious: false,
				Overflow: false,
			},
		},
		{
			name:    "last short page of 25 by 10",
			content: 5,
			total:   25,
			req: func(t *testing.T) *PageRequest {
				return mustPageRequest(t, 2, 10)
			},
			expected: PageDetails{
				TotalPages: 3, PageIndex: 2, Position: 20,
				TotalElements: 25, ElementsPerPage: 10, ElementsInPage: 5,
				First: false, Last: true, HasNext: false, HasPrevious: true,
				Overflow: false,
			},
		},
		{
			name:    "position window starts mid-page",
			content: 10,
			total:   25,
			req: func(t *testing.T) *PageRequest {
				return mustPositionRequest(t, 5, 10)
			},
			expected: PageDetails{
				TotalPages: 3, PageIndex: 0, Position: 5,
				TotalElements: 25, ElementsPerPage: 10, ElementsInPage: 10,
				First: true, Last: false, HasNext: true, HasPrevious: false,
				Overflow: false,
			},
		},
		{
			name:    "no request means one page holds everything",
			content: 25,
			total:   25,
			req: func(*testing.T) *PageRequest {
				return nil
			},
			expected: PageDetails{
				TotalPages: 1, PageIndex: 0, Position: 0,
				TotalElements: 25, ElementsPerPage: 25, ElementsInPage: 25,
				First: true, Last: true, HasNext: false, HasPrevious: false,
				Overflow: false,
			},
		},
		{
			name:    "page far past the end overflows",
			content: 0,
			total:   25,
			req: func(t *testing.T) *PageRequest {
				return mustPageRequest(t, 100, 10)
			},
			expected: PageDetails{
				TotalPages: 3, PageIndex: 100, Position: 1000,
				TotalElements: 25, ElementsPerPage: 10, ElementsInPage: 0,
				First: false, Last: true, HasNext: false, HasPrevious: true,
				Overflow: true,
			},
		},
		{
			name:    "position past the end overflows",
			content: 0,
			total:   25,
			req: func(t *testing.T) *PageRequest {
				return mustPositionRequest(t, 25, 10)
			},
			expected: PageDetails{
				TotalPages: 3, PageIndex: 2, Position: 25,
				TotalElements: 25, ElementsPerPage: 10, ElementsInPage: 0,
				First: false, Last: true, HasNext: false, HasPrevious: true,
				Overflow: true,
			},
		},
		{
			name:    "zero size means unbounded page",
			content: 25,
			total:   25,
			req: func(t *testing.T) *PageRequest {
				return mustPageRequest(t, 0, 0)
			},
			expected: PageDetails{
				TotalPages: 1, PageIndex: 0, Position: 0,
				TotalElements: 25, ElementsPerPage: 25, ElementsInPage: 25,
				First: true, Last: true, HasNext: false, HasPrevious: false,
				Overflow: false,
			},
		},
		{
			name:    "exact fit has no short last page",
			content: 10,
			total:   30,
			req: func(t *testing.T) *PageRequest {
				return mustPageRequest(t, 2, 10)
			},
			expected: PageDetails{
				TotalPages: 3, PageIndex: 2, Position: 20,
				TotalElements: 30, ElementsPerPage: 10, ElementsInPage: 10,
				First: false, Last: true, HasNext: false, HasPrevious: true,
				Overflow: false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := make([]int, tt.content)
			page := BuildPage(content, tt.total, tt.req(t))

			require.Equal(t, tt.expected, page.Details)
			require.Len(t, page.Content, tt.content)
		})
	}
}

func Test_BuildPage_ZeroTotalAsymmetry(t *testing.T) {
	tests := []struct {
		name         string
		req          func(t *testing.T) *PageRequest
		wantOverflow bool
	}{
		{
			name: "position zero over empty set is not overflow",
			req: func(t *testing.T) *PageRequest {
				return mustPositionRequest(t, 0, 10)
			},
			wantOverflow: false,
		},
		{
			name: "positive position over empty set is overflow",
			req: func(t *testing.T) *PageRequest {
				return mustPositionRequest(t, 5, 10)
			},
			wantOverflow: true,
		},
		{
			name: "page zero over empty set is not overflow",
			req: func(t *testing.T) *PageRequest {
				return mustPageRequest(t, 0, 10)
			},
			wantOverflow: false,
		},
		{
			name: "positive page over empty set is overflow",
			req: func(t *testing.T) *PageRequest {
				return mustPageRequest(t, 3, 10)
			},
			wantOverflow: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := EmptyPage[int](tt.req(t))

			require.Equal(t, tt.wantOverflow, page.Details.Overflow)
			require.Zero(t, page.Details.TotalPages)
			require.Zero(t, page.Details.TotalElements)
			require.True(t, page.Details.First)
			require.True(t, page.Details.Last)
			require.False(t, page.Details.HasNext)
			require.False(t, page.Details.HasPrevious)
		})
	}
}

func Test_BuildPage_TotalPagesFormula(t *testing.T) {
	ceilDiv := func(a, b int) int {
		return (a + b - 1) / b
	}

	for total := 0; total <= 53; total++ {
		for size := 1; size <= 12; size++ {
			page := BuildPage[int](nil, int64(total), mustPageRequest(t, 0, size))

			want := 0
			if total > 0 {
				want = ceilDiv(total, size)
			}
			if page.Details.TotalPages != want {
				t.Fatalf("total=%d size=%d: totalPages=%d want %d", total, size, page.Details.TotalPages, want)
			}

			wantFirst := page.Details.TotalPages == 0 || page.Details.PageIndex == 0
			if page.Details.First != wantFirst {
				t.Fatalf("total=%d size=%d: isFirst=%v want %v", total, size, page.Details.First, wantFirst)
			}
		}
	}
}

func Test_BuildPage_EchoesSort(t *testing.T) {
	sort := []SortDirective{
		{Field: "type", Direction: DirectionASC},
		{Field: "rate", Direction: DirectionDESC},
	}

	page := BuildPage([]int{1, 2}, 2, mustPageRequest(t, 0, 10, sort...))
	require.Equal(t, sort, page.Details.Sort)

	noSort := BuildPage([]int{1, 2}, 2, mustPageRequest(t, 0, 10))
	require.Nil(t, noSort.Details.Sort)
}
