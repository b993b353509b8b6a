package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		current int
		total   int
		delta   int
		want    []int
		hasPrev bool
		hasNext bool
	}{
		{
			name:    "small_total_no_ellipsis",
			current: 2, total: 5, delta: DefaultDelta,
			want:    []int{1, 2, 3, 4, 5},
			hasPrev: true, hasNext: true,
		},
		{
			name:    "middle_of_long_range",
			current: 5, total: 10, delta: DefaultDelta,
			want:    []int{1, Ellipsis, 3, 4, 5, 6, 7, Ellipsis, 10},
			hasPrev: true, hasNext: true,
		},
		{
			name:    "first_page",
			current: 1, total: 10, delta: DefaultDelta,
			want:    []int{1, 2, 3, Ellipsis, 10},
			hasNext: true,
		},
		{
			name:    "last_page",
			current: 10, total: 10, delta: DefaultDelta,
			want:    []int{1, Ellipsis, 8, 9, 10},
			hasPrev: true,
		},
		{
			name:    "adjacent_gap_collapses_without_ellipsis",
			current: 4, total: 7, delta: DefaultDelta,
			want:    []int{1, 2, 3, 4, 5, 6, 7},
			hasPrev: true, hasNext: true,
		},
		{
			name:    "single_page",
			current: 1, total: 1, delta: DefaultDelta,
			want:    []int{1},
		},
		{
			name:    "zero_delta",
			current: 5, total: 9, delta: 0,
			want:    []int{1, Ellipsis, 5, Ellipsis, 9},
			hasPrev: true, hasNext: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := Build(tc.current, tc.total, tc.delta)
			require.Equal(t, tc.want, w.Pages)
			require.Equal(t, tc.hasPrev, w.HasPrev)
			require.Equal(t, tc.hasNext, w.HasNext)
		})
	}
}

// current за пределами диапазона прижимается к границе.
func TestBuild_ClampsCurrent(t *testing.T) {
	t.Parallel()

	low := Build(-3, 5, DefaultDelta)
	require.Equal(t, []int{1, 2, 3, Ellipsis, 5}, low.Pages)
	require.False(t, low.HasPrev)

	high := Build(42, 5, DefaultDelta)
	require.Equal(t, []int{1, Ellipsis, 3, 4, 5}, high.Pages)
	require.False(t, high.HasNext)
}

func TestBuild_NoPages(t *testing.T) {
	t.Parallel()

	w := Build(1, 0, DefaultDelta)
	require.Empty(t, w.Pages)
	require.False(t, w.HasPrev)
	require.False(t, w.HasNext)

	require.Empty(t, Build(1, -4, DefaultDelta).Pages)
}

// Отрицательная delta трактуется как нулевая.
func TestBuild_NegativeDelta(t *testing.T) {
	t.Parallel()

	w := Build(5, 9, -1)
	require.Equal(t, []int{1, Ellipsis, 5, Ellipsis, 9}, w.Pages)
}
