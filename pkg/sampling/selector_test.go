package sampling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a scripted sequence of draws.
type fixedSource struct {
	values []float64
	next   int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

func seed(v int64) *int64 {
	return &v
}

func TestSelect_CardinalityRangeAndDistinctness(t *testing.T) {
	cases := []struct {
		n, k int64
	}{
		{0, 0}, {0, 3}, {1, 0}, {1, 1}, {10, 1}, {10, 9}, {10, 10}, {100, 37}, {1000, 999}, {5, 10},
	}

	for _, tc := range cases {
		for s := int64(0); s < 20; s++ {
			sel, err := Select(tc.n, tc.k, NewSource(seed(s)))
			require.NoError(t, err)

			want := tc.k
			if tc.n < want {
				want = tc.n
			}
			require.Equal(t, int(want), sel.Len(), "n=%d k=%d seed=%d", tc.n, tc.k, s)

			seen := make(map[int64]bool)
			prev := int64(-1)
			for _, p := range sel.Positions() {
				assert.GreaterOrEqual(t, p, int64(0))
				assert.Less(t, p, tc.n)
				assert.False(t, seen[p], "duplicate position %d", p)
				assert.Greater(t, p, prev, "positions must be ascending")
				assert.True(t, sel.Contains(p))
				seen[p] = true
				prev = p
			}
		}
	}
}

func TestSelect_Clamping(t *testing.T) {
	sel, err := Select(5, 10, NewSource(nil))
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1, 2, 3, 4}, sel.Positions())
	assert.True(t, sel.Clamped())
	assert.Equal(t, int64(10), sel.Requested())
	assert.Equal(t, int64(5), sel.Population())
}

func TestSelect_ExactPopulationIsNotClamped(t *testing.T) {
	sel, err := Select(4, 4, nil)
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1, 2, 3}, sel.Positions())
	assert.False(t, sel.Clamped())
}

func TestSelect_EmptyPopulation(t *testing.T) {
	sel, err := Select(0, 0, NewSource(seed(1)))
	require.NoError(t, err)

	assert.Equal(t, 0, sel.Len())
	assert.Empty(t, sel.Positions())
	assert.False(t, sel.Contains(0))
	assert.False(t, sel.Clamped())
}

func TestSelect_Deterministic(t *testing.T) {
	first, err := Select(10000, 25, NewSource(seed(42)))
	require.NoError(t, err)
	second, err := Select(10000, 25, NewSource(seed(42)))
	require.NoError(t, err)

	assert.Equal(t, first.Positions(), second.Positions())

	other, err := Select(10000, 25, NewSource(seed(43)))
	require.NoError(t, err)
	assert.NotEqual(t, first.Positions(), other.Positions())
}

func TestSelect_Uniformity(t *testing.T) {
	const (
		n      = 20
		k      = 5
		trials = 4000
	)

	counts := make([]int, n)
	for s := int64(0); s < trials; s++ {
		sel, err := Select(n, k, NewSource(seed(s)))
		require.NoError(t, err)
		for _, p := range sel.Positions() {
			counts[p]++
		}
	}

	want := float64(k) / float64(n)
	for pos, c := range counts {
		got := float64(c) / trials
		assert.InDelta(t, want, got, 0.03, "position %d selected with frequency %.4f", pos, got)
	}
}

func TestSelect_AlgorithmSAcceptanceRule(t *testing.T) {
	// n=4, k=2:
	//   t=0: (4-0)*0.9 = 3.6 >= 2 -> reject
	//   t=1: (4-1)*0.1 = 0.3 <  2 -> accept (m=1)
	//   t=2: (4-2)*0.7 = 1.4 >= 1 -> reject
	//   t=3: (4-3)*0.7 = 0.7 <  1 -> accept (m=2)
	src := &fixedSource{values: []float64{0.9, 0.1, 0.7, 0.7}}

	sel, err := Select(4, 2, src)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, sel.Positions())
	assert.Equal(t, 4, src.next, "one draw per visited position")
}

func TestSelect_ForcedTailAcceptance(t *testing.T) {
	// A source that always draws just below 1 rejects until the remaining
	// positions exactly match the remaining quota.
	src := &fixedSource{values: []float64{math.Nextafter(1, 0)}}

	sel, err := Select(10, 3, src)
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 8, 9}, sel.Positions())
}

func TestSelect_NegativeSizes(t *testing.T) {
	_, err := Select(-1, 0, NewSource(nil))
	assert.ErrorIs(t, err, ErrNegativeSize)

	_, err = Select(3, -1, NewSource(nil))
	assert.ErrorIs(t, err, ErrNegativeSize)
}

func TestSelect_InvalidSource(t *testing.T) {
	_, err := Select(10, 3, &fixedSource{values: []float64{1.0}})
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = Select(10, 3, &fixedSource{values: []float64{-0.5}})
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = Select(10, 3, nil)
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestSelection_PositionsReturnsCopy(t *testing.T) {
	sel, err := Select(3, 3, nil)
	require.NoError(t, err)

	p := sel.Positions()
	p[0] = 99

	assert.Equal(t, []int64{0, 1, 2}, sel.Positions())
	assert.False(t, sel.Contains(99))
}
