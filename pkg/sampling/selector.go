// Package sampling selects row positions uniformly at random, without replacement,
// in a single sequential pass over a population of known size.
package sampling

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	// ErrNegativeSize is returned when the population or sample size is negative.
	ErrNegativeSize = errors.New("population and sample size must be non-negative")

	// ErrInvalidSource is returned when the random source yields a value outside [0, 1).
	ErrInvalidSource = errors.New("random source must yield values in [0, 1)")
)

// Source yields uniformly distributed values in [0, 1).
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a pseudo-random source. A non-nil seed makes every
// selection drawn from it reproducible; a nil seed is replaced by the wall clock.
func NewSource(seed *int64) Source {
	if seed == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(*seed))
}

// Selection is an immutable set of distinct positions in [0, Population).
type Selection struct {
	population int64
	requested  int64
	positions  []int64
	index      map[int64]struct{}
}

// Select picks min(k, n) distinct positions out of n.
//
// When k >= n every position is taken and Clamped reports whether k exceeded n.
// Otherwise positions are visited in order and position t is accepted with
// probability (k-m)/(n-t), m being the number accepted so far (Knuth's Algorithm S).
// Each position ends up selected with probability k/n and the result is sorted.
func Select(n, k int64, src Source) (*Selection, error) {
	if n < 0 || k < 0 {
		return nil, fmt.Errorf("%w: n=%d k=%d", ErrNegativeSize, n, k)
	}

	if k >= n {
		positions := make([]int64, n)
		for i := range positions {
			positions[i] = int64(i)
		}
		return newSelection(n, k, positions), nil
	}

	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidSource)
	}

	positions := make([]int64, 0, k)
	var m int64
	for t := int64(0); m < k; t++ {
		if t >= n {
			// Unreachable with a source on [0, 1): once n-t == k-m every draw accepts.
			return nil, fmt.Errorf("%w: exhausted population after %d of %d", ErrInvalidSource, m, k)
		}
		u := src.Float64()
		if u < 0 || u >= 1 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidSource, u)
		}
		if float64(n-t)*u < float64(k-m) {
			positions = append(positions, t)
			m++
		}
	}

	return newSelection(n, k, positions), nil
}

func newSelection(n, k int64, positions []int64) *Selection {
	index := make(map[int64]struct{}, len(positions))
	for _, p := range positions {
		index[p] = struct{}{}
	}
	return &Selection{
		population: n,
		requested:  k,
		positions:  positions,
		index:      index,
	}
}

// Contains reports whether pos was selected.
func (s *Selection) Contains(pos int64) bool {
	_, ok := s.index[pos]
	return ok
}

// Len returns the number of selected positions.
func (s *Selection) Len() int {
	return len(s.positions)
}

// Positions returns the selected positions in ascending order.
func (s *Selection) Positions() []int64 {
	out := make([]int64, len(s.positions))
	copy(out, s.positions)
	return out
}

// Population returns the population size the selection was drawn from.
func (s *Selection) Population() int64 {
	return s.population
}

// Requested returns the sample size that was asked for.
func (s *Selection) Requested() int64 {
	return s.requested
}

// Clamped reports whether the requested size exceeded the population,
// in which case the whole population was selected.
func (s *Selection) Clamped() bool {
	return s.requested > s.population
}
