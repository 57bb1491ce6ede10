package itinerary

import (
	"math"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

// CombinationSpace is the Cartesian product of per-slot candidate lists,
// bounded by a ceiling fixed at construction.
type CombinationSpace struct {
	lists [][]types.PlaceScoring
	size  int
}

// NewCombinationSpace refuses products larger than limit. The product is
// computed without overflow; an empty list anywhere, or no lists at all,
// gives an empty space.
func NewCombinationSpace(lists [][]types.PlaceScoring, limit int) (*CombinationSpace, error) {
	s := &CombinationSpace{lists: lists}
	if len(lists) == 0 {
		return s, nil
	}

	for _, l := range lists {
		if len(l) == 0 {
			return s, nil
		}
	}

	size := 1
	for _, l := range lists {
		if size > math.MaxInt/len(l) {
			return nil, &types.CombinationSpaceError{Size: -1, Limit: limit}
		}
		size *= len(l)
	}
	if size > limit {
		return nil, &types.CombinationSpaceError{Size: size, Limit: limit}
	}
	s.size = size
	return s, nil
}

// Size is the number of combinations the space yields.
func (s *CombinationSpace) Size() int {
	return s.size
}

// Each calls fn with the candidate index chosen in every slot, in row-major
// order with the last slot varying fastest. The picks slice is reused between
// calls. Iteration stops early when fn returns false.
func (s *CombinationSpace) Each(fn func(index int, picks []int) bool) {
	if s.size == 0 {
		return
	}
	picks := make([]int, len(s.lists))
	for index := 0; index < s.size; index++ {
		if !fn(index, picks) {
			return
		}
		for slot := len(picks) - 1; slot >= 0; slot-- {
			picks[slot]++
			if picks[slot] < len(s.lists[slot]) {
				break
			}
			picks[slot] = 0
		}
	}
}

// Resolve maps picks back to the scored places they select.
func (s *CombinationSpace) Resolve(picks []int) []types.PlaceScoring {
	out := make([]types.PlaceScoring, len(picks))
	for slot, i := range picks {
		out[slot] = s.lists[slot][i]
	}
	return out
}
