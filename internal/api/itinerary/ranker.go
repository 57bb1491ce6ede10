package itinerary

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

// PlaceSource is anything that can hand the ranker the full place list.
// *catalog.Catalog satisfies it.
type PlaceSource interface {
	Places() []types.Place
}

// Policy holds the tunable ranking constants.
type Policy struct {
	DistanceWeight           float64
	RelevanceWeight          float64
	RelevanceDivisor         float64
	MaxDistanceKm            float64
	MaxCandidatesPerCategory int
	MaxCombinations          int
	// PartialCoverage drops requested categories without candidates instead
	// of failing the whole request.
	PartialCoverage bool
}

// DefaultPolicy weighs relevance 9:1 over compactness.
func DefaultPolicy() Policy {
	return Policy{
		DistanceWeight:           0.1,
		RelevanceWeight:          0.9,
		RelevanceDivisor:         3,
		MaxDistanceKm:            20,
		MaxCandidatesPerCategory: 25,
		MaxCombinations:          250_000,
	}
}

const weightTolerance = 1e-9

func (p Policy) Validate() error {
	var errs []error
	if p.DistanceWeight < 0 || p.RelevanceWeight < 0 {
		errs = append(errs, errors.New("weights must not be negative"))
	}
	if math.Abs(p.DistanceWeight+p.RelevanceWeight-1) > weightTolerance {
		errs = append(errs, fmt.Errorf("weights must sum to 1, got %g", p.DistanceWeight+p.RelevanceWeight))
	}
	if p.RelevanceDivisor <= 0 {
		errs = append(errs, errors.New("relevance divisor must be positive"))
	}
	if p.MaxDistanceKm <= 0 {
		errs = append(errs, errors.New("max distance must be positive"))
	}
	if p.MaxCandidatesPerCategory < 0 {
		errs = append(errs, errors.New("max candidates per category must not be negative"))
	}
	if p.MaxCombinations <= 0 {
		errs = append(errs, errors.New("max combinations must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid ranking policy: %w", errors.Join(errs...))
	}
	return nil
}

// Candidate is one scored, de-duplicated itinerary.
type Candidate struct {
	// Index is the enumeration position in the combination space.
	Index           int
	Picks           []int
	RouteDistanceKm float64
	AvgRelevance    float64
	Cost            float64
}

// Slot is the outcome for one covered entry of the query interpretation.
type Slot struct {
	PlaceInfoIndex int
	Info           types.PlaceInfo
	Candidates     []types.PlaceScoring
	Winner         types.PlaceScoring
}

// Result is the winning itinerary decomposed per slot.
type Result struct {
	Slots   []Slot
	Summary types.RankingSummary
}

// Ranker selects the best one-place-per-category itinerary. It holds no
// mutable state and may be shared between goroutines.
type Ranker struct {
	policy Policy
}

func NewRanker(policy Policy) (*Ranker, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Ranker{policy: policy}, nil
}

func (r *Ranker) Policy() Policy {
	return r.policy
}

// Suggest ranks and packages the winner as suggestions, one per covered slot.
func (r *Ranker) Suggest(src PlaceSource, q types.QueryInterpretation) ([]types.Suggestion, error) {
	res, err := r.Rank(src, q)
	if err != nil {
		return nil, err
	}
	return BuildSuggestions(res.Slots)
}

// Rank runs filter, combination and selection for q against src.
func (r *Ranker) Rank(src PlaceSource, q types.QueryInterpretation) (*Result, error) {
	if len(q.PlaceInfos) == 0 {
		return nil, fmt.Errorf("%w: no place types requested", types.ErrNoValidItinerary)
	}

	places := src.Places()
	var (
		slots   []Slot
		lists   [][]types.PlaceScoring
		dropped []types.PlaceCategory
	)
	for i, info := range q.PlaceInfos {
		if !info.PlaceType.Valid() {
			return nil, fmt.Errorf("place_infos[%d]: %w", i, types.ErrUnknownPlaceType)
		}
		candidates := topCandidates(FilterCandidates(info, places), r.policy.MaxCandidatesPerCategory)
		if len(candidates) == 0 {
			catErr := &types.CategoryError{Index: i, Category: info.PlaceType, Err: types.ErrNoCandidatesForCategory}
			if !r.policy.PartialCoverage {
				return nil, fmt.Errorf("%w: %w", types.ErrNoValidItinerary, catErr)
			}
			dropped = append(dropped, info.PlaceType)
			continue
		}
		slots = append(slots, Slot{PlaceInfoIndex: i, Info: info, Candidates: candidates})
		lists = append(lists, candidates)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no requested category has candidates", types.ErrNoValidItinerary)
	}

	space, err := NewCombinationSpace(lists, r.policy.MaxCombinations)
	if err != nil {
		return nil, err
	}

	ranked, duplicates := r.Evaluate(space)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: no combination visits distinct places", types.ErrNoValidItinerary)
	}

	best := ranked[0]
	for slot, pick := range best.Picks {
		slots[slot].Winner = slots[slot].Candidates[pick]
	}

	return &Result{
		Slots: slots,
		Summary: types.RankingSummary{
			RouteDistanceKm:       best.RouteDistanceKm,
			AvgRelevance:          best.AvgRelevance,
			Cost:                  best.Cost,
			CombinationsEvaluated: space.Size(),
			DuplicatesRemoved:     duplicates,
			DroppedCategories:     dropped,
		},
	}, nil
}

// Evaluate scores every combination of space, skips those visiting the same
// place twice, collapses those resolving to the same multiset of places onto
// the first one enumerated, and returns the rest best first together with the
// number of duplicates removed.
func (r *Ranker) Evaluate(space *CombinationSpace) ([]Candidate, int) {
	seen := make(map[string]struct{}, space.Size())
	ranked := make([]Candidate, 0, space.Size())
	duplicates := 0

	space.Each(func(index int, picks []int) bool {
		stops := space.Resolve(picks)
		ids := identityKeys(stops)
		if hasRepeat(ids) {
			return true
		}
		key := strings.Join(ids, keySeparator)
		if _, dup := seen[key]; dup {
			duplicates++
			return true
		}
		seen[key] = struct{}{}

		c := r.score(stops)
		c.Index = index
		c.Picks = slices.Clone(picks)
		ranked = append(ranked, c)
		return true
	})

	slices.SortFunc(ranked, compareCandidates)
	return ranked, duplicates
}

// score computes the route and relevance metrics of one itinerary.
func (r *Ranker) score(stops []types.PlaceScoring) Candidate {
	coords := make([]types.Coordinate, len(stops))
	var relevance float64
	for i, s := range stops {
		coords[i] = s.Place.Location
		relevance += float64(s.Score-1) / r.policy.RelevanceDivisor
	}
	avgRelevance := relevance / float64(len(stops))
	distance := tourDistance(coords)
	normDistance := distance / r.policy.MaxDistanceKm

	return Candidate{
		RouteDistanceKm: distance,
		AvgRelevance:    avgRelevance,
		Cost:            r.policy.DistanceWeight*normDistance - r.policy.RelevanceWeight*avgRelevance,
	}
}

// compareCandidates orders by cost ascending, then enumeration order. Every
// candidate of one space has the same number of stops, since empty slots are
// dropped before the product is built.
func compareCandidates(a, b Candidate) int {
	if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

const keySeparator = "\x1f"

// identityKeys returns the sorted PlaceIdentity keys of stops.
func identityKeys(stops []types.PlaceScoring) []string {
	ids := make([]string, len(stops))
	for i, s := range stops {
		id := s.Place.Identity()
		ids[i] = fmt.Sprintf("%d\x00%s", id.Type, id.Title)
	}
	slices.Sort(ids)
	return ids
}

// hasRepeat reports whether sorted ids contain the same place twice.
func hasRepeat(ids []string) bool {
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			return true
		}
	}
	return false
}

func multisetKey(stops []types.PlaceScoring) string {
	return strings.Join(identityKeys(stops), keySeparator)
}
