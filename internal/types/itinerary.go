package types

import (
	"time"

	"github.com/google/uuid"
)

// PlaceInfo is one entry of a query interpretation: the user wants a place of
// PlaceType relevant to Tags.
type PlaceInfo struct {
	PlaceType PlaceCategory `json:"place_type"`
	Tags      []string      `json:"tags"`
}

// QueryInterpretation is the structured result of the LLM analysis of a user
// request.
type QueryInterpretation struct {
	PlaceInfos []PlaceInfo `json:"place_infos"`
	TotalCount *uint32     `json:"total_count,omitempty"`
}

// Suggestion is the result for one category slot: every qualifying candidate
// and the one currently displayed.
type Suggestion struct {
	Places        []Place `json:"places"`
	SelectedPlace Place   `json:"selected_place"`
}

// Next selects the place after the current one, wrapping around.
func (s *Suggestion) Next() error {
	return s.step(1)
}

// Prev selects the place before the current one, wrapping around.
func (s *Suggestion) Prev() error {
	return s.step(-1)
}

func (s *Suggestion) step(delta int) error {
	idx := s.selectedIndex()
	if idx < 0 {
		return ErrSelectedPlaceMissing
	}
	n := len(s.Places)
	s.SelectedPlace = s.Places[((idx+delta)%n+n)%n]
	return nil
}

func (s *Suggestion) selectedIndex() int {
	for i, p := range s.Places {
		if p.SameAs(s.SelectedPlace) {
			return i
		}
	}
	return -1
}

// RankingSummary describes how the winning itinerary was chosen.
type RankingSummary struct {
	RouteDistanceKm       float64         `json:"route_distance_km"`
	AvgRelevance          float64         `json:"avg_relevance"`
	Cost                  float64         `json:"cost"`
	CombinationsEvaluated int             `json:"combinations_evaluated"`
	DuplicatesRemoved     int             `json:"duplicates_removed"`
	DroppedCategories     []PlaceCategory `json:"dropped_categories,omitempty"`
}

// Session is one generated itinerary, kept for the client to cycle through.
type Session struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	CreatedAt   time.Time      `json:"created_at"`
	TotalCount  *uint32        `json:"total_count,omitempty"`
	Suggestions []Suggestion   `json:"suggestions"`
	Ranking     RankingSummary `json:"ranking"`
}

// PromptRequest is the body of a natural-language itinerary request.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// CatalogTags lists the tag vocabulary of one place type.
type CatalogTags struct {
	PlaceType PlaceCategory `json:"place_type"`
	Tags      []string      `json:"tags"`
}
