package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

// BuildSuggestions turns ranked slots into the externally visible shape. Every
// suggestion lists the slot candidates best first and selects the winner.
func BuildSuggestions(slots []Slot) ([]types.Suggestion, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: nothing to suggest", types.ErrNoValidItinerary)
	}

	out := make([]types.Suggestion, 0, len(slots))
	for _, slot := range slots {
		if len(slot.Candidates) == 0 {
			return nil, &types.CategoryError{Index: slot.PlaceInfoIndex, Category: slot.Info.PlaceType, Err: types.ErrNoCandidatesForCategory}
		}
		places := make([]types.Place, len(slot.Candidates))
		found := false
		for i, c := range slot.Candidates {
			places[i] = c.Place
			if c.Place.SameAs(slot.Winner.Place) {
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("place_infos[%d]: %w", slot.PlaceInfoIndex, types.ErrSelectedPlaceMissing)
		}
		out = append(out, types.Suggestion{
			Places:        places,
			SelectedPlace: slot.Winner.Place,
		})
	}
	return out, nil
}
