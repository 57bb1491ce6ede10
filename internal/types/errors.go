package types

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPlaceType         = errors.New("unknown place type")
	ErrPlaceTypeMismatch        = errors.New("place type does not match its catalog document")
	ErrNoCandidatesForCategory  = errors.New("no candidates for category")
	ErrNoValidItinerary         = errors.New("no valid itinerary")
	ErrCombinationSpaceTooLarge = errors.New("combination space too large")
	ErrSelectedPlaceMissing     = errors.New("selected place is not among the suggestion places")
	ErrSessionNotFound          = errors.New("session not found")
	ErrSuggestionNotFound       = errors.New("suggestion index out of range")
	ErrInterpretationFailed     = errors.New("request interpretation failed")
	ErrInterpreterUnavailable   = errors.New("request interpreter is not configured")
)

// CategoryError reports a requested slot that produced no candidates.
type CategoryError struct {
	Index    int
	Category PlaceCategory
	Err      error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("place_infos[%d] (%s): %v", e.Index, e.Category, e.Err)
}

func (e *CategoryError) Unwrap() error { return e.Err }

// CombinationSpaceError reports a request whose candidate product exceeds the
// configured ceiling. Size is -1 when the product overflowed.
type CombinationSpaceError struct {
	Size  int
	Limit int
}

func (e *CombinationSpaceError) Error() string {
	if e.Size < 0 {
		return fmt.Sprintf("%v: product overflows, limit %d; narrow the request", ErrCombinationSpaceTooLarge, e.Limit)
	}
	return fmt.Sprintf("%v: %d combinations, limit %d; narrow the request", ErrCombinationSpaceTooLarge, e.Size, e.Limit)
}

func (e *CombinationSpaceError) Unwrap() error { return ErrCombinationSpaceTooLarge }
