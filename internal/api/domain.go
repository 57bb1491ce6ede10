package api

import (
	"errors"
	"net/http"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Success   bool   `json:"success" example:"false"`
	Error     string `json:"error" example:"no valid itinerary"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusForError maps a domain error to the HTTP status reported to clients.
func StatusForError(err error) int {
	switch {
	// a bad label from the model is an upstream failure, not a client one
	case errors.Is(err, types.ErrInterpretationFailed):
		return http.StatusBadGateway
	case errors.Is(err, types.ErrUnknownPlaceType),
		errors.Is(err, types.ErrCombinationSpaceTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrNoValidItinerary),
		errors.Is(err, types.ErrNoCandidatesForCategory),
		errors.Is(err, types.ErrSessionNotFound),
		errors.Is(err, types.ErrSuggestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInterpreterUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, types.ErrSelectedPlaceMissing):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
