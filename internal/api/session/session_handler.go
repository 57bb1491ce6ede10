package session

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-itinerary/internal/api"
)

type HandlerImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewHandlerImpl(repo Repository, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		repo:   repo,
		logger: logger,
	}
}

// GetSession godoc
// @Summary      Get an itinerary session
// @Description  Returns a previously generated session with its current selections.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID path string true "Session ID (UUID)"
// @Success      200 {object} types.Session
// @Failure      400 {object} api.ErrorBody
// @Failure      404 {object} api.ErrorBody
// @Router       /sessions/{sessionID} [get]
func (h *HandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SessionHandler").Start(r.Context(), "GetSession", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/sessions/{sessionID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetSession"))

	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid session ID", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid session id")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}
	span.SetAttributes(attribute.String("session.id", id.String()))

	s, err := h.repo.Get(ctx, id)
	if err != nil {
		l.InfoContext(ctx, "Session lookup failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "session lookup failed")
		api.ErrorResponse(w, r, api.StatusForError(err), err.Error())
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, s)
}

// CycleSuggestion godoc
// @Summary      Cycle a suggestion
// @Description  Selects the next or previous candidate of one suggestion, wrapping around.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID path string true "Session ID (UUID)"
// @Param        index     path int    true "Suggestion index"
// @Param        direction path string true "next or prev" Enums(next, prev)
// @Success      200 {object} types.Session
// @Failure      400 {object} api.ErrorBody
// @Failure      404 {object} api.ErrorBody
// @Router       /sessions/{sessionID}/suggestions/{index}/{direction} [post]
func (h *HandlerImpl) CycleSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SessionHandler").Start(r.Context(), "CycleSuggestion", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/sessions/{sessionID}/suggestions/{index}/{direction}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CycleSuggestion"))

	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		span.SetStatus(codes.Error, "invalid session id")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		span.SetStatus(codes.Error, "invalid index")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Suggestion index must be an integer")
		return
	}
	dir, err := ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		span.SetStatus(codes.Error, "invalid direction")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(
		attribute.String("session.id", id.String()),
		attribute.Int("suggestion.index", index),
		attribute.String("suggestion.direction", string(dir)),
	)

	s, err := h.repo.Cycle(ctx, id, index, dir)
	if err != nil {
		l.InfoContext(ctx, "Cycle failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "cycle failed")
		api.ErrorResponse(w, r, api.StatusForError(err), err.Error())
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, s)
}
