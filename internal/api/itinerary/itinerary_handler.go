package itinerary

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-itinerary/internal/api"
	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// RankItinerary godoc
// @Summary      Rank an itinerary from a structured request
// @Description  Picks one place per requested type, balancing tag relevance against route length, and stores the result as a session.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        request body types.QueryInterpretation true "Requested place types and tags"
// @Success      201 {object} types.Session
// @Failure      400 {object} api.ErrorBody
// @Failure      404 {object} api.ErrorBody "No itinerary satisfies the request"
// @Failure      422 {object} api.ErrorBody "Unknown place type or request too broad"
// @Router       /itinerary/rank [post]
func (h *HandlerImpl) RankItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "RankItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itinerary/rank"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RankItinerary"))

	var req types.QueryInterpretation
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		status := http.StatusBadRequest
		if errors.Is(err, types.ErrUnknownPlaceType) {
			status = http.StatusUnprocessableEntity
		}
		api.ErrorResponse(w, r, status, err.Error())
		return
	}

	sess, err := h.service.Rank(ctx, req)
	if err != nil {
		h.writeError(w, r, span, l, err)
		return
	}

	span.SetAttributes(attribute.String("session.id", sess.ID.String()))
	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusCreated, sess)
}

// PromptItinerary godoc
// @Summary      Rank an itinerary from free text
// @Description  Interprets the prompt with the language model, then ranks as /itinerary/rank does.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        request body types.PromptRequest true "Natural-language request"
// @Success      201 {object} types.Session
// @Failure      400 {object} api.ErrorBody
// @Failure      404 {object} api.ErrorBody
// @Failure      502 {object} api.ErrorBody "Language model failure"
// @Failure      503 {object} api.ErrorBody "Language model not configured"
// @Router       /itinerary/prompt [post]
func (h *HandlerImpl) PromptItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "PromptItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itinerary/prompt"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PromptItinerary"))

	var req types.PromptRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		span.SetStatus(codes.Error, "empty prompt")
		api.ErrorResponse(w, r, http.StatusBadRequest, "prompt is required")
		return
	}

	sess, err := h.service.RankPrompt(ctx, req.Prompt)
	if err != nil {
		h.writeError(w, r, span, l, err)
		return
	}

	span.SetAttributes(attribute.String("session.id", sess.ID.String()))
	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusCreated, sess)
}

// GetCatalogTags godoc
// @Summary      List tag vocabularies
// @Description  Returns the tag pool of every place type.
// @Tags         Catalog
// @Produce      json
// @Success      200 {array} types.CatalogTags
// @Router       /catalog/tags [get]
func (h *HandlerImpl) GetCatalogTags(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetCatalogTags", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/catalog/tags"),
	))
	defer span.End()

	api.WriteJSONResponse(w, r, http.StatusOK, h.service.TagPools(ctx))
}

func (h *HandlerImpl) writeError(w http.ResponseWriter, r *http.Request, span trace.Span, l *slog.Logger, err error) {
	status := api.StatusForError(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, http.StatusText(status))
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "Itinerary request failed", slog.Any("error", err), slog.Int("status", status))
	} else {
		l.InfoContext(r.Context(), "Itinerary request rejected", slog.Any("error", err), slog.Int("status", status))
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal Server Error"
	}
	api.ErrorResponse(w, r, status, message)
}
