package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-poi-itinerary/app/observability/metrics"
	llmInteraction "github.com/FACorreiaa/go-poi-itinerary/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-poi-itinerary/internal/api/session"
	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Catalog is what the service reads from the place catalog.
type Catalog interface {
	PlaceSource
	TagPools() []types.CatalogTags
}

// Service defines the itinerary use cases exposed over HTTP.
type Service interface {
	// Rank builds a session from an already structured request.
	Rank(ctx context.Context, q types.QueryInterpretation) (*types.Session, error)
	// RankPrompt interprets free text first, then ranks.
	RankPrompt(ctx context.Context, prompt string) (*types.Session, error)
	TagPools(ctx context.Context) []types.CatalogTags
}

type ServiceImpl struct {
	logger      *slog.Logger
	catalog     Catalog
	ranker      *Ranker
	interpreter llmInteraction.Interpreter
	sessions    session.Repository
	metrics     *metrics.AppMetrics
	now         func() time.Time
}

// NewServiceImpl wires the service. interpreter may be nil, in which case
// RankPrompt reports ErrInterpreterUnavailable.
func NewServiceImpl(catalog Catalog, ranker *Ranker, interpreter llmInteraction.Interpreter,
	sessions session.Repository, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		catalog:     catalog,
		ranker:      ranker,
		interpreter: interpreter,
		sessions:    sessions,
		metrics:     m,
		now:         time.Now,
	}
}

func (s *ServiceImpl) Rank(ctx context.Context, q types.QueryInterpretation) (*types.Session, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Rank", trace.WithAttributes(
		attribute.Int("place_infos.count", len(q.PlaceInfos)),
	))
	defer span.End()

	return s.rank(ctx, span, q, titleFromInterpretation(q), "structured")
}

func (s *ServiceImpl) RankPrompt(ctx context.Context, prompt string) (*types.Session, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "RankPrompt", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	if s.interpreter == nil {
		span.SetStatus(codes.Error, "no interpreter")
		return nil, types.ErrInterpreterUnavailable
	}

	q, err := s.interpreter.Interpret(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "interpretation failed")
		return nil, err
	}
	return s.rank(ctx, span, *q, titleFromPrompt(prompt), "prompt")
}

func (s *ServiceImpl) TagPools(ctx context.Context) []types.CatalogTags {
	_, span := otel.Tracer("ItineraryService").Start(ctx, "TagPools")
	defer span.End()
	return s.catalog.TagPools()
}

func (s *ServiceImpl) rank(ctx context.Context, span trace.Span, q types.QueryInterpretation, title, source string) (*types.Session, error) {
	l := s.logger.With(slog.String("source", source))
	s.metrics.ItineraryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.ranker.Rank(s.catalog, q)
	s.metrics.RankingDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, types.ErrNoValidItinerary) {
			s.metrics.NoSuggestionTotal.Add(ctx, 1)
			l.InfoContext(ctx, "No itinerary for request", slog.Any("error", err))
		} else {
			l.WarnContext(ctx, "Ranking failed", slog.Any("error", err))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking failed")
		return nil, err
	}
	s.metrics.CombinationsEvaluated.Record(ctx, int64(res.Summary.CombinationsEvaluated))

	suggestions, err := BuildSuggestions(res.Slots)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "building suggestions failed")
		return nil, fmt.Errorf("failed to build suggestions: %w", err)
	}

	sess := &types.Session{
		ID:          uuid.New(),
		Title:       title,
		CreatedAt:   s.now().UTC(),
		TotalCount:  q.TotalCount,
		Suggestions: suggestions,
		Ranking:     res.Summary,
	}
	if q.TotalCount != nil && int(*q.TotalCount) != len(suggestions) {
		l.InfoContext(ctx, "Requested place count differs from itinerary length",
			slog.Int("total_count", int(*q.TotalCount)),
			slog.Int("suggestions", len(suggestions)))
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		l.ErrorContext(ctx, "Failed to store session", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "session store failed")
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	span.SetAttributes(
		attribute.String("session.id", sess.ID.String()),
		attribute.Int("combinations.evaluated", res.Summary.CombinationsEvaluated),
		attribute.Float64("route.distance_km", res.Summary.RouteDistanceKm),
	)
	span.SetStatus(codes.Ok, "")
	l.InfoContext(ctx, "Itinerary ranked",
		slog.String("session_id", sess.ID.String()),
		slog.Int("stops", len(suggestions)),
		slog.Int("combinations", res.Summary.CombinationsEvaluated),
		slog.Int("duplicates_removed", res.Summary.DuplicatesRemoved),
		slog.Float64("route_distance_km", res.Summary.RouteDistanceKm),
		slog.Float64("cost", res.Summary.Cost))
	return sess, nil
}

const maxTitleRunes = 60

func titleFromPrompt(prompt string) string {
	prompt = strings.Join(strings.Fields(prompt), " ")
	if utf8.RuneCountInString(prompt) <= maxTitleRunes {
		return prompt
	}
	runes := []rune(prompt)
	return string(runes[:maxTitleRunes]) + "…"
}

func titleFromInterpretation(q types.QueryInterpretation) string {
	labels := make([]string, 0, len(q.PlaceInfos))
	for _, info := range q.PlaceInfos {
		labels = append(labels, info.PlaceType.String())
	}
	return strings.Join(labels, "، ")
}
