package llmInteraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-poi-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

var _ Interpreter = (*InterpreterImpl)(nil)

// ContentGenerator is the slice of the Gemini client the interpreter needs.
// *generativeAI.AIClient satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// TagPoolSource provides the tag vocabulary per place type.
type TagPoolSource interface {
	TagPools() []types.CatalogTags
}

// Interpreter turns a free-text request into a QueryInterpretation.
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (*types.QueryInterpretation, error)
}

type Options struct {
	Temperature     float32
	MaxOutputTokens int32
}

type InterpreterImpl struct {
	logger    *slog.Logger
	generator ContentGenerator
	config    *genai.GenerateContentConfig
	metrics   *metrics.AppMetrics
}

// NewInterpreter builds the generation config once: the tag pools are fixed
// for the lifetime of the catalog.
func NewInterpreter(generator ContentGenerator, tags TagPoolSource, opts Options, m *metrics.AppMetrics, logger *slog.Logger) *InterpreterImpl {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: getSystemPrompt(tags.TagPools())}}},
		Temperature:       genai.Ptr[float32](opts.Temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    interpretationSchema(),
	}
	if opts.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = opts.MaxOutputTokens
	}
	return &InterpreterImpl{
		logger:    logger,
		generator: generator,
		config:    cfg,
		metrics:   m,
	}
}

func (l *InterpreterImpl) Interpret(ctx context.Context, prompt string) (*types.QueryInterpretation, error) {
	ctx, span := otel.Tracer("LlmInteractionService").Start(ctx, "Interpret", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		err := errors.New("prompt must not be empty")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	start := time.Now()
	q, err := l.interpret(ctx, prompt)
	l.metrics.InterpretationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		l.metrics.InterpretationErrorsTotal.Add(ctx, 1)
		l.logger.ErrorContext(ctx, "Failed to interpret prompt", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "interpretation failed")
		return nil, fmt.Errorf("%w: %w", types.ErrInterpretationFailed, err)
	}

	span.SetAttributes(attribute.Int("place_infos.count", len(q.PlaceInfos)))
	span.SetStatus(codes.Ok, "")
	l.logger.DebugContext(ctx, "Prompt interpreted",
		slog.Int("place_infos", len(q.PlaceInfos)),
		slog.Any("total_count", q.TotalCount))
	return q, nil
}

func (l *InterpreterImpl) interpret(ctx context.Context, prompt string) (*types.QueryInterpretation, error) {
	text, err := l.generator.GenerateContent(ctx, prompt, l.config)
	if err != nil {
		return nil, err
	}
	return parseInterpretation(text)
}
