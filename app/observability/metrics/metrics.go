package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItineraryRequestsTotal        metric.Int64Counter
	RankingDurationSeconds        metric.Float64Histogram
	CombinationsEvaluated         metric.Int64Histogram
	NoSuggestionTotal             metric.Int64Counter
	InterpretationDurationSeconds metric.Float64Histogram
	InterpretationErrorsTotal     metric.Int64Counter
	CatalogPlacesLoaded           metric.Int64Gauge
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// NewAppMetrics creates every instrument on meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.ItineraryRequestsTotal, err = meter.Int64Counter(
		"itinerary_requests_total",
		metric.WithDescription("Total number of itinerary ranking requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("itinerary_requests_total: %w", err)
	}

	m.RankingDurationSeconds, err = meter.Float64Histogram(
		"itinerary_ranking_duration_seconds",
		metric.WithDescription("Duration of candidate filtering, combination and selection"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("itinerary_ranking_duration_seconds: %w", err)
	}

	m.CombinationsEvaluated, err = meter.Int64Histogram(
		"itinerary_combinations_evaluated",
		metric.WithDescription("Size of the combination space scored per request"),
		metric.WithUnit("{combination}"),
	)
	if err != nil {
		return nil, fmt.Errorf("itinerary_combinations_evaluated: %w", err)
	}

	m.NoSuggestionTotal, err = meter.Int64Counter(
		"itinerary_no_suggestion_total",
		metric.WithDescription("Requests that produced no itinerary"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("itinerary_no_suggestion_total: %w", err)
	}

	m.InterpretationDurationSeconds, err = meter.Float64Histogram(
		"llm_interpretation_duration_seconds",
		metric.WithDescription("Duration of natural-language request interpretation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("llm_interpretation_duration_seconds: %w", err)
	}

	m.InterpretationErrorsTotal, err = meter.Int64Counter(
		"llm_interpretation_errors_total",
		metric.WithDescription("Failed natural-language interpretations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("llm_interpretation_errors_total: %w", err)
	}

	m.CatalogPlacesLoaded, err = meter.Int64Gauge(
		"catalog_places_loaded",
		metric.WithDescription("Number of places in the loaded catalog"),
		metric.WithUnit("{place}"),
	)
	if err != nil {
		return nil, fmt.Errorf("catalog_places_loaded: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics(serviceName string) {
	once.Do(func() {
		m, err := NewAppMetrics(otel.GetMeterProvider().Meter(serviceName))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
