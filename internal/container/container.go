package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-poi-itinerary/app/db"
	"github.com/FACorreiaa/go-poi-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-itinerary/config"
	"github.com/FACorreiaa/go-poi-itinerary/internal/api/catalog"
	generativeAI "github.com/FACorreiaa/go-poi-itinerary/internal/api/generative_ai"
	"github.com/FACorreiaa/go-poi-itinerary/internal/api/itinerary"
	llmInteraction "github.com/FACorreiaa/go-poi-itinerary/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-poi-itinerary/internal/api/session"
	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	Catalog          *catalog.Catalog
	Sessions         *session.CacheRepository
	ItineraryHandler *itinerary.HandlerImpl
	SessionHandler   *session.HandlerImpl
}

// NewContainer loads the catalog from the configured source and wires the
// services and handlers around it. Postgres is only touched when the catalog
// lives there.
func NewContainer(ctx context.Context, cfg *config.Config, m *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	src, err := c.catalogSource(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	cat, err := catalog.Load(ctx, src, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	m.CatalogPlacesLoaded.Record(ctx, int64(cat.Len()))
	c.Catalog = cat

	ranker, err := itinerary.NewRanker(RankingPolicy(cfg))
	if err != nil {
		c.Close()
		return nil, err
	}

	var interpreter llmInteraction.Interpreter
	if cfg.LLM.Enabled {
		aiClient, err := generativeAI.NewAIClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			// ranking from structured requests still works without the model
			logger.WarnContext(ctx, "Language model disabled", slog.Any("error", err))
		} else {
			interpreter = llmInteraction.NewInterpreter(aiClient, cat, llmInteraction.Options{
				Temperature:     cfg.LLM.Temperature,
				MaxOutputTokens: cfg.LLM.MaxOutputTokens,
			}, m, logger)
		}
	}

	c.Sessions = session.NewCacheRepository(cfg.Sessions.TTL, cfg.Sessions.CleanupInterval, logger)
	itineraryService := itinerary.NewServiceImpl(cat, ranker, interpreter, c.Sessions, m, logger)
	c.ItineraryHandler = itinerary.NewHandlerImpl(itineraryService, logger)
	c.SessionHandler = session.NewHandlerImpl(c.Sessions, logger)

	return c, nil
}

// RankingPolicy maps the ranking config section onto the ranker policy.
func RankingPolicy(cfg *config.Config) itinerary.Policy {
	r := cfg.Ranking
	return itinerary.Policy{
		DistanceWeight:           r.DistanceWeight,
		RelevanceWeight:          r.RelevanceWeight,
		RelevanceDivisor:         r.RelevanceDivisor,
		MaxDistanceKm:            r.MaxDistanceKm,
		MaxCandidatesPerCategory: r.MaxCandidatesPerCategory,
		MaxCombinations:          r.MaxCombinations,
		PartialCoverage:          r.PartialCoverage,
	}
}

func (c *Container) catalogSource(ctx context.Context) (catalog.Source, error) {
	fileSource := catalog.NewFileSource(map[types.PlaceCategory]string{
		types.PlaceCategoryHistorical: c.Config.Catalog.HistoricalPath,
		types.PlaceCategoryMuseum:     c.Config.Catalog.MuseumPath,
		types.PlaceCategoryRestaurant: c.Config.Catalog.RestaurantPath,
	}, c.Logger)

	switch c.Config.Catalog.Source {
	case "file":
		return fileSource, nil
	case "postgres":
		dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
			return nil, err
		}
		pool, err := database.Init(ctx, dbConfig, c.Logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		if !database.WaitForDB(ctx, pool, c.Logger) {
			return nil, fmt.Errorf("database not ready")
		}
		src := catalog.NewPostgresSource(pool, c.Logger)
		if c.Config.Catalog.Seed {
			if err := seedCatalog(ctx, src, fileSource); err != nil {
				return nil, err
			}
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", c.Config.Catalog.Source)
	}
}

// catalogSeeder is satisfied by *catalog.PostgresSource.
type catalogSeeder interface {
	Seed(ctx context.Context, documents map[types.PlaceCategory]types.CatalogDocument) (int, error)
}

// seedCatalog copies the documents of from into dst. dst ignores the call
// when it already holds places.
func seedCatalog(ctx context.Context, dst catalogSeeder, from catalog.Source) error {
	documents, err := from.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read seed documents: %w", err)
	}
	if _, err := dst.Seed(ctx, documents); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
