package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

var (
	_ Source = (*FileSource)(nil)
	_ Source = (*PostgresSource)(nil)
)

// Source produces the raw catalog documents, one per place category.
type Source interface {
	Load(ctx context.Context) (map[types.PlaceCategory]types.CatalogDocument, error)
}

// FileSource reads one JSON document per category from disk.
type FileSource struct {
	logger *slog.Logger
	paths  map[types.PlaceCategory]string
}

func NewFileSource(paths map[types.PlaceCategory]string, logger *slog.Logger) *FileSource {
	return &FileSource{
		logger: logger,
		paths:  paths,
	}
}

// Load decodes all configured documents concurrently.
func (s *FileSource) Load(ctx context.Context) (map[types.PlaceCategory]types.CatalogDocument, error) {
	ctx, span := otel.Tracer("CatalogFileSource").Start(ctx, "Load", trace.WithAttributes(
		attribute.Int("catalog.documents", len(s.paths)),
	))
	defer span.End()

	var mu sync.Mutex
	documents := make(map[types.PlaceCategory]types.CatalogDocument, len(s.paths))

	g, ctx := errgroup.WithContext(ctx)
	for category, path := range s.paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := readDocument(path)
			if err != nil {
				return fmt.Errorf("%s catalog: %w", category, err)
			}
			s.logger.DebugContext(ctx, "Catalog document decoded",
				slog.String("category", category.String()),
				slog.String("path", path),
				slog.Int("items", len(doc.Items)))

			mu.Lock()
			documents[category] = doc
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed reading catalog documents")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Catalog documents read")
	return documents, nil
}

func readDocument(path string) (types.CatalogDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.CatalogDocument{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var doc types.CatalogDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return types.CatalogDocument{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}

// DBTX is the subset of pgxpool.Pool the Postgres source needs.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresSource reads the catalog from the places and catalog_tag_pool tables.
type PostgresSource struct {
	logger *slog.Logger
	db     DBTX
}

func NewPostgresSource(db DBTX, logger *slog.Logger) *PostgresSource {
	return &PostgresSource{
		logger: logger,
		db:     db,
	}
}

const (
	selectTagPoolQuery = `
        SELECT place_type, tag
        FROM catalog_tag_pool
        ORDER BY place_type, position`

	selectPlacesQuery = `
        SELECT title, category, place_type, region, neighbourhood, lon, lat, tags
        FROM places
        ORDER BY place_type, position`

	placesExistQuery = `SELECT EXISTS (SELECT 1 FROM places)`
)

var (
	tagPoolColumns = []string{"place_type", "position", "tag"}
	placeColumns   = []string{"place_type", "position", "title", "category", "region", "neighbourhood", "lon", "lat", "tags"}
)

func (s *PostgresSource) Load(ctx context.Context) (map[types.PlaceCategory]types.CatalogDocument, error) {
	ctx, span := otel.Tracer("CatalogPostgresSource").Start(ctx, "Load", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Load"))
	documents := make(map[types.PlaceCategory]types.CatalogDocument)

	rows, err := s.db.Query(ctx, selectTagPoolQuery)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query tag pool", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching tag pool: %w", err)
	}
	for rows.Next() {
		var label, tag string
		if err := rows.Scan(&label, &tag); err != nil {
			rows.Close()
			l.ErrorContext(ctx, "Failed to scan tag pool row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning tag pool: %w", err)
		}
		category, err := types.ParsePlaceCategory(label)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("tag pool row: %w", err)
		}
		doc := documents[category]
		doc.TagPool = append(doc.TagPool, tag)
		documents[category] = doc
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error iterating tag pool: %w", err)
	}

	rows, err = s.db.Query(ctx, selectPlacesQuery)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching places: %w", err)
	}
	defer rows.Close()

	var count int
	for rows.Next() {
		var (
			p     types.Place
			label string
		)
		if err := rows.Scan(&p.Title, &p.Category, &label, &p.Region, &p.Neighbourhood,
			&p.Location.X, &p.Location.Y, &p.Tags); err != nil {
			l.ErrorContext(ctx, "Failed to scan place row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning place: %w", err)
		}
		p.Type, err = types.ParsePlaceCategory(label)
		if err != nil {
			return nil, fmt.Errorf("place %q: %w", p.Title, err)
		}
		doc := documents[p.Type]
		doc.Items = append(doc.Items, p)
		documents[p.Type] = doc
		count++
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error iterating places: %w", err)
	}

	span.SetAttributes(attribute.Int("catalog.places", count))
	span.SetStatus(codes.Ok, "Catalog rows read")
	l.DebugContext(ctx, "Catalog rows read", slog.Int("places", count))
	return documents, nil
}

// Seed copies documents into the catalog tables in one transaction. A catalog
// that already has places is left untouched and 0 is returned.
func (s *PostgresSource) Seed(ctx context.Context, documents map[types.PlaceCategory]types.CatalogDocument) (int, error) {
	ctx, span := otel.Tracer("CatalogPostgresSource").Start(ctx, "Seed", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Seed"))

	if _, err := New(documents); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid seed documents")
		return 0, fmt.Errorf("invalid seed documents: %w", err)
	}

	var populated bool
	if err := s.db.QueryRow(ctx, placesExistQuery).Scan(&populated); err != nil {
		l.ErrorContext(ctx, "Failed to check catalog tables", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return 0, fmt.Errorf("database error checking places: %w", err)
	}
	if populated {
		l.InfoContext(ctx, "Catalog tables already populated, skipping seed")
		span.SetStatus(codes.Ok, "Already seeded")
		return 0, nil
	}

	var tagRows, placeRows [][]any
	for _, category := range loadOrder {
		doc, ok := documents[category]
		if !ok {
			continue
		}
		label := category.String()
		for i, tag := range doc.TagPool {
			tagRows = append(tagRows, []any{label, i, tag})
		}
		for i, p := range doc.Items {
			tags := p.Tags
			if tags == nil {
				tags = []string{}
			}
			placeRows = append(placeRows, []any{label, i, p.Title, p.Category, p.Region, p.Neighbourhood,
				p.Location.X, p.Location.Y, tags})
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to start transaction")
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"catalog_tag_pool"}, tagPoolColumns, pgx.CopyFromRows(tagRows)); err != nil {
		l.ErrorContext(ctx, "Failed to copy tag pool", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Copy failed")
		return 0, fmt.Errorf("database error copying tag pool: %w", err)
	}
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"places"}, placeColumns, pgx.CopyFromRows(placeRows))
	if err != nil {
		l.ErrorContext(ctx, "Failed to copy places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Copy failed")
		return 0, fmt.Errorf("database error copying places: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to commit transaction")
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}

	span.SetAttributes(attribute.Int64("catalog.places_seeded", copied))
	span.SetStatus(codes.Ok, "Catalog seeded")
	l.InfoContext(ctx, "Catalog tables seeded", slog.Int64("places", copied), slog.Int("tags", len(tagRows)))
	return int(copied), nil
}
