package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

// Catalog is the read-only set of places the itinerary core selects from.
// It is built once at startup and is safe to share between goroutines.
type Catalog struct {
	documents map[types.PlaceCategory]types.CatalogDocument
	places    []types.Place
}

// New builds a catalog from per-category documents. Places are flattened in
// historical, museum, restaurant order.
func New(documents map[types.PlaceCategory]types.CatalogDocument) (*Catalog, error) {
	for category := range documents {
		if !category.Valid() {
			return nil, fmt.Errorf("document key %d: %w", int(category), types.ErrUnknownPlaceType)
		}
	}

	c := &Catalog{documents: make(map[types.PlaceCategory]types.CatalogDocument, len(documents))}

	for _, category := range loadOrder {
		doc, ok := documents[category]
		if !ok {
			continue
		}
		items := make([]types.Place, 0, len(doc.Items))
		for i, p := range doc.Items {
			if !p.Type.Valid() {
				return nil, fmt.Errorf("%s document item %d (%q): %w", category, i, p.Title, types.ErrUnknownPlaceType)
			}
			if p.Type != category {
				return nil, fmt.Errorf("%s document item %d (%q) is a %s: %w", category, i, p.Title, p.Type, types.ErrPlaceTypeMismatch)
			}
			if p.Tags == nil {
				p.Tags = []string{}
			}
			items = append(items, p)
		}
		c.documents[category] = types.CatalogDocument{
			TagPool: slices.Clone(doc.TagPool),
			Items:   items,
		}
		c.places = append(c.places, items...)
	}

	return c, nil
}

// loadOrder fixes the concatenation order of the flat place list.
var loadOrder = []types.PlaceCategory{
	types.PlaceCategoryHistorical,
	types.PlaceCategoryMuseum,
	types.PlaceCategoryRestaurant,
}

// Places returns every place of every category. The slice is shared; callers
// must not modify it.
func (c *Catalog) Places() []types.Place {
	return c.places
}

// Len returns the number of places.
func (c *Catalog) Len() int {
	return len(c.places)
}

// TagPool returns the tag vocabulary of one category.
func (c *Catalog) TagPool(category types.PlaceCategory) []string {
	pool := c.documents[category].TagPool
	if pool == nil {
		return []string{}
	}
	return slices.Clone(pool)
}

// TagPools returns the tag vocabulary of every canonical category.
func (c *Catalog) TagPools() []types.CatalogTags {
	out := make([]types.CatalogTags, 0, len(c.documents))
	for _, category := range types.PlaceCategories() {
		out = append(out, types.CatalogTags{
			PlaceType: category,
			Tags:      c.TagPool(category),
		})
	}
	return out
}

// Load reads the documents from src and builds the catalog.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Catalog, error) {
	ctx, span := otel.Tracer("Catalog").Start(ctx, "Load")
	defer span.End()

	documents, err := src.Load(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load catalog documents", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog source failed")
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	c, err := New(documents)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid catalog documents", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid catalog")
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	span.SetAttributes(attribute.Int("catalog.places", c.Len()))
	span.SetStatus(codes.Ok, "Catalog loaded")
	logger.InfoContext(ctx, "Catalog loaded", slog.Int("places", c.Len()), slog.Int("documents", len(documents)))
	return c, nil
}
