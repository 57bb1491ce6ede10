package types

import (
	"encoding/json"
	"fmt"
)

// PlaceCategory is the closed set of place types the itinerary core knows about.
type PlaceCategory int

const (
	PlaceCategoryMuseum PlaceCategory = iota + 1
	PlaceCategoryHistorical
	PlaceCategoryRestaurant
)

// placeCategoryLabels holds the localized label of every category. The labels
// are what the catalog documents and the LLM use on the wire.
var placeCategoryLabels = map[PlaceCategory]string{
	PlaceCategoryMuseum:     "موزه",
	PlaceCategoryHistorical: "مکان تاریخی",
	PlaceCategoryRestaurant: "رستوران",
}

var placeCategoriesByLabel = func() map[string]PlaceCategory {
	m := make(map[string]PlaceCategory, len(placeCategoryLabels))
	for c, label := range placeCategoryLabels {
		m[label] = c
	}
	return m
}()

// PlaceCategories returns the canonical categories in declaration order.
func PlaceCategories() []PlaceCategory {
	return []PlaceCategory{PlaceCategoryMuseum, PlaceCategoryHistorical, PlaceCategoryRestaurant}
}

// PlaceCategoryLabels returns the localized labels in declaration order.
func PlaceCategoryLabels() []string {
	cats := PlaceCategories()
	labels := make([]string, 0, len(cats))
	for _, c := range cats {
		labels = append(labels, c.String())
	}
	return labels
}

// ParsePlaceCategory maps a localized label back to its category.
func ParsePlaceCategory(label string) (PlaceCategory, error) {
	c, ok := placeCategoriesByLabel[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlaceType, label)
	}
	return c, nil
}

func (c PlaceCategory) String() string {
	if label, ok := placeCategoryLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("PlaceCategory(%d)", int(c))
}

// Valid reports whether c is one of the canonical categories.
func (c PlaceCategory) Valid() bool {
	_, ok := placeCategoryLabels[c]
	return ok
}

func (c PlaceCategory) MarshalJSON() ([]byte, error) {
	label, ok := placeCategoryLabels[c]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlaceType, int(c))
	}
	return json.Marshal(label)
}

func (c *PlaceCategory) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("place type must be a string label: %w", err)
	}
	parsed, err := ParsePlaceCategory(label)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Coordinate is a geographic point in (longitude, latitude) order.
type Coordinate struct {
	X float64 `json:"x"` // longitude
	Y float64 `json:"y"` // latitude
}

// Place is a single point of interest loaded from a catalog document.
type Place struct {
	Title         string        `json:"title"`
	Category      string        `json:"category"`
	Type          PlaceCategory `json:"type"`
	Region        string        `json:"region"`
	Neighbourhood string        `json:"neighbourhood"`
	Location      Coordinate    `json:"location"`
	Tags          []string      `json:"tags"`
}

// PlaceIdentity is the equality contract for places: two places with the same
// title and type are the same place, whatever their other fields say.
// Itinerary de-duplication relies on this.
type PlaceIdentity struct {
	Title string
	Type  PlaceCategory
}

func (p Place) Identity() PlaceIdentity {
	return PlaceIdentity{Title: p.Title, Type: p.Type}
}

// SameAs compares two places by identity only.
func (p Place) SameAs(other Place) bool {
	return p.Identity() == other.Identity()
}

// CatalogDocument is one static catalog: the tag vocabulary of a place type and
// its places.
type CatalogDocument struct {
	TagPool []string `json:"tag_pool"`
	Items   []Place  `json:"items"`
}

// PlaceScoring is a candidate place annotated with its tag overlap score.
type PlaceScoring struct {
	Place Place `json:"place"`
	Score int   `json:"score"`
}

// Equal compares the place identity and the score.
func (s PlaceScoring) Equal(other PlaceScoring) bool {
	return s.Place.SameAs(other.Place) && s.Score == other.Score
}
