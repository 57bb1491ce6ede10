package itinerary

import (
	"math"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

const earthRadiusKm = 6371

// HaversineDistance returns the great-circle distance between two coordinates
// in kilometers.
func HaversineDistance(a, b types.Coordinate) float64 {
	lat1 := a.Y * math.Pi / 180
	lat2 := b.Y * math.Pi / 180
	dlat := (b.Y - a.Y) * math.Pi / 180
	dlon := (b.X - a.X) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// tourDistance sums the legs of a closed loop through the stops in order,
// including the leg from the last stop back to the first.
func tourDistance(stops []types.Coordinate) float64 {
	if len(stops) < 2 {
		return 0
	}
	var total float64
	for i := range stops {
		total += HaversineDistance(stops[i], stops[(i+1)%len(stops)])
	}
	return total
}
