package itinerary

import (
	"cmp"
	"slices"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

// ScorePlace counts the distinct tags shared by the place and the requested
// tag set.
func ScorePlace(place types.Place, tags []string) int {
	if len(place.Tags) == 0 || len(tags) == 0 {
		return 0
	}
	wanted := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		wanted[t] = struct{}{}
	}
	seen := make(map[string]struct{}, len(place.Tags))
	score := 0
	for _, t := range place.Tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := wanted[t]; ok {
			score++
		}
	}
	return score
}

// FilterCandidates returns every place of the requested type sharing at least
// one tag with the request, in catalog order.
func FilterCandidates(info types.PlaceInfo, places []types.Place) []types.PlaceScoring {
	var out []types.PlaceScoring
	for _, p := range places {
		if p.Type != info.PlaceType {
			continue
		}
		if score := ScorePlace(p, info.Tags); score > 0 {
			out = append(out, types.PlaceScoring{Place: p, Score: score})
		}
	}
	return out
}

// topCandidates orders candidates by score, highest first, keeping catalog
// order among equal scores, and keeps at most limit of them. A limit of zero
// or less keeps everything.
func topCandidates(candidates []types.PlaceScoring, limit int) []types.PlaceScoring {
	ordered := slices.Clone(candidates)
	slices.SortStableFunc(ordered, func(a, b types.PlaceScoring) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}
