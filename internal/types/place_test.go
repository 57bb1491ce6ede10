package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceCategoryLabelRoundTrip(t *testing.T) {
	for _, label := range []string{"موزه", "مکان تاریخی", "رستوران"} {
		t.Run(label, func(t *testing.T) {
			c, err := ParsePlaceCategory(label)
			require.NoError(t, err)
			assert.Equal(t, label, c.String())

			data, err := json.Marshal(c)
			require.NoError(t, err)
			var back PlaceCategory
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, c, back)
		})
	}
}

func TestParsePlaceCategoryRejectsUnknownLabel(t *testing.T) {
	_, err := ParsePlaceCategory("پارک")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPlaceType)

	var c PlaceCategory
	err = json.Unmarshal([]byte(`"Museum"`), &c)
	assert.ErrorIs(t, err, ErrUnknownPlaceType)

	err = json.Unmarshal([]byte(`3`), &c)
	assert.Error(t, err)
}

func TestMarshalInvalidCategory(t *testing.T) {
	_, err := json.Marshal(PlaceCategory(42))
	assert.Error(t, err)
	assert.False(t, PlaceCategory(0).Valid())
	assert.True(t, PlaceCategoryMuseum.Valid())
}

func TestQueryInterpretationDecoding(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		raw := `{"place_infos":[{"place_type":"موزه","tags":["a","b"]},{"place_type":"رستوران","tags":["c"]}],"total_count":2}`
		var q QueryInterpretation
		require.NoError(t, json.Unmarshal([]byte(raw), &q))
		require.Len(t, q.PlaceInfos, 2)
		assert.Equal(t, PlaceCategoryMuseum, q.PlaceInfos[0].PlaceType)
		assert.Equal(t, PlaceCategoryRestaurant, q.PlaceInfos[1].PlaceType)
		require.NotNil(t, q.TotalCount)
		assert.EqualValues(t, 2, *q.TotalCount)
	})

	t.Run("unknown place type is rejected", func(t *testing.T) {
		raw := `{"place_infos":[{"place_type":"hotel","tags":["a"]}]}`
		var q QueryInterpretation
		err := json.Unmarshal([]byte(raw), &q)
		assert.ErrorIs(t, err, ErrUnknownPlaceType)
	})
}

func TestPlaceIdentity(t *testing.T) {
	a := Place{Title: "Golestan", Type: PlaceCategoryHistorical, Region: "12", Tags: []string{"x"}}
	b := Place{Title: "Golestan", Type: PlaceCategoryHistorical, Region: "1", Neighbourhood: "Arg"}
	c := Place{Title: "Golestan", Type: PlaceCategoryMuseum}

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(c))
	assert.Equal(t, PlaceIdentity{Title: "Golestan", Type: PlaceCategoryHistorical}, a.Identity())

	assert.True(t, PlaceScoring{Place: a, Score: 2}.Equal(PlaceScoring{Place: b, Score: 2}))
	assert.False(t, PlaceScoring{Place: a, Score: 2}.Equal(PlaceScoring{Place: b, Score: 1}))
}

func TestPlaceDecodingDefaults(t *testing.T) {
	raw := `{"title":"Cafe","category":"کافه","type":"رستوران","region":"منطقه ۶","location":{"x":51.4,"y":35.7}}`
	var p Place
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "", p.Neighbourhood)
	assert.Empty(t, p.Tags)
	assert.Equal(t, Coordinate{X: 51.4, Y: 35.7}, p.Location)
}

func TestSuggestionCycling(t *testing.T) {
	places := []Place{
		{Title: "A", Type: PlaceCategoryMuseum},
		{Title: "B", Type: PlaceCategoryMuseum},
		{Title: "C", Type: PlaceCategoryMuseum},
	}

	t.Run("next wraps", func(t *testing.T) {
		s := Suggestion{Places: places, SelectedPlace: places[2]}
		require.NoError(t, s.Next())
		assert.Equal(t, "A", s.SelectedPlace.Title)
	})

	t.Run("prev wraps", func(t *testing.T) {
		s := Suggestion{Places: places, SelectedPlace: places[0]}
		require.NoError(t, s.Prev())
		assert.Equal(t, "C", s.SelectedPlace.Title)
	})

	t.Run("next then prev is identity", func(t *testing.T) {
		for n := 1; n <= len(places); n++ {
			for i := 0; i < n; i++ {
				s := Suggestion{Places: places[:n], SelectedPlace: places[i]}
				require.NoError(t, s.Next())
				require.NoError(t, s.Prev())
				assert.Equal(t, places[i].Identity(), s.SelectedPlace.Identity())

				require.NoError(t, s.Prev())
				require.NoError(t, s.Next())
				assert.Equal(t, places[i].Identity(), s.SelectedPlace.Identity())
			}
		}
	})

	t.Run("missing selection", func(t *testing.T) {
		s := Suggestion{Places: places, SelectedPlace: Place{Title: "Z", Type: PlaceCategoryMuseum}}
		assert.ErrorIs(t, s.Next(), ErrSelectedPlaceMissing)
		assert.ErrorIs(t, s.Prev(), ErrSelectedPlaceMissing)

		empty := Suggestion{}
		assert.ErrorIs(t, empty.Next(), ErrSelectedPlaceMissing)
	})
}

func TestErrorTypes(t *testing.T) {
	err := &CategoryError{Index: 1, Category: PlaceCategoryRestaurant, Err: ErrNoCandidatesForCategory}
	assert.ErrorIs(t, err, ErrNoCandidatesForCategory)
	assert.Contains(t, err.Error(), "place_infos[1]")

	sizeErr := &CombinationSpaceError{Size: 1000, Limit: 10}
	assert.ErrorIs(t, sizeErr, ErrCombinationSpaceTooLarge)
	assert.Contains(t, sizeErr.Error(), "1000")

	overflow := &CombinationSpaceError{Size: -1, Limit: 10}
	assert.Contains(t, overflow.Error(), "overflows")
}
