package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSession() *types.Session {
	m1 := types.Place{Title: "M1", Type: types.PlaceCategoryMuseum}
	m2 := types.Place{Title: "M2", Type: types.PlaceCategoryMuseum}
	m3 := types.Place{Title: "M3", Type: types.PlaceCategoryMuseum}
	r1 := types.Place{Title: "R1", Type: types.PlaceCategoryRestaurant}
	return &types.Session{
		ID:        uuid.New(),
		Title:     "test",
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Suggestions: []types.Suggestion{
			{Places: []types.Place{m1, m2, m3}, SelectedPlace: m1},
			{Places: []types.Place{r1}, SelectedPlace: r1},
		},
	}
}

func TestCacheRepositorySaveGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepository(time.Minute, time.Minute, testLogger())
	s := testSession()

	require.NoError(t, repo.Save(ctx, s))
	assert.Equal(t, 1, repo.Count())

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "M1", got.Suggestions[0].SelectedPlace.Title)

	// mutating the returned copy must not leak into the store
	require.NoError(t, got.Suggestions[0].Next())
	again, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "M1", again.Suggestions[0].SelectedPlace.Title)

	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, types.ErrSessionNotFound)

	assert.Error(t, repo.Save(ctx, &types.Session{}))
}

func TestCacheRepositoryCycle(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepository(time.Minute, time.Minute, testLogger())
	s := testSession()
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Cycle(ctx, s.ID, 0, Next)
	require.NoError(t, err)
	assert.Equal(t, "M2", got.Suggestions[0].SelectedPlace.Title)

	got, err = repo.Cycle(ctx, s.ID, 0, Prev)
	require.NoError(t, err)
	assert.Equal(t, "M1", got.Suggestions[0].SelectedPlace.Title)

	got, err = repo.Cycle(ctx, s.ID, 0, Prev)
	require.NoError(t, err)
	assert.Equal(t, "M3", got.Suggestions[0].SelectedPlace.Title, "prev wraps to the last place")

	got, err = repo.Cycle(ctx, s.ID, 1, Next)
	require.NoError(t, err)
	assert.Equal(t, "R1", got.Suggestions[1].SelectedPlace.Title, "single place stays selected")

	stored, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "M3", stored.Suggestions[0].SelectedPlace.Title)

	_, err = repo.Cycle(ctx, s.ID, 2, Next)
	assert.ErrorIs(t, err, types.ErrSuggestionNotFound)
	_, err = repo.Cycle(ctx, s.ID, -1, Next)
	assert.ErrorIs(t, err, types.ErrSuggestionNotFound)
	_, err = repo.Cycle(ctx, uuid.New(), 0, Next)
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
}

func TestCacheRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepository(20*time.Millisecond, time.Hour, testLogger())
	s := testSession()
	require.NoError(t, repo.Save(ctx, s))

	time.Sleep(40 * time.Millisecond)
	_, err := repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
	_, err = repo.Cycle(ctx, s.ID, 0, Next)
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("next")
	require.NoError(t, err)
	assert.Equal(t, Next, d)
	d, err = ParseDirection("prev")
	require.NoError(t, err)
	assert.Equal(t, Prev, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func newTestRouter(h *HandlerImpl) http.Handler {
	r := chi.NewRouter()
	r.Get("/sessions/{sessionID}", h.GetSession)
	r.Post("/sessions/{sessionID}/suggestions/{index}/{direction}", h.CycleSuggestion)
	return r
}

func TestHandlerGetAndCycle(t *testing.T) {
	repo := NewCacheRepository(time.Minute, time.Minute, testLogger())
	s := testSession()
	require.NoError(t, repo.Save(context.Background(), s))
	router := newTestRouter(NewHandlerImpl(repo, testLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/"+s.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got types.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, s.ID, got.ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+s.ID.String()+"/suggestions/0/next", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "M2", got.Suggestions[0].SelectedPlace.Title)
}

func TestHandlerErrors(t *testing.T) {
	repo := NewCacheRepository(time.Minute, time.Minute, testLogger())
	s := testSession()
	require.NoError(t, repo.Save(context.Background(), s))
	router := newTestRouter(NewHandlerImpl(repo, testLogger()))

	cases := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"bad uuid", http.MethodGet, "/sessions/not-a-uuid", http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/sessions/" + uuid.NewString(), http.StatusNotFound},
		{"bad index", http.MethodPost, "/sessions/" + s.ID.String() + "/suggestions/x/next", http.StatusBadRequest},
		{"bad direction", http.MethodPost, "/sessions/" + s.ID.String() + "/suggestions/0/up", http.StatusBadRequest},
		{"index out of range", http.MethodPost, "/sessions/" + s.ID.String() + "/suggestions/9/next", http.StatusNotFound},
		{"cycle unknown session", http.MethodPost, "/sessions/" + uuid.NewString() + "/suggestions/0/prev", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
