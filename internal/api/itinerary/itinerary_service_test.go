package itinerary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/go-poi-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-itinerary/internal/api/session"
	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

type MockInterpreter struct {
	mock.Mock
}

func (m *MockInterpreter) Interpret(ctx context.Context, prompt string) (*types.QueryInterpretation, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.QueryInterpretation), args.Error(1)
}

type testCatalog struct {
	staticPlaces
}

func (testCatalog) TagPools() []types.CatalogTags {
	return []types.CatalogTags{{PlaceType: types.PlaceCategoryMuseum, Tags: []string{"a", "b"}}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, interp *MockInterpreter) (*ServiceImpl, *session.CacheRepository) {
	t.Helper()
	m, err := metrics.NewAppMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	repo := session.NewCacheRepository(time.Minute, time.Minute, discardLogger())
	svc := NewServiceImpl(testCatalog{endToEndCatalog()}, newTestRanker(t), nil, repo, m, discardLogger())
	if interp != nil {
		svc.interpreter = interp
	}
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("IRST", 12600)) }
	return svc, repo
}

func museumAndRestaurant() types.QueryInterpretation {
	return types.QueryInterpretation{PlaceInfos: []types.PlaceInfo{
		{PlaceType: types.PlaceCategoryMuseum, Tags: []string{"a", "b"}},
		{PlaceType: types.PlaceCategoryRestaurant, Tags: []string{"c"}},
	}}
}

func TestServiceRankStoresSession(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()

	sess, err := svc.Rank(ctx, museumAndRestaurant())
	require.NoError(t, err)
	assert.NotEqual(t, "", sess.ID.String())
	assert.Equal(t, "موزه، رستوران", sess.Title)
	assert.Equal(t, time.UTC, sess.CreatedAt.Location())
	assert.Equal(t, 6, sess.CreatedAt.Hour())
	require.Len(t, sess.Suggestions, 2)
	assert.Equal(t, "M1", sess.Suggestions[0].SelectedPlace.Title)
	assert.Equal(t, 2, sess.Ranking.CombinationsEvaluated)

	stored, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Suggestions, stored.Suggestions)
}

func TestServiceRankEchoesTotalCount(t *testing.T) {
	svc, _ := newTestService(t, nil)
	q := museumAndRestaurant()
	five := uint32(5)
	q.TotalCount = &five

	sess, err := svc.Rank(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, sess.TotalCount)
	assert.EqualValues(t, 5, *sess.TotalCount)
	assert.Len(t, sess.Suggestions, 2)
}

func TestServiceRankNoItinerary(t *testing.T) {
	svc, repo := newTestService(t, nil)
	q := types.QueryInterpretation{PlaceInfos: []types.PlaceInfo{
		{PlaceType: types.PlaceCategoryHistorical, Tags: []string{"a"}},
	}}

	_, err := svc.Rank(context.Background(), q)
	assert.ErrorIs(t, err, types.ErrNoValidItinerary)
	assert.Zero(t, repo.Count())
}

func TestServiceRankCancelledContext(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Rank(ctx, museumAndRestaurant())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServiceRankPrompt(t *testing.T) {
	interp := new(MockInterpreter)
	q := museumAndRestaurant()
	interp.On("Interpret", mock.Anything, "I want a museum   and\nthen lunch").Return(&q, nil).Once()

	svc, _ := newTestService(t, interp)
	sess, err := svc.RankPrompt(context.Background(), "I want a museum   and\nthen lunch")
	require.NoError(t, err)
	assert.Equal(t, "I want a museum and then lunch", sess.Title)
	assert.Len(t, sess.Suggestions, 2)
	interp.AssertExpectations(t)
}

func TestServiceRankPromptErrors(t *testing.T) {
	interp := new(MockInterpreter)
	upstream := errors.Join(types.ErrInterpretationFailed, errors.New("quota"))
	interp.On("Interpret", mock.Anything, mock.Anything).Return(nil, upstream)

	svc, _ := newTestService(t, interp)
	_, err := svc.RankPrompt(context.Background(), "anything")
	assert.ErrorIs(t, err, types.ErrInterpretationFailed)

	noLLM, _ := newTestService(t, nil)
	_, err = noLLM.RankPrompt(context.Background(), "anything")
	assert.ErrorIs(t, err, types.ErrInterpreterUnavailable)
}

func TestTitleFromPrompt(t *testing.T) {
	assert.Equal(t, "short", titleFromPrompt("  short "))
	long := ""
	for i := 0; i < 100; i++ {
		long += "م"
	}
	title := titleFromPrompt(long)
	assert.Equal(t, maxTitleRunes+1, len([]rune(title)))
}
