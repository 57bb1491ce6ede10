package llmInteraction

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-poi-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

type staticTags []types.CatalogTags

func (s staticTags) TagPools() []types.CatalogTags { return s }

func testTags() staticTags {
	return staticTags{
		{PlaceType: types.PlaceCategoryHistorical, Tags: []string{"قاجار", "کاخ"}},
		{PlaceType: types.PlaceCategoryMuseum, Tags: []string{"هنر", "تاریخ"}},
		{PlaceType: types.PlaceCategoryRestaurant, Tags: []string{"سنتی", "کباب"}},
	}
}

func newTestInterpreter(t *testing.T, gen ContentGenerator) *InterpreterImpl {
	t.Helper()
	m, err := metrics.NewAppMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewInterpreter(gen, testTags(), Options{Temperature: 0.2, MaxOutputTokens: 1000}, m, logger)
}

func TestInterpretSuccess(t *testing.T) {
	gen := new(MockContentGenerator)
	answer := "```json\n" + `{"place_infos":[{"place_type":"موزه","tags":[" هنر ",""]},{"place_type":"رستوران","tags":["کباب"]}],"total_count":2}` + "\n```"
	gen.On("GenerateContent", mock.Anything, "a museum then kebab", mock.MatchedBy(func(cfg *genai.GenerateContentConfig) bool {
		return cfg.ResponseMIMEType == "application/json" &&
			cfg.ResponseSchema != nil &&
			cfg.MaxOutputTokens == 1000 &&
			cfg.SystemInstruction != nil
	})).Return(answer, nil).Once()

	q, err := newTestInterpreter(t, gen).Interpret(context.Background(), "  a museum then kebab ")
	require.NoError(t, err)
	require.Len(t, q.PlaceInfos, 2)
	assert.Equal(t, types.PlaceCategoryMuseum, q.PlaceInfos[0].PlaceType)
	assert.Equal(t, []string{"هنر"}, q.PlaceInfos[0].Tags)
	assert.Equal(t, types.PlaceCategoryRestaurant, q.PlaceInfos[1].PlaceType)
	require.NotNil(t, q.TotalCount)
	assert.EqualValues(t, 2, *q.TotalCount)
	gen.AssertExpectations(t)
}

func TestInterpretFailures(t *testing.T) {
	cases := map[string]struct {
		answer string
		err    error
	}{
		"generator error":  {err: errors.New("quota exceeded")},
		"not json":         {answer: "I cannot help with that"},
		"unknown label":    {answer: `{"place_infos":[{"place_type":"هتل","tags":["x"]}]}`},
		"no place_infos":   {answer: `{"total_count":3}`},
		"negative count":   {answer: `{"place_infos":[],"total_count":-1}`},
		"wrong field type": {answer: `{"place_infos":{"place_type":"موزه"}}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gen := new(MockContentGenerator)
			gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(tc.answer, tc.err)

			q, err := newTestInterpreter(t, gen).Interpret(context.Background(), "anything")
			assert.Nil(t, q)
			assert.ErrorIs(t, err, types.ErrInterpretationFailed)
		})
	}
}

func TestInterpretEmptyPlaceInfosIsNotAnError(t *testing.T) {
	gen := new(MockContentGenerator)
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(`{"place_infos":[]}`, nil)

	q, err := newTestInterpreter(t, gen).Interpret(context.Background(), "hello")
	require.NoError(t, err)
	assert.Empty(t, q.PlaceInfos)
}

func TestInterpretRejectsBlankPrompt(t *testing.T) {
	gen := new(MockContentGenerator)
	_, err := newTestInterpreter(t, gen).Interpret(context.Background(), "   ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrInterpretationFailed)
	gen.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestSystemPromptListsVocabulary(t *testing.T) {
	prompt := getSystemPrompt(testTags())
	for _, label := range types.PlaceCategoryLabels() {
		assert.Contains(t, prompt, label)
	}
	for _, pool := range testTags() {
		for _, tag := range pool.Tags {
			assert.Contains(t, prompt, tag)
		}
	}
	assert.True(t, strings.Contains(prompt, "total_count"))
}

func TestInterpretationSchema(t *testing.T) {
	s := interpretationSchema()
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"place_infos"}, s.Required)
	item := s.Properties["place_infos"].Items
	require.NotNil(t, item)
	assert.ElementsMatch(t, types.PlaceCategoryLabels(), item.Properties["place_type"].Enum)
	assert.Equal(t, genai.TypeInteger, s.Properties["total_count"].Type)
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("Sure! {\"a\":1} hope that helps"))
	assert.Equal(t, "no json", cleanJSONResponse(" no json "))
}
