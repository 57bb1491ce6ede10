//go:build integration

package generativeAI

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestAIClientGenerateContentIntegration(t *testing.T) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GOOGLE_GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := NewAIClient(ctx, apiKey, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, client.Model())

	text, err := client.GenerateContent(ctx, "Reply with the single word: pong", &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
