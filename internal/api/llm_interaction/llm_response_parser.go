package llmInteraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// markdown code fences
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}
	lastBrace := strings.LastIndex(response, "}")
	if lastBrace == -1 || lastBrace <= firstBrace {
		return response
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}

// parseInterpretation decodes a model answer. Tags are trimmed and blank ones
// dropped; a missing place_infos array is an error, an empty one is not.
func parseInterpretation(text string) (*types.QueryInterpretation, error) {
	var q types.QueryInterpretation
	if err := json.Unmarshal([]byte(cleanJSONResponse(text)), &q); err != nil {
		return nil, fmt.Errorf("failed to parse interpretation JSON: %w", err)
	}
	if q.PlaceInfos == nil {
		return nil, errors.New("interpretation has no place_infos")
	}
	for i := range q.PlaceInfos {
		tags := make([]string, 0, len(q.PlaceInfos[i].Tags))
		for _, t := range q.PlaceInfos[i].Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		q.PlaceInfos[i].Tags = tags
	}
	return &q, nil
}
