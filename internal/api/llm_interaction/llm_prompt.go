package llmInteraction

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-poi-itinerary/internal/types"
)

// getSystemPrompt lists the allowed place type labels and every tag pool so
// the model can only answer with vocabulary the catalog knows.
func getSystemPrompt(pools []types.CatalogTags) string {
	var b strings.Builder
	b.WriteString(`
    Analyse the user's request for a one-day city itinerary.
    Identify every kind of place the user mentions. Each must be exactly one of these labels:
`)
	for _, label := range types.PlaceCategoryLabels() {
		fmt.Fprintf(&b, "    - %s\n", label)
	}
	b.WriteString(`
    For each place, choose from the tag list of its type the tags most relevant to the request.
    Copy labels and tags exactly as written; never invent new ones.
    Mention a type once per place the user wants; if they want two museums, list the museum type twice.
    If the user states how many places they want to visit in total, put that number in "total_count".
`)
	for _, pool := range pools {
		fmt.Fprintf(&b, "\n    Tags for %s:[\n%s]\n", pool.PlaceType, strings.Join(pool.Tags, "\n"))
	}
	return b.String()
}

// interpretationSchema constrains the model output to a QueryInterpretation.
func interpretationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"place_infos": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"place_type": {
							Type: genai.TypeString,
							Enum: types.PlaceCategoryLabels(),
						},
						"tags": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
					},
					Required: []string{"place_type", "tags"},
				},
			},
			"total_count": {Type: genai.TypeInteger},
		},
		Required: []string{"place_infos"},
	}
}
