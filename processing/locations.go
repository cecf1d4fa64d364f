package processing

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// defaultLocation fills location slots when the caller provides none and
// inference is unavailable.
const defaultLocation = "living room"

type locationsResponse struct {
	Locations []string `json:"locations" jsonschema_description:"One plain filming-location string per segment, e.g. living room, kitchen, office"`
}

var locationsResponseSchema = GenerateSchema[locationsResponse]()

// resolveLocations produces exactly one location label per chunk.
//
// Modes: "single" fills every slot with params.Room; "ai-inspired" asks the
// model for a per-segment location list (BestEffort, one call regardless of
// chunk count); anything else uses params.Locations padded with its last
// entry and truncated to n.
func (g *Generator) resolveLocations(ctx context.Context, params *GenerationParams, n int) []string {
	switch params.SettingMode {
	case "ai-inspired":
		return g.inferLocations(ctx, params, n)
	case "single":
		locations := make([]string, n)
		for i := range locations {
			locations[i] = params.Room
		}
		return locations
	default:
		return padLocations(params.Locations, n)
	}
}

func padLocations(locations []string, n int) []string {
	out := make([]string, 0, n)
	out = append(out, locations...)
	for len(out) < n {
		last := defaultLocation
		if len(out) > 0 && out[len(out)-1] != "" {
			last = out[len(out)-1]
		}
		out = append(out, last)
	}
	return out[:n]
}

// inferLocations asks the model for a realistic location per segment.
// On any failure the run continues with the default location in every slot.
func (g *Generator) inferLocations(ctx context.Context, params *GenerationParams, n int) []string {
	parsed, err := structuredCall[locationsResponse](ctx, g.llm, "location inference", chatRequest{
		System: "You analyze UGC scripts and propose realistic filming locations per segment. Return only JSON.",
		User: fmt.Sprintf(`Script:
%s

Product: %s
Style: %s
Segments Needed: %d

Return a JSON object with a single key 'locations' that is an array of %d plain strings (e.g., living room, kitchen, office).`,
			params.Script, orDefault(params.Product, "N/A"), orDefault(params.Style, "casual"), n, n),
		Temperature:       0.4,
		MaxTokens:         500,
		SchemaName:        "segment_locations",
		SchemaDescription: "Filming locations, one per segment",
		Schema:            locationsResponseSchema,
		Policy:            PolicyBestEffort,
	})
	if err != nil {
		log.Printf("Location inference failed, using default: %v", err)
		fallback := make([]string, n)
		for i := range fallback {
			fallback[i] = defaultLocation
		}
		return fallback
	}

	locations := make([]string, 0, n)
	for _, l := range parsed.Locations {
		locations = append(locations, strings.ToLower(strings.TrimSpace(l)))
	}
	return padLocations(locations, n)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
