package processing

import (
	"context"
	"fmt"
	"strings"
)

// generateBaseDescriptions makes the single Required call producing the
// descriptive fields reused word-for-word by every segment of the run.
func (g *Generator) generateBaseDescriptions(ctx context.Context, params *GenerationParams, template string) (*BaseDescriptions, error) {
	isEnhanced := params.JSONFormat == "enhanced"

	var subject string
	if params.IsAnimal() {
		subject = fmt.Sprintf("Avatar: ANIMAL\nSpecies: %s\nAnthropomorphic: %s\nVoice Style: %s",
			params.Animal.Species, yesNo(params.Animal.Anthropomorphic), orDefault(params.Animal.VoiceStyle, "narrator"))
	} else {
		subject = fmt.Sprintf("Age: %s\nGender: %s", params.AgeRange, params.Gender)
	}

	setting := fmt.Sprintf("Room: %s", params.Room)
	if params.SettingMode != "single" && params.SettingMode != "" {
		setting = fmt.Sprintf("Locations: %s", orDefault(strings.Join(params.Locations, ", "), "various"))
	}

	wordCounts := baseWordCounts(params.IsAnimal(), isEnhanced)

	user := fmt.Sprintf(`Create base descriptions for:
%s
Setting Mode: %s
%s
Style: %s
Product: %s
Camera Style: %s
Time of Day: %s
Background Life: %s
Product Display: %s
Energy Arc: %s
Narrative Style: %s

Field word count requirements:
%s

These descriptions must be detailed enough to use word-for-word across all segments.`,
		subject,
		orDefault(params.SettingMode, "single"),
		setting,
		params.Style,
		params.Product,
		orDefault(params.CameraStyle, "static-handheld"),
		orDefault(params.TimeOfDay, "morning"),
		yesNo(params.BackgroundLife),
		orDefault(params.ProductStyle, "natural"),
		orDefault(params.EnergyArc, "consistent"),
		orDefault(params.NarrativeStyle, "direct-review"),
		wordCounts)

	system := template + "\n\nGenerate the base descriptions that will remain IDENTICAL across all segments. Follow the exact word count requirements. Return ONLY valid JSON."

	if params.IsAnimal() {
		parsed, err := structuredCall[animalBaseDescriptions](ctx, g.llm, "base description generation", chatRequest{
			System:            system,
			User:              user,
			Temperature:       0.3,
			MaxTokens:         4500,
			SchemaName:        "animal_base_descriptions",
			SchemaDescription: "Frozen animal-avatar descriptions reused by every segment",
			Schema:            animalBaseSchema,
			Policy:            PolicyRequired,
		})
		if err != nil {
			return nil, err
		}
		return &BaseDescriptions{
			AnimalPhysical:   parsed.AnimalPhysical,
			AnimalBehavior:   parsed.AnimalBehavior,
			AnimalVoice:      parsed.AnimalVoice,
			LipSyncBaseline:  parsed.LipSyncBaseline,
			RealismRendering: parsed.RealismRendering,
			Environment:      parsed.Environment,
			ProductHandling:  parsed.ProductHandling,
		}, nil
	}

	parsed, err := structuredCall[humanBaseDescriptions](ctx, g.llm, "base description generation", chatRequest{
		System:            system,
		User:              user,
		Temperature:       0.3,
		MaxTokens:         4500,
		SchemaName:        "base_descriptions",
		SchemaDescription: "Frozen character descriptions reused by every segment",
		Schema:            humanBaseSchema,
		Policy:            PolicyRequired,
	})
	if err != nil {
		return nil, err
	}
	return &BaseDescriptions{
		Physical:        parsed.Physical,
		Clothing:        parsed.Clothing,
		Environment:     parsed.Environment,
		Voice:           parsed.Voice,
		ProductHandling: parsed.ProductHandling,
	}, nil
}

// baseWordCounts spells out the per-field minimum word counts the template
// enforces at the prompt level. Enhanced mode asks for longer fields.
func baseWordCounts(animal, enhanced bool) string {
	envWords := "150+"
	voiceWords := "50+"
	physicalWords := "100+"
	clothingWords := "100+"
	if enhanced {
		envWords = "250+"
		voiceWords = "100+"
		physicalWords = "200+"
		clothingWords = "150+"
	}
	if animal {
		return fmt.Sprintf(`animal_physical: 180+ words
animal_behavior: 150+ words
animal_voice: 120+ words
lip_sync_baseline: 100+ words
realism_rendering: 120+ words
environment: %s words
productHandling: 50+ words`, envWords)
	}
	return fmt.Sprintf(`physical: %s words
clothing: %s words
environment: %s words
voice: %s words
productHandling: 50+ words`, physicalWords, clothingWords, envWords, voiceWords)
}
