package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

const segmentSeconds = 8

// Generator runs the segment-generation pipeline. It owns no mutable state
// between runs; every run's shared context (base descriptions, voice
// profile, locations) is created inside the run and frozen.
type Generator struct {
	llm       ChatCompleter
	sanitizer *Sanitizer
}

// Option configures a Generator.
type Option func(*Generator)

// WithSanitizer enables indoor-plausibility rewriting of generated segments.
func WithSanitizer(s *Sanitizer) Option {
	return func(g *Generator) { g.sanitizer = s }
}

// NewGenerator builds a pipeline around the given completer.
func NewGenerator(llm ChatCompleter, opts ...Option) *Generator {
	g := &Generator{llm: llm}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var segmentSchema = GenerateSchema[Segment]()
var humanBaseSchema = GenerateSchema[humanBaseDescriptions]()
var animalBaseSchema = GenerateSchema[animalBaseDescriptions]()

// Generate runs one-shot standard generation: split, resolve locations,
// base descriptions, then one segment per chunk in strict order. Any
// Required call failure aborts with no partial result.
func (g *Generator) Generate(ctx context.Context, params *GenerationParams) (*GenerationResult, error) {
	if err := validateScript(params.Script); err != nil {
		return nil, err
	}
	log.Printf("Starting generation with format: %s", orDefault(params.JSONFormat, "standard"))

	template, err := LoadTemplate(params.JSONFormat)
	if err != nil {
		return nil, err
	}

	chunks := SplitScript(params.Script)
	log.Printf("Script split into %d segments", len(chunks))

	locations := g.resolveLocations(ctx, params, len(chunks))
	cameras := g.resolveCameras(ctx, params, len(chunks))

	log.Printf("Generating base descriptions...")
	base, err := g.generateBaseDescriptions(ctx, params, template)
	if err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(chunks))
	var previous *Segment
	for i, chunk := range chunks {
		log.Printf("Generating segment %d/%d", i+1, len(chunks))
		segment, err := g.generateSegment(ctx, segmentContext{
			Number:    i + 1,
			Total:     len(chunks),
			Dialogue:  chunk,
			Base:      base,
			Previous:  previous,
			Template:  template,
			Locations: neighborLocations(locations, i),
			Camera:    cameras[i],
			Params:    params,
		})
		if err != nil {
			return nil, err
		}
		if g.sanitizer != nil {
			g.sanitizer.Apply(segment)
		}
		segments = append(segments, *segment)
		previous = &segments[len(segments)-1]
	}

	return &GenerationResult{
		Segments: segments,
		Metadata: GenerationMetadata{
			TotalSegments:     len(segments),
			EstimatedDuration: len(segments) * segmentSeconds,
			CharacterID:       characterID(params),
		},
	}, nil
}

// GenerateWithContinuity runs the continuity-mode pipeline: the first
// segment is generated with the enhanced template, a voice profile is
// extracted from it, and every later segment threads that profile plus the
// previous segment's ending state.
func (g *Generator) GenerateWithContinuity(ctx context.Context, params *GenerationParams) (*GenerationResult, error) {
	if err := validateScript(params.Script); err != nil {
		return nil, err
	}

	template, err := LoadTemplate("enhanced")
	if err != nil {
		return nil, err
	}

	chunks := SplitScript(params.Script)
	locations := g.resolveLocations(ctx, params, len(chunks))
	cameras := g.resolveCameras(ctx, params, len(chunks))

	enhanced := *params
	enhanced.JSONFormat = "enhanced"
	base, err := g.generateBaseDescriptions(ctx, &enhanced, template)
	if err != nil {
		return nil, err
	}

	first, err := g.generateSegment(ctx, segmentContext{
		Number:    1,
		Total:     len(chunks),
		Dialogue:  chunks[0],
		Base:      base,
		Template:  template,
		Locations: neighborLocations(locations, 0),
		Camera:    cameras[0],
		Params:    &enhanced,
	})
	if err != nil {
		return nil, err
	}
	if g.sanitizer != nil {
		g.sanitizer.Apply(first)
	}

	profile := g.extractVoiceProfile(ctx, first, params)

	segments := []Segment{*first}
	for i := 1; i < len(chunks); i++ {
		segment, err := g.generateContinuitySegment(ctx, segmentContext{
			Number:    i + 1,
			Total:     len(chunks),
			Dialogue:  chunks[i],
			Base:      base,
			Previous:  &segments[i-1],
			Locations: neighborLocations(locations, i),
			Camera:    cameras[i],
			Params:    params,
		}, profile)
		if err != nil {
			return nil, err
		}
		if g.sanitizer != nil {
			g.sanitizer.Apply(segment)
		}
		segments = append(segments, *segment)
	}

	return &GenerationResult{
		Segments: segments,
		Metadata: GenerationMetadata{
			TotalSegments:     len(segments),
			EstimatedDuration: len(segments) * segmentSeconds,
			CharacterID:       characterID(params),
		},
		VoiceProfile: profile,
	}, nil
}

// ContinuationSegment generates one additional segment appended to an
// existing voice-profiled run.
func (g *Generator) ContinuationSegment(ctx context.Context, params *ContinuationParams) (*Segment, error) {
	template, err := LoadTemplate("continuation")
	if err != nil {
		return nil, err
	}

	previousDialogue := "N/A"
	if params.PreviousSegment != nil {
		previousDialogue = params.PreviousSegment.ActionTimeline.Dialogue
	}
	profileJSON, _ := json.MarshalIndent(params.VoiceProfile, "", "  ")

	var animalBlock string
	if params.AvatarMode == "animal" && params.Animal != nil {
		animalBlock = fmt.Sprintf("Avatar: ANIMAL\nSpecies: %s\nVoice Style: %s\nAnthropomorphic: %s\n\n",
			params.Animal.Species, orDefault(params.Animal.VoiceStyle, "narrator"), yesNo(params.Animal.Anthropomorphic))
	}

	segment, err := structuredCall[Segment](ctx, g.llm, "continuation segment generation", chatRequest{
		System: template + "\n\nGenerate a continuation segment with MINIMAL description but DETAILED voice and behavior specs. Allow animal avatar narration when the avatar is an animal.",
		User: fmt.Sprintf(`Create a continuation segment:

Image Context: Character from screenshot at %s
Previous Dialogue: "%s"
New Dialogue: "%s"
Product: %s

%sVoice Profile to Match EXACTLY:
%s

Generate the JSON following the continuation minimal structure.`,
			params.ImageURL, previousDialogue, params.Script, params.Product, animalBlock, profileJSON),
		Temperature:       0.4,
		MaxTokens:         3000,
		SchemaName:        "continuation_segment",
		SchemaDescription: "A single continuation video segment",
		Schema:            segmentSchema,
		Policy:            PolicyRequired,
	})
	if err != nil {
		return nil, err
	}

	// The continuation voice must be the profile's, not whatever the model
	// produced.
	segment.CharacterDescription.VoiceMatching = params.VoiceProfile.BaseVoice
	technical := params.VoiceProfile.Technical
	segment.CharacterDescription.VoiceTechnical = &technical
	return segment, nil
}

func validateScript(script string) error {
	if len(strings.TrimSpace(script)) < 50 {
		return &ValidationError{Field: "script", Reason: "must be at least 50 characters long"}
	}
	return nil
}

func characterID(params *GenerationParams) string {
	species := "human"
	if params.IsAnimal() {
		species = params.Animal.Species
	}
	id := fmt.Sprintf("%s_%s_%s_%s",
		species, orDefault(params.Gender, "N/A"), orDefault(params.AgeRange, "N/A"), uuid.NewString())
	return strings.ReplaceAll(id, " ", "_")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// neighborLocations picks the (previous, current, next) location labels for
// chunk i. Previous and next are empty at the run boundaries.
func neighborLocations(locations []string, i int) [3]string {
	var out [3]string
	out[1] = locations[i]
	if i > 0 {
		out[0] = locations[i-1]
	}
	if i < len(locations)-1 {
		out[2] = locations[i+1]
	}
	return out
}
