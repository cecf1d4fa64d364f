package processing

import (
	"context"
	"encoding/json"
	"fmt"
)

// segmentContext is everything one per-chunk call needs: the chunk itself,
// the frozen run context, and the previous segment for continuity framing.
type segmentContext struct {
	Number   int
	Total    int
	Dialogue string
	Base     *BaseDescriptions
	Previous *Segment
	Template string

	// Locations is (previous, current, next); previous/next empty at the
	// run boundaries.
	Locations [3]string
	Camera    string
	Params    *GenerationParams
}

func (sc *segmentContext) baseBlock() string {
	if sc.Params.IsAnimal() {
		return fmt.Sprintf(`Animal Physical: %s
Animal Behavior: %s
Animal Voice: %s
Lip-Sync Baseline: %s`,
			sc.Base.AnimalPhysical, sc.Base.AnimalBehavior, sc.Base.AnimalVoice, sc.Base.LipSyncBaseline)
	}
	return fmt.Sprintf(`Physical: %s
Clothing: %s
Base Voice: %s`,
		sc.Base.Physical, sc.Base.Clothing, sc.Base.Voice)
}

func (sc *segmentContext) previousBlock() string {
	if sc.Previous == nil {
		return "This is the opening segment."
	}
	return fmt.Sprintf("Previous segment ended with:\nPosition: %s", sc.Previous.ActionTimeline.TransitionPrep)
}

func (sc *segmentContext) locationBlock() string {
	prev, current, next := sc.Locations[0], sc.Locations[1], sc.Locations[2]
	block := fmt.Sprintf("Current Location: %s", current)
	if prev != "" && prev != current {
		block += fmt.Sprintf("\nCharacter just moved from: %s", prev)
	}
	if next != "" && next != current {
		block += fmt.Sprintf("\nCharacter will move to: %s", next)
	}
	return block
}

func backgroundLifeLabel(on bool) string {
	if on {
		return "Include subtle background activity"
	}
	return "Focus only on character"
}

// generateSegment makes the Required per-chunk call for standard runs.
func (g *Generator) generateSegment(ctx context.Context, sc segmentContext) (*Segment, error) {
	isEnhanced := sc.Params.JSONFormat == "enhanced"
	infoDetail := "with overlap instructions"
	timelineDetail := "synchronized with dialogue"
	if isEnhanced {
		infoDetail = "with continuity markers"
		timelineDetail = "with synchronized_actions, micro_expressions, breathing_rhythm"
	}

	user := fmt.Sprintf(`Create segment %d of %d:

Dialogue for this segment: "%s"
Product: %s
%s

Visual Settings:
- Camera Style: %s
- Time of Day: %s
- Background Life: %s
- Energy Level: %s

Base Descriptions (USE EXACTLY AS PROVIDED):
%s
General Environment: %s
Product Handling: %s

%s

Generate the complete JSON with:
1. segment_info (%s)
2. character_description
3. scene_continuity
4. action_timeline (%s)
5. Include natural movement/transition if location changes`,
		sc.Number, sc.Total,
		sc.Dialogue,
		sc.Params.Product,
		sc.locationBlock(),
		sc.Camera,
		orDefault(sc.Params.TimeOfDay, "morning"),
		backgroundLifeLabel(sc.Params.BackgroundLife),
		EnergyLevel(sc.Params.EnergyArc, sc.Number, sc.Total),
		sc.baseBlock(),
		sc.Base.Environment,
		orDefault(sc.Base.ProductHandling, "Natural handling"),
		sc.previousBlock(),
		infoDetail,
		timelineDetail)

	return structuredCall[Segment](ctx, g.llm, fmt.Sprintf("segment %d generation", sc.Number), chatRequest{
		System:            sc.Template + "\n\nGenerate a Veo 3 JSON segment following the exact structure. Use the provided base descriptions WORD-FOR-WORD.",
		User:              user,
		Temperature:       0.5,
		MaxTokens:         4500,
		SchemaName:        "video_segment",
		SchemaDescription: "One 8-second video segment description",
		Schema:            segmentSchema,
		Policy:            PolicyRequired,
	})
}

// generateContinuitySegment makes the per-chunk call for continuity runs:
// same structure as a standard segment, plus the frozen voice profile, with
// deterministic repair of the voice and behavior fields afterwards.
func (g *Generator) generateContinuitySegment(ctx context.Context, sc segmentContext, profile *VoiceProfile) (*Segment, error) {
	template, err := LoadTemplate(sc.Params.JSONFormat)
	if err != nil {
		return nil, err
	}
	profileJSON, _ := json.MarshalIndent(profile, "", "  ")

	previousBlock := ""
	if sc.Previous != nil {
		ending := sc.Previous.ActionTimeline.TransitionPrep
		if ending == "" {
			ending = sc.Previous.SegmentInfo.ContinuityNotes
		}
		previousBlock = fmt.Sprintf("Previous segment ended with:\nPosition: %s", ending)
	}

	user := fmt.Sprintf(`Create segment %d of %d:

Dialogue: "%s"
Product: %s
Current Location: %s
Camera Style: %s
Energy Level: %s

Base Descriptions (USE EXACTLY):
%s
Environment: %s
Product Handling: %s

Voice Profile to Maintain:
%s

%s

CRITICAL: Generate complete JSON. character_description.voice_matching MINIMUM 100 words. Include behavioral_consistency MINIMUM 100 words. Maintain continuity.`,
		sc.Number, sc.Total,
		sc.Dialogue,
		sc.Params.Product,
		sc.Locations[1],
		sc.Camera,
		EnergyLevel(sc.Params.EnergyArc, sc.Number, sc.Total),
		sc.baseBlock(),
		sc.Base.Environment,
		orDefault(sc.Base.ProductHandling, "Natural handling"),
		profileJSON,
		previousBlock)

	segment, err := structuredCall[Segment](ctx, g.llm, fmt.Sprintf("segment %d generation", sc.Number), chatRequest{
		System:            template + "\n\nGenerate a segment that maintains the EXACT same structure as standard segments, but with ENHANCED voice and behavior sections. Support animal avatar narration when the avatar is an animal.",
		User:              user,
		Temperature:       0.5,
		MaxTokens:         4000,
		SchemaName:        "video_segment",
		SchemaDescription: "One 8-second video segment description",
		Schema:            segmentSchema,
		Policy:            PolicyRequired,
	})
	if err != nil {
		return nil, err
	}

	repairContinuityFields(segment, profile)
	return segment, nil
}

// repairContinuityFields normalizes the two fields the model most often
// under-fills. voice_matching is synthesized from the frozen profile when
// missing or shorter than 100 characters; behavioral_consistency gets a
// generic filler when absent.
func repairContinuityFields(segment *Segment, profile *VoiceProfile) {
	if len(segment.CharacterDescription.VoiceMatching) < 100 {
		technicalJSON, _ := json.Marshal(profile.Technical)
		segment.CharacterDescription.VoiceMatching = fmt.Sprintf(
			"%s Maintaining exact technical specifications: %s.", profile.BaseVoice, technicalJSON)
	}
	if segment.CharacterDescription.BehavioralConsistency == "" {
		segment.CharacterDescription.BehavioralConsistency = "Movement and gesture patterns remain consistent with established style."
	}
}
