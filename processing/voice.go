package processing

import (
	"context"
	"fmt"
	"log"
)

type voiceEnhancement struct {
	PitchRange           string   `json:"pitchRange" jsonschema_description:"Fundamental frequency range, e.g. 165-185 Hz"`
	SpeakingRate         string   `json:"speakingRate" jsonschema_description:"Words per minute and pacing habits"`
	ToneQualities        string   `json:"toneQualities" jsonschema_description:"Timbre and tonal color of the voice"`
	BreathingPattern     string   `json:"breathingPattern" jsonschema_description:"Where and how audibly the speaker breathes"`
	EmotionalInflections string   `json:"emotionalInflections" jsonschema_description:"How emotion shows in pitch and volume"`
	UniqueMarkers        []string `json:"uniqueMarkers" jsonschema_description:"Distinctive recurring vocal habits"`
	RegionalAccent       string   `json:"regionalAccent" jsonschema_description:"Accent and regional pronunciation notes"`
	VocalTexture         string   `json:"vocalTexture" jsonschema_description:"Breathiness, rasp or smoothness of the voice"`
}

var voiceEnhancementSchema = GenerateSchema[voiceEnhancement]()

// defaultVoiceProfile is the technical baseline every continuity run starts
// from. Only the enhancement call may override individual fields.
func defaultVoiceProfile(first *Segment, params *GenerationParams) *VoiceProfile {
	return &VoiceProfile{
		BaseVoice: first.CharacterDescription.VoiceMatching,
		Technical: VoiceTechnical{
			Pitch:         "165-185 Hz",
			Rate:          "145-150 wpm",
			Tone:          "warm alto with bright overtones",
			BreathPattern: "natural pauses between phrases",
			Emphasis:      "slight volume increase on key words",
		},
		Personality: VoicePersonality{
			VoiceType:   orDefault(params.VoiceType, "warm-friendly"),
			EnergyLevel: orDefault(params.EnergyLevel, "80"),
		},
		ContinuityMarkers: VoiceContinuityMarkers{
			SentenceEndings: "slight downward inflection",
			Excitement:      "pitch rises 10-15 Hz",
			ProductMention:  "slower pace, clearer articulation",
		},
	}
}

// extractVoiceProfile derives the frozen voice profile after the first
// segment of a continuity run. The enhancement call is BestEffort: on
// failure the profile keeps its defaults and the run continues.
func (g *Generator) extractVoiceProfile(ctx context.Context, first *Segment, params *GenerationParams) *VoiceProfile {
	profile := defaultVoiceProfile(first, params)

	var subject string
	if params.IsAnimal() {
		subject = fmt.Sprintf("Animal Species: %s\nVoice Style: %s\nAnthropomorphic: %s",
			params.Animal.Species, orDefault(params.Animal.VoiceStyle, "narrator"), yesNo(params.Animal.Anthropomorphic))
	} else {
		subject = fmt.Sprintf("Age: %s\nGender: %s\nVoice Type: %s", params.AgeRange, params.Gender, params.VoiceType)
	}

	sample := first.ActionTimeline.Dialogue
	if sample == "" {
		sample = params.Script
	}

	enhanced, err := structuredCall[voiceEnhancement](ctx, g.llm, "voice profile enhancement", chatRequest{
		System: "Generate detailed voice continuity profile for video consistency. Be extremely specific about vocal qualities. Allow animal narrator styles for animal avatars.",
		User: fmt.Sprintf(`Create detailed voice profile for:
%s
Energy Level: %s%%
Script Sample: "%s"

Return a JSON object with: pitchRange, speakingRate, toneQualities, breathingPattern, emotionalInflections, uniqueMarkers, regionalAccent, vocalTexture`,
			subject, orDefault(params.EnergyLevel, "80"), sample),
		Temperature:       0.3,
		MaxTokens:         1000,
		SchemaName:        "voice_profile",
		SchemaDescription: "Detailed vocal-identity descriptor for continuity",
		Schema:            voiceEnhancementSchema,
		Policy:            PolicyBestEffort,
	})
	if err != nil {
		log.Printf("Error enhancing voice profile: %v", err)
		return profile
	}

	profile.Technical.PitchRange = enhanced.PitchRange
	profile.Technical.SpeakingRate = enhanced.SpeakingRate
	profile.Technical.ToneQualities = enhanced.ToneQualities
	profile.Technical.BreathingPattern = enhanced.BreathingPattern
	profile.Technical.EmotionalInflections = enhanced.EmotionalInflections
	profile.Technical.RegionalAccent = enhanced.RegionalAccent
	profile.Technical.VocalTexture = enhanced.VocalTexture
	profile.Personality.NaturalQualities = enhanced.UniqueMarkers
	return profile
}
