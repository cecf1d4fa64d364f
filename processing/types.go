package processing

import "github.com/invopop/jsonschema"

// AnimalParams describes an animal-avatar character.
type AnimalParams struct {
	Species         string `json:"species"`
	VoiceStyle      string `json:"voice_style"`
	Anthropomorphic bool   `json:"anthropomorphic"`
}

// GenerationParams is the validated input for one pipeline run.
type GenerationParams struct {
	Script   string `json:"script"`
	AgeRange string `json:"age_range"`
	Gender   string `json:"gender"`
	Product  string `json:"product"`
	Room     string `json:"room"`
	Style    string `json:"style"`

	// JSONFormat selects the instruction template: "standard" or "enhanced".
	JSONFormat string `json:"json_format"`

	// SettingMode is "single", "list" or "ai-inspired".
	SettingMode string   `json:"setting_mode"`
	Locations   []string `json:"locations"`

	CameraStyle    string `json:"camera_style"`
	TimeOfDay      string `json:"time_of_day"`
	BackgroundLife bool   `json:"background_life"`
	ProductStyle   string `json:"product_style"`
	EnergyArc      string `json:"energy_arc"`
	NarrativeStyle string `json:"narrative_style"`
	Ethnicity      string `json:"ethnicity"`

	VoiceType   string `json:"voice_type"`
	EnergyLevel string `json:"energy_level"`

	// AvatarMode is "human" (default) or "animal".
	AvatarMode string        `json:"avatar_mode"`
	Animal     *AnimalParams `json:"animal,omitempty"`
}

// IsAnimal reports whether the run uses an animal avatar.
func (p *GenerationParams) IsAnimal() bool {
	return p.AvatarMode == "animal" && p.Animal != nil
}

// BaseDescriptions holds the descriptive fields generated once per run and
// reused word-for-word by every segment. The human and animal key sets are
// mutually exclusive; environment and product handling are shared.
type BaseDescriptions struct {
	Physical string `json:"physical,omitempty"`
	Clothing string `json:"clothing,omitempty"`
	Voice    string `json:"voice,omitempty"`

	AnimalPhysical   string `json:"animal_physical,omitempty"`
	AnimalBehavior   string `json:"animal_behavior,omitempty"`
	AnimalVoice      string `json:"animal_voice,omitempty"`
	LipSyncBaseline  string `json:"lip_sync_baseline,omitempty"`
	RealismRendering string `json:"realism_rendering,omitempty"`

	Environment     string `json:"environment"`
	ProductHandling string `json:"productHandling"`
}

// humanBaseDescriptions is the structured-output shape for human avatars.
type humanBaseDescriptions struct {
	Physical        string `json:"physical" jsonschema_description:"Physical appearance of the character, detailed enough to reuse word-for-word"`
	Clothing        string `json:"clothing" jsonschema_description:"Exact clothing and accessories worn in every segment"`
	Environment     string `json:"environment" jsonschema_description:"The filming environment shared by all segments"`
	Voice           string `json:"voice" jsonschema_description:"Baseline vocal characteristics of the character"`
	ProductHandling string `json:"productHandling" jsonschema_description:"How the character holds and presents the product"`
}

// animalBaseDescriptions is the structured-output shape for animal avatars.
type animalBaseDescriptions struct {
	AnimalPhysical   string `json:"animal_physical" jsonschema_description:"Physical appearance of the animal character"`
	AnimalBehavior   string `json:"animal_behavior" jsonschema_description:"Species-typical mannerisms and movement patterns"`
	AnimalVoice      string `json:"animal_voice" jsonschema_description:"Narration voice characteristics for the animal"`
	LipSyncBaseline  string `json:"lip_sync_baseline" jsonschema_description:"How mouth movement maps to the narration"`
	RealismRendering string `json:"realism_rendering" jsonschema_description:"Fur, eye and lighting rendering notes for photorealism"`
	Environment      string `json:"environment" jsonschema_description:"The filming environment shared by all segments"`
	ProductHandling  string `json:"productHandling" jsonschema_description:"How the animal interacts with the product"`
}

// SegmentInfo carries the ordinal metadata of one clip.
type SegmentInfo struct {
	SegmentNumber   int    `json:"segment_number" jsonschema_description:"1-based position of this segment"`
	TotalSegments   int    `json:"total_segments" jsonschema_description:"Total number of segments in the run"`
	DurationSeconds int    `json:"duration_seconds" jsonschema_description:"Clip duration in seconds, always 8"`
	Location        string `json:"location" jsonschema_description:"Filming location for this segment"`
	ContinuityNotes string `json:"continuity_notes" jsonschema_description:"Overlap or continuity-marker instructions for editing"`
}

// CharacterDescription repeats the frozen base descriptions plus the
// per-segment voice and behavior consistency fields.
type CharacterDescription struct {
	Physical              string `json:"physical" jsonschema_description:"Base physical description, copied word-for-word"`
	Clothing              string `json:"clothing" jsonschema_description:"Base clothing description, copied word-for-word"`
	VoiceMatching         string `json:"voice_matching" jsonschema_description:"Vocal characteristics this segment must match"`
	BehavioralConsistency string `json:"behavioral_consistency" jsonschema_description:"Gesture and movement patterns carried across segments"`

	// VoiceTechnical is pinned from the frozen profile on continuation
	// segments. The model never produces it; JSONSchemaExtend strips it
	// from the structured-output schema.
	VoiceTechnical *VoiceTechnical `json:"voice_technical,omitempty"`
}

func (CharacterDescription) JSONSchemaExtend(schema *jsonschema.Schema) {
	schema.Properties.Delete("voice_technical")
	required := schema.Required[:0]
	for _, name := range schema.Required {
		if name != "voice_technical" {
			required = append(required, name)
		}
	}
	schema.Required = required
}

// SceneContinuity describes the visual state that must carry between clips.
type SceneContinuity struct {
	Environment    string `json:"environment" jsonschema_description:"Environment as visible in this segment"`
	PropsInFrame   string `json:"props_in_frame" jsonschema_description:"Props visible in frame and their positions"`
	CameraPosition string `json:"camera_position" jsonschema_description:"Camera placement and movement for this segment"`
	Lighting       string `json:"lighting" jsonschema_description:"Lighting setup consistent with the time of day"`
}

// ActionTimeline synchronizes dialogue with on-screen action.
type ActionTimeline struct {
	Dialogue            string `json:"dialogue" jsonschema_description:"The exact dialogue spoken in this segment"`
	SynchronizedActions string `json:"synchronized_actions" jsonschema_description:"Actions timed against the dialogue"`
	TransitionPrep      string `json:"transition_prep" jsonschema_description:"Ending position and state for the next segment to pick up"`
}

// Segment is one structured clip description, the pipeline's unit of output.
type Segment struct {
	SegmentInfo          SegmentInfo          `json:"segment_info"`
	CharacterDescription CharacterDescription `json:"character_description"`
	SceneContinuity      SceneContinuity      `json:"scene_continuity"`
	ActionTimeline       ActionTimeline       `json:"action_timeline"`
}

// VoiceTechnical is the technical half of a voice profile. Defaults are
// fixed; an enhancement call may override individual fields.
type VoiceTechnical struct {
	Pitch         string `json:"pitch"`
	Rate          string `json:"rate"`
	Tone          string `json:"tone"`
	BreathPattern string `json:"breath_pattern"`
	Emphasis      string `json:"emphasis"`

	PitchRange           string `json:"pitch_range,omitempty"`
	SpeakingRate         string `json:"speaking_rate,omitempty"`
	ToneQualities        string `json:"tone_qualities,omitempty"`
	BreathingPattern     string `json:"breathing_pattern,omitempty"`
	EmotionalInflections string `json:"emotional_inflections,omitempty"`
	RegionalAccent       string `json:"regional_accent,omitempty"`
	VocalTexture         string `json:"vocal_texture,omitempty"`
}

// VoicePersonality is the declared personality half of a voice profile.
type VoicePersonality struct {
	VoiceType        string   `json:"voice_type"`
	EnergyLevel      string   `json:"energy_level"`
	NaturalQualities []string `json:"natural_qualities"`
}

// VoiceContinuityMarkers are the recurring vocal cues segments reference.
type VoiceContinuityMarkers struct {
	SentenceEndings string `json:"sentence_endings"`
	Excitement      string `json:"excitement"`
	ProductMention  string `json:"product_mention"`
}

// VoiceProfile is the frozen vocal-identity descriptor extracted after the
// first segment of a continuity run and reused by every later segment.
type VoiceProfile struct {
	BaseVoice         string                 `json:"base_voice"`
	Technical         VoiceTechnical         `json:"technical"`
	Personality       VoicePersonality       `json:"personality"`
	ContinuityMarkers VoiceContinuityMarkers `json:"continuity_markers"`
}

// GenerationMetadata summarizes one pipeline run.
type GenerationMetadata struct {
	TotalSegments     int    `json:"total_segments"`
	EstimatedDuration int    `json:"estimated_duration"`
	CharacterID       string `json:"character_id"`
}

// GenerationResult is the aggregate output of one run. Segments are in
// strict chunk order; VoiceProfile is set only for continuity runs.
type GenerationResult struct {
	Segments     []Segment          `json:"segments"`
	Metadata     GenerationMetadata `json:"metadata"`
	VoiceProfile *VoiceProfile      `json:"voice_profile,omitempty"`
}

// ContinuationParams is the input for a single appended segment.
type ContinuationParams struct {
	ImageURL        string        `json:"image_url"`
	Script          string        `json:"script"`
	Product         string        `json:"product"`
	VoiceProfile    *VoiceProfile `json:"voice_profile"`
	PreviousSegment *Segment      `json:"previous_segment,omitempty"`
	MaintainEnergy  bool          `json:"maintain_energy"`
	AvatarMode      string        `json:"avatar_mode"`
	Animal          *AnimalParams `json:"animal,omitempty"`
}
