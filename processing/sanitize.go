package processing

import (
	"regexp"
	"strings"
)

// SanitizeRule rewrites mentions of a prop that is implausible for indoor
// scenes. Each affected segment field gets its own replacement so the
// rewritten text still reads naturally in context.
type SanitizeRule struct {
	Pattern     *regexp.Regexp
	PropsRepl   string
	EnvRepl     string
	ActionsRepl string
}

// Sanitizer rewrites implausible outdoor props out of segments filmed in
// known indoor locations. Pure text substitution; it never fails and never
// touches segments filmed elsewhere.
type Sanitizer struct {
	indoor map[string]bool
	rules  []SanitizeRule
}

// DefaultIndoorLocations are the location labels treated as indoors.
var DefaultIndoorLocations = []string{
	"living room", "bedroom", "bathroom", "home office", "kitchen",
	"dining room", "hallway", "entryway", "laundry room", "walk-in closet",
}

// DefaultSanitizeRules covers the props the generation model most often
// hallucinates into indoor scenes for home-energy products.
func DefaultSanitizeRules() []SanitizeRule {
	return []SanitizeRule{
		{
			Pattern:     regexp.MustCompile(`(?i)solar panels?`),
			PropsRepl:   "solar panel monitoring display",
			EnvRepl:     "solar panel monitoring display",
			ActionsRepl: "monitoring display",
		},
		{
			Pattern:     regexp.MustCompile(`(?i)generators?`),
			PropsRepl:   "energy system status display",
			EnvRepl:     "energy system status display",
			ActionsRepl: "energy system status",
		},
		{
			Pattern:     regexp.MustCompile(`(?i)snow\w*`),
			PropsRepl:   "winter scenery visible outside",
			EnvRepl:     "natural winter light visible through windows",
			ActionsRepl: "winter scenery visible outside",
		},
	}
}

// NewSanitizer builds a sanitizer over the given indoor set and rule table.
func NewSanitizer(indoorLocations []string, rules []SanitizeRule) *Sanitizer {
	indoor := make(map[string]bool, len(indoorLocations))
	for _, l := range indoorLocations {
		indoor[strings.ToLower(l)] = true
	}
	return &Sanitizer{indoor: indoor, rules: rules}
}

// NewDefaultSanitizer builds a sanitizer with the default indoor set and
// rule table.
func NewDefaultSanitizer() *Sanitizer {
	return NewSanitizer(DefaultIndoorLocations, DefaultSanitizeRules())
}

// Apply rewrites the segment in place when its location is indoors.
// Dialogue is never touched.
func (s *Sanitizer) Apply(segment *Segment) {
	if segment == nil {
		return
	}
	if !s.indoor[strings.ToLower(segment.SegmentInfo.Location)] {
		return
	}
	for _, rule := range s.rules {
		segment.SceneContinuity.PropsInFrame = rule.Pattern.ReplaceAllString(segment.SceneContinuity.PropsInFrame, rule.PropsRepl)
		segment.SceneContinuity.Environment = rule.Pattern.ReplaceAllString(segment.SceneContinuity.Environment, rule.EnvRepl)
		segment.ActionTimeline.SynchronizedActions = rule.Pattern.ReplaceAllString(segment.ActionTimeline.SynchronizedActions, rule.ActionsRepl)
	}
}
