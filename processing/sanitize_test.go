package processing

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func indoorSegment(location string) *Segment {
	return &Segment{
		SegmentInfo: SegmentInfo{Location: location},
		SceneContinuity: SceneContinuity{
			PropsInFrame: "two solar panels by the window",
			Environment:  "a generator sits in the corner, snowdrifts outside",
		},
		ActionTimeline: ActionTimeline{
			Dialogue:            "these solar panels saved me money",
			SynchronizedActions: "points at the generator while speaking",
		},
	}
}

func TestSanitizerRewritesIndoorSegments(t *testing.T) {
	s := NewDefaultSanitizer()
	segment := indoorSegment("Living Room")

	s.Apply(segment)

	assert.Equal(t, "two solar panel monitoring display by the window", segment.SceneContinuity.PropsInFrame)
	assert.Contains(t, segment.SceneContinuity.Environment, "energy system status display sits in the corner")
	assert.Contains(t, segment.SceneContinuity.Environment, "natural winter light visible through windows")
	assert.Equal(t, "points at the energy system status while speaking", segment.ActionTimeline.SynchronizedActions)

	// Dialogue is never rewritten.
	assert.Equal(t, "these solar panels saved me money", segment.ActionTimeline.Dialogue)
}

func TestSanitizerLeavesOutdoorSegmentsAlone(t *testing.T) {
	s := NewDefaultSanitizer()
	segment := indoorSegment("backyard")
	original := *segment

	s.Apply(segment)

	assert.Equal(t, original, *segment)
}

func TestSanitizerCustomRuleTable(t *testing.T) {
	s := NewSanitizer([]string{"studio"}, []SanitizeRule{{
		Pattern:     regexp.MustCompile(`(?i)campfires?`),
		PropsRepl:   "scented candle",
		EnvRepl:     "scented candle",
		ActionsRepl: "candle",
	}})
	segment := &Segment{
		SegmentInfo:     SegmentInfo{Location: "studio"},
		SceneContinuity: SceneContinuity{PropsInFrame: "a roaring campfire"},
	}

	s.Apply(segment)

	assert.Equal(t, "a roaring scented candle", segment.SceneContinuity.PropsInFrame)
}

func TestSanitizerNilSegmentIsNoOp(t *testing.T) {
	NewDefaultSanitizer().Apply(nil)
}
