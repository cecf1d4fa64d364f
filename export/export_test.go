package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammad535/ideogramfire/processing"
)

func sampleResult() *processing.GenerationResult {
	result := &processing.GenerationResult{
		Segments: make([]processing.Segment, 3),
		Metadata: processing.GenerationMetadata{
			TotalSegments:     3,
			EstimatedDuration: 24,
			CharacterID:       "human_female_25-34_abc123",
		},
	}
	for i := range result.Segments {
		result.Segments[i].SegmentInfo.SegmentNumber = i + 1
		result.Segments[i].SegmentInfo.TotalSegments = 3
		result.Segments[i].ActionTimeline.Dialogue = "Segment dialogue."
	}
	return result
}

func TestSegmentsZipContainsNumberedFiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SegmentsZip(&buf, sampleResult()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["segment_01.json"])
	assert.True(t, names["segment_02.json"])
	assert.True(t, names["segment_03.json"])
	assert.True(t, names["README.txt"])
	assert.False(t, names["voice_profile.json"])
}

func TestSegmentsZipSegmentRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SegmentsZip(&buf, sampleResult()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "segment_02.json" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		var segment processing.Segment
		require.NoError(t, json.NewDecoder(rc).Decode(&segment))
		rc.Close()
		assert.Equal(t, 2, segment.SegmentInfo.SegmentNumber)
		assert.Equal(t, "Segment dialogue.", segment.ActionTimeline.Dialogue)
		return
	}
	t.Fatal("segment_02.json not found in archive")
}

func TestSegmentsZipIncludesVoiceProfile(t *testing.T) {
	result := sampleResult()
	result.VoiceProfile = &processing.VoiceProfile{BaseVoice: "warm alto with bright overtones"}

	var buf bytes.Buffer
	require.NoError(t, SegmentsZip(&buf, result))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	found := false
	for _, f := range zr.File {
		if f.Name == "voice_profile.json" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPromptsCSVRoundTrip(t *testing.T) {
	prompts := []string{"a product on a desk", "a product, held up"}
	urls := [][]string{
		{"https://img.example/1a.png", "https://img.example/1b.png"},
		{"https://img.example/2.png"},
	}

	var buf bytes.Buffer
	require.NoError(t, PromptsCSV(&buf, prompts, urls))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"number", "prompt", "image_urls"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "a product on a desk", rows[1][1])
	assert.Equal(t, "https://img.example/1a.png https://img.example/1b.png", rows[1][2])
	// Commas inside a prompt must survive quoting.
	assert.Equal(t, "a product, held up", rows[2][1])
}

func TestPromptsCSVMissingURLs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PromptsCSV(&buf, []string{"only prompt"}, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1][2])
}

func TestPromptSheetPDFProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	err := PromptSheetPDF(&buf, "Marketing batch #7", []string{"prompt one", "prompt two"}, [][]string{{"https://img.example/1.png"}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
	assert.Greater(t, buf.Len(), 500)
}
