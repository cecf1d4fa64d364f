package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hammad535/ideogramfire/processing"
)

// SegmentsZip writes a generation result as a ZIP archive: one pretty-printed
// JSON file per segment, the voice profile when present, and a short README.
func SegmentsZip(w io.Writer, result *processing.GenerationResult) error {
	zw := zip.NewWriter(w)

	for i, segment := range result.Segments {
		name := fmt.Sprintf("segment_%02d.json", i+1)
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		data, err := json.MarshalIndent(segment, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if result.VoiceProfile != nil {
		f, err := zw.Create("voice_profile.json")
		if err != nil {
			return fmt.Errorf("failed to create voice_profile.json: %w", err)
		}
		data, err := json.MarshalIndent(result.VoiceProfile, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode voice profile: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("failed to write voice profile: %w", err)
		}
	}

	readme, err := zw.Create("README.txt")
	if err != nil {
		return fmt.Errorf("failed to create README: %w", err)
	}
	fmt.Fprintf(readme, "Video segment prompts\n\nSegments: %d\nEstimated duration: %ds\nCharacter ID: %s\n\nEach segment_NN.json is one 8-second video generation prompt.\nFeed them to the video model in order.\n",
		result.Metadata.TotalSegments,
		result.Metadata.EstimatedDuration,
		result.Metadata.CharacterID,
	)

	return zw.Close()
}
