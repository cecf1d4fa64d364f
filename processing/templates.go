package processing

import (
	"embed"
	"fmt"
)

//go:embed instructions/*.md
var instructionFiles embed.FS

// LoadTemplate returns the instruction text prepended to every system
// message for the given format. The pipeline relays the text verbatim and
// never interprets it.
func LoadTemplate(format string) (string, error) {
	filename := "veo3-json-guidelines.md"
	switch format {
	case "enhanced":
		filename = "veo3-enhanced-continuity.md"
	case "continuation":
		filename = "veo3-continuation-minimal.md"
	}
	data, err := instructionFiles.ReadFile("instructions/" + filename)
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", filename, err)
	}
	return string(data), nil
}
