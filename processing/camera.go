package processing

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const defaultCameraStyle = "static-handheld"

type cameraResponse struct {
	Camera []string `json:"camera" jsonschema_description:"One camera style per segment, chosen from static-handheld, slow-push, orbit, dynamic, pov-selfie"`
}

var cameraResponseSchema = GenerateSchema[cameraResponse]()

// resolveCameras produces one camera style per chunk. Camera style is
// normally fixed; "ai-inspired" makes one BestEffort inference call, with
// the default style as fallback.
func (g *Generator) resolveCameras(ctx context.Context, params *GenerationParams, n int) []string {
	if params.CameraStyle != "ai-inspired" {
		style := orDefault(params.CameraStyle, defaultCameraStyle)
		cameras := make([]string, n)
		for i := range cameras {
			cameras[i] = style
		}
		return cameras
	}

	parsed, err := structuredCall[cameraResponse](ctx, g.llm, "camera inference", chatRequest{
		System: "Propose camera styles per segment. Return only JSON.",
		User: fmt.Sprintf(`Script:
%s

Product: %s
Segments Needed: %d

Return JSON with key 'camera' = array of %d strings from ["static-handheld","slow-push","orbit","dynamic","pov-selfie"].`,
			params.Script, orDefault(params.Product, "N/A"), n, n),
		Temperature:       0.5,
		MaxTokens:         400,
		SchemaName:        "segment_cameras",
		SchemaDescription: "Camera styles, one per segment",
		Schema:            cameraResponseSchema,
		Policy:            PolicyBestEffort,
	})
	if err != nil {
		log.Printf("Camera inference failed, using default: %v", err)
		cameras := make([]string, n)
		for i := range cameras {
			cameras[i] = defaultCameraStyle
		}
		return cameras
	}

	cameras := make([]string, 0, n)
	for _, c := range parsed.Camera {
		cameras = append(cameras, strings.TrimSpace(c))
	}
	for len(cameras) < n {
		last := defaultCameraStyle
		if len(cameras) > 0 && cameras[len(cameras)-1] != "" {
			last = cameras[len(cameras)-1]
		}
		cameras = append(cameras, last)
	}
	return cameras[:n]
}
