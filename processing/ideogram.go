package processing

import (
	"context"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

const ideogramBaseURL = "https://api.ideogram.ai"

type ideogramImage struct {
	URL string `json:"url"`
}

type ideogramResponse struct {
	Data []ideogramImage `json:"data"`
}

// IdeogramClient renders prompts through Ideogram Generate-V3.
type IdeogramClient struct {
	http *resty.Client
}

// NewIdeogramClient builds a renderer from config.
func NewIdeogramClient(cfg Config) *IdeogramClient {
	return &IdeogramClient{
		http: resty.New().
			SetBaseURL(ideogramBaseURL).
			SetHeader("Api-Key", cfg.IdeogramKey),
	}
}

// Render submits one prompt and returns the generated image URLs.
func (c *IdeogramClient) Render(ctx context.Context, prompt string) ([]string, error) {
	var result ideogramResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"prompt":          prompt,
			"rendering_speed": "TURBO",
			"magic_prompt":    "ON",
		}).
		SetResult(&result).
		Post("/v1/ideogram-v3/generate")
	if err != nil {
		return nil, fmt.Errorf("Ideogram API error: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("Ideogram API returned %s: %s", resp.Status(), resp.String())
	}

	urls := make([]string, 0, len(result.Data))
	for _, img := range result.Data {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	if len(urls) == 0 {
		log.Printf("Ideogram returned no images for prompt (len %d)", len(prompt))
	}
	return urls, nil
}
