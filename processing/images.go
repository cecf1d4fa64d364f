package processing

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// promptBatchSize is the number of ad-image prompts generated per product
// shot. The downstream review UI is built around a fixed grid of 20.
const promptBatchSize = 20

type promptBatchResponse struct {
	Prompts []string `json:"prompts" jsonschema_description:"Exactly 20 distinct, compliant image ad prompts"`
}

var promptBatchSchema = GenerateSchema[promptBatchResponse]()

// ImageRenderer turns one text prompt into one or more image URLs.
type ImageRenderer interface {
	Render(ctx context.Context, prompt string) ([]string, error)
}

// ImageBatcher produces a batch of marketing image prompts from a product
// shot, then renders them concurrently. Prompt generation is one call;
// rendering fans out one call per prompt.
type ImageBatcher struct {
	llm      ChatCompleter
	renderer ImageRenderer
}

// NewImageBatcher wires the prompt generator to an image renderer.
func NewImageBatcher(llm ChatCompleter, renderer ImageRenderer) *ImageBatcher {
	return &ImageBatcher{llm: llm, renderer: renderer}
}

// PromptBatch is the output of one image-batch run. ImageURLs[i] holds the
// rendered URLs for Prompts[i].
type PromptBatch struct {
	Prompts   []string   `json:"prompts"`
	ImageURLs [][]string `json:"image_urls"`
}

// marketingSystemPrompt loads the creative-mode system prompt and appends
// the strict JSON contract.
func marketingSystemPrompt(creativeMode string) (string, error) {
	filename := "instructions/marketing-paid.md"
	if creativeMode == "organic" {
		filename = "instructions/marketing-organic.md"
	}
	data, err := instructionFiles.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to load marketing prompt: %w", err)
	}
	return string(data) + fmt.Sprintf(`

CRITICAL: You MUST respond with STRICT JSON ONLY. No markdown, no explanations, no extra text.

Return exactly %d prompts in the "prompts" array. Nothing else.`, promptBatchSize), nil
}

// GeneratePrompts makes the single Required vision call producing
// promptBatchSize ad prompts for the uploaded product image. Extra prompts
// beyond the batch size are dropped; too few fails the batch.
func (b *ImageBatcher) GeneratePrompts(ctx context.Context, imageDataURL, userPrompt, creativeMode string) ([]string, error) {
	system, err := marketingSystemPrompt(creativeMode)
	if err != nil {
		return nil, err
	}

	parsed, err := structuredCall[promptBatchResponse](ctx, b.llm, "marketing prompt generation", chatRequest{
		System:            system,
		User:              userPrompt,
		ImageURL:          imageDataURL,
		Temperature:       0.7,
		MaxTokens:         3000,
		SchemaName:        "marketing_prompts",
		SchemaDescription: "A batch of image ad prompts",
		Schema:            promptBatchSchema,
		Policy:            PolicyRequired,
	})
	if err != nil {
		return nil, err
	}
	if len(parsed.Prompts) < promptBatchSize {
		return nil, &UpstreamError{
			Op:  "marketing prompt generation",
			Err: fmt.Errorf("expected %d prompts, got %d", promptBatchSize, len(parsed.Prompts)),
		}
	}
	return parsed.Prompts[:promptBatchSize], nil
}

// RenderAll issues one render call per prompt, all in flight at once, and
// joins them. The prompts share no ordering dependency, so this is the one
// place the pipeline runs external calls concurrently. Any failure fails
// the whole batch.
func (b *ImageBatcher) RenderAll(ctx context.Context, prompts []string) ([][]string, error) {
	urls := make([][]string, len(prompts))
	group, gctx := errgroup.WithContext(ctx)
	for i, prompt := range prompts {
		group.Go(func() error {
			log.Printf("Rendering image for prompt %d/%d", i+1, len(prompts))
			rendered, err := b.renderer.Render(gctx, prompt)
			if err != nil {
				return &UpstreamError{Op: fmt.Sprintf("image rendering for prompt %d", i+1), Err: err}
			}
			urls[i] = rendered
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// Run executes the full image batch: prompt generation, then concurrent
// rendering.
func (b *ImageBatcher) Run(ctx context.Context, imageDataURL, userPrompt, creativeMode string) (*PromptBatch, error) {
	prompts, err := b.GeneratePrompts(ctx, imageDataURL, userPrompt, creativeMode)
	if err != nil {
		return nil, err
	}
	log.Printf("Generated %d prompts, starting parallel image rendering...", len(prompts))
	urls, err := b.RenderAll(ctx, prompts)
	if err != nil {
		return nil, err
	}
	return &PromptBatch{Prompts: prompts, ImageURLs: urls}, nil
}
