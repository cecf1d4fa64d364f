package processing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Config carries every external-service setting the pipeline needs. It is
// constructed once at process start and injected; nothing in this package
// reads the environment.
type Config struct {
	OpenAIKey   string
	IdeogramKey string
	Model       openai.ChatModel
}

// Configured reports whether segment generation can run at all.
func (c Config) Configured() bool {
	return c.OpenAIKey != ""
}

// chatRequest is one structured-output call to the generation service.
type chatRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64

	// ImageURL, when set, is attached to the user message as image input
	// (a data URL for uploaded product shots).
	ImageURL string

	SchemaName        string
	SchemaDescription string
	Schema            interface{}

	// Policy documents the failure contract of this call site.
	Policy CallPolicy
}

// ChatCompleter issues one chat completion and returns the raw text payload.
// The pipeline is written against this interface so tests can script it.
type ChatCompleter interface {
	Complete(ctx context.Context, req chatRequest) (string, error)
}

// GenerateSchema builds a JSON schema for structured outputs.
// Structured Outputs uses a subset of JSON schema; the reflector flags
// keep the generated schema inside that subset.
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

type openAICompleter struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAICompleter builds the production ChatCompleter from config.
func NewOpenAICompleter(cfg Config) ChatCompleter {
	model := cfg.Model
	if model == "" {
		model = openai.ChatModelGPT4o
	}
	return &openAICompleter{
		client: openai.NewClient(option.WithAPIKey(cfg.OpenAIKey)),
		model:  model,
	}
}

func (c *openAICompleter) Complete(ctx context.Context, req chatRequest) (string, error) {
	userMessage := openai.UserMessage(req.User)
	if req.ImageURL != "" {
		userMessage = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(req.User),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: req.ImageURL}),
		})
	}
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			userMessage,
		},
		Model:       c.model,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.SchemaName,
					Description: openai.String(req.SchemaDescription),
					Schema:      req.Schema,
					Strict:      openai.Bool(true),
				},
			},
		}
	}

	chatCompletion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	raw := chatCompletion.Choices[0].Message.Content
	if raw == "" {
		return "", fmt.Errorf("OpenAI returned empty response. Finish reason: %s", chatCompletion.Choices[0].FinishReason)
	}
	return raw, nil
}

// structuredCall runs one chat request and parses the payload into T.
// Required call sites get their errors wrapped as UpstreamError;
// BestEffort sites get RecoverableError so the caller can absorb it.
func structuredCall[T any](ctx context.Context, llm ChatCompleter, op string, req chatRequest) (*T, error) {
	raw, err := llm.Complete(ctx, req)
	if err != nil {
		return nil, wrapCallError(op, req.Policy, err)
	}
	var parsed T
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, wrapCallError(op, req.Policy, fmt.Errorf("failed to parse JSON response: %w (raw: %s)", err, raw))
	}
	return &parsed, nil
}

func wrapCallError(op string, policy CallPolicy, err error) error {
	if policy == PolicyBestEffort {
		return &RecoverableError{Op: op, Err: err}
	}
	return &UpstreamError{Op: op, Err: err}
}
