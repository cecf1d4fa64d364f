package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	fail string
}

func (r *fakeRenderer) Render(_ context.Context, prompt string) ([]string, error) {
	if r.fail != "" && strings.Contains(prompt, r.fail) {
		return nil, errors.New("render failed")
	}
	return []string{"https://img.test/" + prompt}, nil
}

func promptBatchJSON(t *testing.T, n int) string {
	t.Helper()
	prompts := make([]string, n)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("prompt-%02d", i+1)
	}
	raw, err := json.Marshal(promptBatchResponse{Prompts: prompts})
	require.NoError(t, err)
	return string(raw)
}

func TestImageBatcherRunPreservesPromptOrder(t *testing.T) {
	fake := &fakeCompleter{respond: func(req chatRequest) (string, error) {
		assert.Equal(t, "data:image/png;base64,abc", req.ImageURL)
		return promptBatchJSON(t, promptBatchSize), nil
	}}
	b := NewImageBatcher(fake, &fakeRenderer{})

	batch, err := b.Run(context.Background(), "data:image/png;base64,abc", "solar charger ad", "paid")

	require.NoError(t, err)
	require.Len(t, batch.Prompts, promptBatchSize)
	require.Len(t, batch.ImageURLs, promptBatchSize)
	// URLs line up with their prompts despite concurrent rendering.
	for i, prompt := range batch.Prompts {
		require.Len(t, batch.ImageURLs[i], 1)
		assert.Equal(t, "https://img.test/"+prompt, batch.ImageURLs[i][0])
	}
}

func TestImageBatcherRejectsShortPromptCount(t *testing.T) {
	fake := &fakeCompleter{respond: func(req chatRequest) (string, error) {
		return promptBatchJSON(t, 7), nil
	}}
	b := NewImageBatcher(fake, &fakeRenderer{})

	_, err := b.Run(context.Background(), "data:image/png;base64,abc", "ad", "paid")

	var uerr *UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Error(), "expected 20 prompts")
}

func TestImageBatcherTruncatesExcessPrompts(t *testing.T) {
	fake := &fakeCompleter{respond: func(req chatRequest) (string, error) {
		return promptBatchJSON(t, promptBatchSize+3), nil
	}}
	b := NewImageBatcher(fake, &fakeRenderer{})

	batch, err := b.Run(context.Background(), "data:image/png;base64,abc", "ad", "paid")

	require.NoError(t, err)
	require.Len(t, batch.Prompts, promptBatchSize)
	require.Len(t, batch.ImageURLs, promptBatchSize)
	assert.Equal(t, "prompt-01", batch.Prompts[0])
	assert.Equal(t, "prompt-20", batch.Prompts[promptBatchSize-1])
}

func TestImageBatcherFailsBatchWhenAnyRenderFails(t *testing.T) {
	fake := &fakeCompleter{respond: func(req chatRequest) (string, error) {
		return promptBatchJSON(t, promptBatchSize), nil
	}}
	b := NewImageBatcher(fake, &fakeRenderer{fail: "prompt-13"})

	batch, err := b.Run(context.Background(), "data:image/png;base64,abc", "ad", "organic")

	require.Nil(t, batch)
	var uerr *UpstreamError
	require.ErrorAs(t, err, &uerr)
}

func TestMarketingSystemPromptSelectsCreativeMode(t *testing.T) {
	paid, err := marketingSystemPrompt("paid")
	require.NoError(t, err)
	organic, err := marketingSystemPrompt("organic")
	require.NoError(t, err)

	assert.NotEqual(t, paid, organic)
	assert.Contains(t, paid, "STRICT JSON ONLY")
	assert.Contains(t, organic, "STRICT JSON ONLY")
}
