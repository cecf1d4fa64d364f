package processing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocationsSingleMode(t *testing.T) {
	g := NewGenerator(&fakeCompleter{respond: func(chatRequest) (string, error) {
		return "", errors.New("no call expected")
	}})
	params := &GenerationParams{SettingMode: "single", Room: "kitchen"}

	locations := g.resolveLocations(context.Background(), params, 5)

	assert.Equal(t, []string{"kitchen", "kitchen", "kitchen", "kitchen", "kitchen"}, locations)
}

func TestResolveLocationsListModePadsWithLast(t *testing.T) {
	g := NewGenerator(&fakeCompleter{respond: func(chatRequest) (string, error) {
		return "", errors.New("no call expected")
	}})
	params := &GenerationParams{SettingMode: "list", Locations: []string{"kitchen", "bedroom"}}

	locations := g.resolveLocations(context.Background(), params, 4)

	assert.Equal(t, []string{"kitchen", "bedroom", "bedroom", "bedroom"}, locations)
}

func TestResolveLocationsListModeTruncatesExcess(t *testing.T) {
	g := NewGenerator(&fakeCompleter{respond: func(chatRequest) (string, error) {
		return "", errors.New("no call expected")
	}})
	params := &GenerationParams{SettingMode: "list", Locations: []string{"kitchen", "bedroom", "office", "garage"}}

	locations := g.resolveLocations(context.Background(), params, 2)

	assert.Equal(t, []string{"kitchen", "bedroom"}, locations)
}

func TestResolveLocationsEmptyListFallsBackToDefault(t *testing.T) {
	g := NewGenerator(&fakeCompleter{respond: func(chatRequest) (string, error) {
		return "", errors.New("no call expected")
	}})
	params := &GenerationParams{SettingMode: "list"}

	locations := g.resolveLocations(context.Background(), params, 3)

	assert.Equal(t, []string{"living room", "living room", "living room"}, locations)
}

func TestResolveLocationsInferredMode(t *testing.T) {
	fake := &fakeCompleter{respond: func(req chatRequest) (string, error) {
		require.Equal(t, "segment_locations", req.SchemaName)
		return `{"locations":["Kitchen","Home Office"]}`, nil
	}}
	g := NewGenerator(fake)
	params := &GenerationParams{SettingMode: "ai-inspired", Script: "some script", Product: "charger"}

	locations := g.resolveLocations(context.Background(), params, 4)

	// Exactly one inference call regardless of chunk count; labels are
	// lowercased and padded with the last entry.
	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"kitchen", "home office", "home office", "home office"}, locations)
}

func TestResolveLocationsInferredModeFallsBackOnFailure(t *testing.T) {
	fake := &fakeCompleter{respond: func(chatRequest) (string, error) {
		return "", errors.New("model offline")
	}}
	g := NewGenerator(fake)
	params := &GenerationParams{SettingMode: "ai-inspired", Script: "some script"}

	locations := g.resolveLocations(context.Background(), params, 3)

	assert.Equal(t, []string{"living room", "living room", "living room"}, locations)
}

func TestResolveLocationsAlwaysMatchesChunkCount(t *testing.T) {
	g := NewGenerator(&fakeCompleter{respond: func(chatRequest) (string, error) {
		return `{"locations":["patio"]}`, nil
	}})
	for _, mode := range []string{"single", "list", "ai-inspired"} {
		for _, n := range []int{1, 2, 7} {
			params := &GenerationParams{SettingMode: mode, Room: "kitchen", Locations: []string{"bedroom"}}
			assert.Len(t, g.resolveLocations(context.Background(), params, n), n, "mode %s n %d", mode, n)
		}
	}
}
