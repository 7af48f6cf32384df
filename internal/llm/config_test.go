package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.True(t, IsAllowedModel(cfg.Model), "default model must be in the allowed set")
}

func TestIsAllowedModel(t *testing.T) {
	for _, id := range AllowedModels() {
		assert.True(t, IsAllowedModel(id), id)
	}
	assert.False(t, IsAllowedModel("gpt-4o"))
	assert.False(t, IsAllowedModel(""))
}

func TestWithModel(t *testing.T) {
	cfg := DefaultConfig().WithModel("gemini-2.5-pro")
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)

	// Unrecognized ids fall back to the default.
	cfg = DefaultConfig().WithModel("made-up-model")
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestAllowedModels_ReturnsCopy(t *testing.T) {
	models := AllowedModels()
	models[0] = "mutated"
	assert.NotEqual(t, "mutated", AllowedModels()[0])
}
