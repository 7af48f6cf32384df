package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saanvi26/ATS-Scorer/internal/llm"
)

func TestModelsSetAndReset(t *testing.T) {
	modelsSettingsPath = tempSettingsPath(t)
	t.Cleanup(func() { modelsSettingsPath = "" })

	require.NoError(t, runModelsSet(nil, []string{"gemini-2.5-pro"}))

	settings, err := openSettings(modelsSettingsPath)
	require.NoError(t, err)
	model, err := settings.Model()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", model)

	require.NoError(t, runModelsReset(nil, nil))
	model, err = settings.Model()
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultModel, model)
}

func TestModelsSetRejectsUnknown(t *testing.T) {
	modelsSettingsPath = tempSettingsPath(t)
	t.Cleanup(func() { modelsSettingsPath = "" })

	assert.Error(t, runModelsSet(nil, []string{"gpt-4"}))
}
