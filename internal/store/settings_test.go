package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saanvi26/ATS-Scorer/internal/llm"
)

func TestSettings_CredentialLifecycle(t *testing.T) {
	settings := NewSettings(NewMemStore())

	_, ok, err := settings.Credential()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, settings.StoreCredential("api-key-123"))
	credential, ok, err := settings.Credential()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "api-key-123", credential)

	require.NoError(t, settings.RemoveCredential())
	_, ok, err = settings.Credential()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSettings_EmptyCredentialRejected(t *testing.T) {
	settings := NewSettings(NewMemStore())
	assert.Error(t, settings.StoreCredential(""))
}

func TestSettings_ModelDefaultsWhenUnset(t *testing.T) {
	settings := NewSettings(NewMemStore())

	model, err := settings.Model()
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultModel, model)
}

func TestSettings_ModelRoundTrip(t *testing.T) {
	settings := NewSettings(NewMemStore())

	require.NoError(t, settings.StoreModel("gemini-2.5-pro"))
	model, err := settings.Model()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", model)

	require.NoError(t, settings.ClearModel())
	model, err = settings.Model()
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultModel, model)
}

func TestSettings_RejectsUnknownModel(t *testing.T) {
	settings := NewSettings(NewMemStore())
	assert.Error(t, settings.StoreModel("gpt-4o"))
}

func TestSettings_StaleStoredModelFallsBack(t *testing.T) {
	mem := NewMemStore()
	// A model id persisted by an older version that is no longer allowed.
	require.NoError(t, mem.Set(ModelKey, "gemini-1.0-retired"))

	settings := NewSettings(mem)
	model, err := settings.Model()
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultModel, model)
}

func TestSettings_OnCredentialChange(t *testing.T) {
	mem := NewMemStore()
	settings := NewSettings(mem)

	var seen []string
	supported := settings.OnCredentialChange(func(value string, ok bool) {
		seen = append(seen, value)
	})
	require.True(t, supported)

	require.NoError(t, settings.StoreCredential("rotated-key"))
	assert.Equal(t, []string{"rotated-key"}, seen)
}

func TestSettings_WatcherUnsupported(t *testing.T) {
	settings := NewSettings(NewFileStore(t.TempDir() + "/settings.json"))
	supported := settings.OnCredentialChange(func(string, bool) {})
	assert.False(t, supported, "FileStore does not watch for external changes")
}
