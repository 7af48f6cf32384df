package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempSettingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "settings.json")
}

func TestAuthSetAndStatus(t *testing.T) {
	authSettingsPath = tempSettingsPath(t)
	t.Cleanup(func() { authSettingsPath = "" })

	require.NoError(t, runAuthSet(nil, []string{"test-api-key"}))

	settings, err := openSettings(authSettingsPath)
	require.NoError(t, err)
	key, ok, err := settings.Credential()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "test-api-key", key)

	require.NoError(t, runAuthClear(nil, nil))
	_, ok, err = settings.Credential()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthSetFromEnv(t *testing.T) {
	authSettingsPath = tempSettingsPath(t)
	t.Cleanup(func() { authSettingsPath = "" })
	t.Setenv("GEMINI_API_KEY", "env-key")

	require.NoError(t, runAuthSet(nil, nil))

	settings, err := openSettings(authSettingsPath)
	require.NoError(t, err)
	key, ok, err := settings.Credential()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "env-key", key)
}

func TestAuthSetRequiresKey(t *testing.T) {
	authSettingsPath = tempSettingsPath(t)
	t.Cleanup(func() { authSettingsPath = "" })
	t.Setenv("GEMINI_API_KEY", "")

	assert.Error(t, runAuthSet(nil, nil))
}
