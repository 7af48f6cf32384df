package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"job_url": "https://example.com/jobs/1",
		"model": "gemini-2.5-pro",
		"verbose": true,
		"port": 8080
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/1", cfg.JobURL)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateMutuallyExclusiveJobInputs(t *testing.T) {
	jobFile := writeConfig(t, "job text")
	cfg := &Config{Job: jobFile, JobURL: "https://example.com"}
	assert.Error(t, cfg.Validate())
}

func TestValidateJobFileMustExist(t *testing.T) {
	cfg := &Config{Job: filepath.Join(t.TempDir(), "missing.txt")}
	assert.Error(t, cfg.Validate())
}

func TestValidatePortRange(t *testing.T) {
	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.NoError(t, (&Config{Port: 8080}).Validate())
	assert.NoError(t, (&Config{}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Model: "gemini-2.5-pro"}
	merged := cfg.MergeWithDefaults(Config{
		Model:  "gemini-2.5-flash",
		APIKey: "default-key",
		Port:   8080,
	})

	assert.Equal(t, "gemini-2.5-pro", merged.Model, "explicit value wins")
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, 8080, merged.Port)
}
