package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetScoreFlags() {
	scoreJobFile = ""
	scoreJobURL = ""
	scoreModel = ""
	scoreAPIKey = ""
	scoreConfigPath = ""
	scoreVerbose = false
	scoreDebug = false
	scoreJSON = false
}

func TestScoreRequiresJobInput(t *testing.T) {
	resetScoreFlags()

	err := runScore(scoreCmd, []string{"resume.pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--job")
}

func TestScoreRejectsBothJobInputs(t *testing.T) {
	resetScoreFlags()
	jobFile := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(jobFile, []byte("Go engineer"), 0o600))
	scoreJobFile = jobFile
	scoreJobURL = "https://example.com/jobs/1"

	err := runScore(scoreCmd, []string{"resume.pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestScoreMissingJobFile(t *testing.T) {
	resetScoreFlags()
	scoreJobFile = filepath.Join(t.TempDir(), "missing.txt")

	err := runScore(scoreCmd, []string{"resume.pdf"})
	assert.Error(t, err)
}
