package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Saanvi26/ATS-Scorer/internal/analyzer"
	"github.com/Saanvi26/ATS-Scorer/internal/logger"
	"github.com/Saanvi26/ATS-Scorer/internal/pipeline"
	"github.com/Saanvi26/ATS-Scorer/internal/store"
)

// openSettings opens the persistent settings file, using the default
// location when path is empty.
func openSettings(path string) (*store.Settings, error) {
	if path == "" {
		defaultPath, err := store.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving settings path: %w", err)
		}
		path = defaultPath
	}
	return store.NewSettings(store.NewFileStore(path)), nil
}

// buildProcessor wires the settings, analyzer and logger into a processor.
func buildProcessor(settingsPath string, verbose, debug bool) (*pipeline.Processor, *store.Settings, *zap.Logger, error) {
	settings, err := openSettings(settingsPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(false, verbose)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	a := analyzer.New(analyzer.Options{Debug: debug})
	return pipeline.New(settings, a, log), settings, log, nil
}

// envCredential returns the API key from the environment, if set.
func envCredential() string {
	return os.Getenv("GEMINI_API_KEY")
}
