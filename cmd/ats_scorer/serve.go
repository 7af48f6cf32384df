package main

import (
	"github.com/spf13/cobra"

	"github.com/Saanvi26/ATS-Scorer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for scoring resumes and managing settings.`,
	RunE:  runServe,
}

var (
	servePort         int
	serveSettingsPath string
	serveVerbose      bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSettingsPath, "settings", "", "Path to the settings file")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	processor, settings, log, err := buildProcessor(serveSettingsPath, serveVerbose, false)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	// An environment credential seeds the store so the server works without
	// a prior `auth set`.
	if key := envCredential(); key != "" {
		if _, ok, _ := settings.Credential(); !ok {
			if err := settings.StoreCredential(key); err != nil {
				return err
			}
		}
	}

	srv := server.New(server.Config{Port: servePort}, processor, settings, log)
	return srv.Start()
}
