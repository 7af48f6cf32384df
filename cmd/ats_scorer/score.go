package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Saanvi26/ATS-Scorer/internal/config"
	"github.com/Saanvi26/ATS-Scorer/internal/observability"
	"github.com/Saanvi26/ATS-Scorer/internal/pipeline"
	"github.com/Saanvi26/ATS-Scorer/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume.pdf ...]",
	Short: "Score one or more PDF resumes against a job description",
	Long:  "Score PDF resumes against a job description from a text file or URL. Multiple resumes are scored concurrently.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

var (
	scoreJobFile    string
	scoreJobURL     string
	scoreModel      string
	scoreAPIKey     string
	scoreConfigPath string
	scoreVerbose    bool
	scoreDebug      bool
	scoreJSON       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to text file containing the job description")
	scoreCmd.Flags().StringVarP(&scoreJobURL, "job-url", "u", "", "URL to fetch the job posting from")
	scoreCmd.Flags().StringVarP(&scoreModel, "model", "m", "", "Model id to analyze with")
	scoreCmd.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API key (overrides stored credential)")
	scoreCmd.Flags().StringVarP(&scoreConfigPath, "config", "c", "", "Path to JSON config file")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print progress and detailed analysis")
	scoreCmd.Flags().BoolVar(&scoreDebug, "debug", false, "Include raw provider output in error messages")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(scoreCmd)
}

// scoreRun pairs a resume with its result for ordered output.
type scoreRun struct {
	Name   string                `json:"name"`
	Result *types.AnalysisResult `json:"result"`
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := config.Config{
		Job:    scoreJobFile,
		JobURL: scoreJobURL,
		Model:  scoreModel,
		APIKey: scoreAPIKey,
	}
	if scoreConfigPath != "" {
		fileCfg, err := config.LoadConfig(scoreConfigPath)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}

	var jobDescription string
	if cfg.Job != "" {
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobDescription = string(data)
	}

	credential := cfg.APIKey
	if credential == "" {
		credential = envCredential()
	}

	processor, _, log, err := buildProcessor(cfg.SettingsPath, scoreVerbose, scoreDebug)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	printer := observability.NewPrinter(os.Stdout)
	runs := make([]scoreRun, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, path := range args {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			opts := pipeline.ProcessOptions{
				FileName:       path,
				FileData:       data,
				JobDescription: jobDescription,
				JobURL:         cfg.JobURL,
				Model:          cfg.Model,
				Credential:     credential,
			}
			if scoreVerbose && len(args) == 1 {
				opts.OnProgress = func(event pipeline.ProgressEvent) {
					printer.PrintProgress(event.Step, event.Message)
				}
			}

			result, err := processor.ProcessResume(ctx, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			runs[i] = scoreRun{Name: path, Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if scoreJSON {
		return json.NewEncoder(os.Stdout).Encode(runs)
	}
	for _, run := range runs {
		printer.PrintAnalysisResult(run.Name, run.Result)
		if scoreVerbose {
			printer.PrintDetailedAnalysis(run.Result)
		}
	}
	return nil
}
