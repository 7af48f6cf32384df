// Package pipeline provides the high-level orchestration for scoring a
// resume against a job description: validate the file, extract its text,
// run the analysis call, and hand back the scored result.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Saanvi26/ATS-Scorer/internal/analyzer"
	"github.com/Saanvi26/ATS-Scorer/internal/ingest"
	"github.com/Saanvi26/ATS-Scorer/internal/request"
	"github.com/Saanvi26/ATS-Scorer/internal/resume"
	"github.com/Saanvi26/ATS-Scorer/internal/store"
	"github.com/Saanvi26/ATS-Scorer/internal/types"
)

// Step names reported in progress events.
const (
	StepIngest   = "ingest_job"
	StepValidate = "validate_file"
	StepExtract  = "extract_text"
	StepAnalyze  = "analyze"
	StepComplete = "complete"
)

// ProgressEvent represents a progress update during resume processing.
type ProgressEvent struct {
	RunID   string           `json:"run_id"`
	Step    string           `json:"step"`
	Message string           `json:"message"`
	Page    *resume.Progress `json:"page,omitempty"`
}

// ProgressCallback is called as processing advances.
type ProgressCallback func(event ProgressEvent)

// ProcessOptions holds the inputs for one end-to-end scoring run. Exactly
// one of JobDescription or JobURL must be set. The resume comes either as a
// PDF (FileName and FileData) or as already extracted ResumeText.
type ProcessOptions struct {
	FileName       string
	FileData       []byte
	ResumeText     string
	JobDescription string
	JobURL         string
	// Model and Credential override the stored settings when set.
	Model      string
	Credential string
	OnProgress ProgressCallback
}

// ResumeAnalyzer is the scoring backend the processor drives. Satisfied by
// *analyzer.Analyzer.
type ResumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error)
	InvalidateClient()
}

// Processor sequences the scoring flow. Its limiter throttles the heavier
// end-to-end runs to 2 concurrent with 1s spacing, on top of the analyzer's
// own per-call limits; both persist for the process lifetime.
type Processor struct {
	analyzer ResumeAnalyzer
	settings *store.Settings
	limiter  *request.Limiter
	logger   *zap.Logger

	// swappable in tests
	extractText func(data []byte, onProgress func(resume.Progress)) (string, error)
}

var _ ResumeAnalyzer = (*analyzer.Analyzer)(nil)

// New creates a Processor. settings supplies the credential and model when
// ProcessOptions does not override them.
func New(settings *store.Settings, a ResumeAnalyzer, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		analyzer: a,
		settings: settings,
		limiter: request.NewLimiter(request.RateLimiterConfig{
			MaxConcurrent: 2,
			MinTime:       time.Second,
		}),
		logger:      log,
		extractText: resume.ExtractText,
	}
}

// InvalidateClient drops the analyzer's cached provider client. Call after
// the stored credential changes.
func (p *Processor) InvalidateClient() {
	p.analyzer.InvalidateClient()
}

// ProcessResume runs the full flow: validate, extract, analyze. The terminal
// error for provider failures is a *request.Error; file and input problems
// surface as their own typed errors. Nothing is caught and swallowed here.
func (p *Processor) ProcessResume(ctx context.Context, opts ProcessOptions) (*types.AnalysisResult, error) {
	runID := uuid.New().String()
	log := p.logger.With(zap.String("run_id", runID), zap.String("file", opts.FileName))

	jobDescription := opts.JobDescription
	if jobDescription == "" && opts.JobURL != "" {
		p.emit(opts, ProgressEvent{RunID: runID, Step: StepIngest,
			Message: fmt.Sprintf("fetching job posting from %s", opts.JobURL)})
		text, err := ingest.FetchJobDescription(ctx, opts.JobURL, nil)
		if err != nil {
			return nil, err
		}
		jobDescription = text
	}
	if jobDescription == "" {
		return nil, fmt.Errorf("job description is required")
	}

	resumeText := opts.ResumeText
	if resumeText == "" {
		p.emit(opts, ProgressEvent{RunID: runID, Step: StepValidate, Message: "validating resume file"})
		if err := resume.ValidateFile(opts.FileName, opts.FileData); err != nil {
			return nil, err
		}

		p.emit(opts, ProgressEvent{RunID: runID, Step: StepExtract, Message: "extracting resume text"})
		text, err := p.extractText(opts.FileData, func(progress resume.Progress) {
			p.emit(opts, ProgressEvent{
				RunID:   runID,
				Step:    StepExtract,
				Message: fmt.Sprintf("extracted page %d of %d", progress.CurrentPage, progress.TotalPages),
				Page:    &progress,
			})
		})
		if err != nil {
			return nil, err
		}
		resumeText = text
		log.Debug("extracted resume text", zap.Int("chars", len(resumeText)))
	}

	credential, model, err := p.resolveSettings(opts)
	if err != nil {
		return nil, err
	}

	p.emit(opts, ProgressEvent{RunID: runID, Step: StepAnalyze, Message: "analyzing resume against job description"})
	var result *types.AnalysisResult
	err = p.limiter.Schedule(ctx, func(ctx context.Context) error {
		var analyzeErr error
		result, analyzeErr = p.analyzer.AnalyzeResume(ctx, types.AnalysisRequest{
			ResumeText:     resumeText,
			JobDescription: jobDescription,
			Model:          model,
			Credential:     credential,
		})
		return analyzeErr
	})
	if err != nil {
		log.Warn("analysis failed", zap.Error(err))
		return nil, err
	}

	p.emit(opts, ProgressEvent{RunID: runID, Step: StepComplete,
		Message: fmt.Sprintf("score %.0f, match %.0f%%", result.Score, result.MatchPercentage)})
	log.Info("analysis complete",
		zap.Float64("score", result.Score),
		zap.Float64("match_percentage", result.MatchPercentage))
	return result, nil
}

// resolveSettings fills credential and model from stored settings when the
// call did not override them.
func (p *Processor) resolveSettings(opts ProcessOptions) (credential, model string, err error) {
	credential = opts.Credential
	if credential == "" && p.settings != nil {
		stored, ok, err := p.settings.Credential()
		if err != nil {
			return "", "", err
		}
		if ok {
			credential = stored
		}
	}
	if credential == "" {
		return "", "", request.ErrMissingCredential
	}

	model = opts.Model
	if model == "" && p.settings != nil {
		stored, err := p.settings.Model()
		if err != nil {
			return "", "", err
		}
		model = stored
	}
	return credential, model, nil
}

func (p *Processor) emit(opts ProcessOptions, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}
