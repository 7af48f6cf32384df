// Package analyzer builds the provider-specific resume analysis request and
// runs it through the resilient request pipeline.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saanvi26/ATS-Scorer/internal/llm"
	"github.com/Saanvi26/ATS-Scorer/internal/prompts"
	"github.com/Saanvi26/ATS-Scorer/internal/request"
	"github.com/Saanvi26/ATS-Scorer/internal/types"
)

// ToolName is the structured-output function the model must call.
const ToolName = "analyze_resume"

// snippetLen bounds the raw payload excerpt included in malformed-response
// messages when debug is on.
const snippetLen = 200

// Options configures an Analyzer.
type Options struct {
	// Debug includes a truncated snippet of raw malformed payloads in error
	// messages.
	Debug bool
	// AttemptTimeout bounds one provider attempt. Zero uses the default.
	AttemptTimeout time.Duration
}

// Analyzer scores resumes against job descriptions via the LLM provider.
// One Analyzer holds the shared rate limiter, so its concurrency and spacing
// bounds apply across all calls for the process lifetime.
type Analyzer struct {
	cache   *ClientCache
	limiter *request.Limiter
	retry   request.RetryConfig
	opts    Options
}

// New creates an Analyzer with the standard analysis-call limits:
// at most 5 concurrent provider calls, 200ms apart.
func New(opts Options) *Analyzer {
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 60 * time.Second
	}
	return &Analyzer{
		cache: NewClientCache(),
		limiter: request.NewLimiter(request.RateLimiterConfig{
			MaxConcurrent: 5,
			MinTime:       200 * time.Millisecond,
		}),
		retry: request.DefaultRetryConfig(),
		opts:  opts,
	}
}

// InvalidateClient drops the cached provider client. Call when the stored
// credential changes.
func (a *Analyzer) InvalidateClient() {
	a.cache.Invalidate()
}

// ResponseSchema declares the contract the provider's analyze_resume
// arguments must satisfy. Score and matchPercentage are bounds-checked to
// [0,100]; out-of-range values are rejected, never clamped.
func ResponseSchema() request.ResponseSchema {
	min, max := request.Bounds(0, 100)
	return request.ResponseSchema{
		"score":            {Type: request.TypeNumber, Required: true, Min: min, Max: max},
		"matchPercentage":  {Type: request.TypeNumber, Required: true, Min: min, Max: max},
		"keywordMatches":   {Type: request.TypeArray, Required: true},
		"missingKeywords":  {Type: request.TypeArray, Required: true},
		"suggestions":      {Type: request.TypeArray, Required: true},
		"detailedAnalysis": {Type: request.TypeString, Required: true},
	}
}

// analysisTool declares the analyze_resume function schema sent to the provider.
func analysisTool() *llm.Tool {
	return &llm.Tool{
		Name:        ToolName,
		Description: "Report the resume's fit for the job description with scores, keyword overlap, and suggestions.",
		Parameters: &llm.Param{
			Type: "object",
			Properties: map[string]*llm.Param{
				"score": {
					Type:        "number",
					Description: "Overall resume quality score for this role, 0-100.",
				},
				"matchPercentage": {
					Type:        "number",
					Description: "Keyword and skill overlap with the job description, 0-100.",
				},
				"keywordMatches": {
					Type:        "array",
					Description: "Skills and keywords from the job description present in the resume.",
					Items:       &llm.Param{Type: "string"},
				},
				"missingKeywords": {
					Type:        "array",
					Description: "Skills and keywords from the job description absent from the resume.",
					Items:       &llm.Param{Type: "string"},
				},
				"suggestions": {
					Type:        "array",
					Description: "Actionable improvements for this specific role.",
					Items:       &llm.Param{Type: "string"},
				},
				"detailedAnalysis": {
					Type:        "string",
					Description: "Written assessment of the resume's fit.",
				},
			},
			Required: []string{
				"score", "matchPercentage", "keywordMatches",
				"missingKeywords", "suggestions", "detailedAnalysis",
			},
		},
	}
}

// AnalyzeResume scores a resume against a job description. The returned
// error, when the failure comes from the provider call chain, is a
// *request.Error whose kind keys the user-facing message.
func (a *Analyzer) AnalyzeResume(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error) {
	if req.Credential == "" {
		return nil, request.ErrMissingCredential
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis request: %w", err)
	}

	model := req.Model
	if model == "" {
		model = llm.DefaultModel
	}
	if !llm.IsAllowedModel(model) {
		return nil, fmt.Errorf("unrecognized model id %q", model)
	}

	client, err := a.cache.Get(ctx, llm.DefaultConfig().WithModel(model), req.Credential)
	if err != nil {
		return nil, request.Classify(err)
	}

	userPrompt := prompts.Format(prompts.MustGet("analysis.json", "analyze-resume-user"), map[string]string{
		"ResumeText":     req.ResumeText,
		"JobDescription": req.JobDescription,
	})
	call := llm.FunctionCallRequest{
		Model:        model,
		SystemPrompt: prompts.MustGet("analysis.json", "analyze-resume-system"),
		UserPrompt:   userPrompt,
		Tool:         analysisTool(),
	}

	formatted, err := request.MakeAPIRequest(ctx, func(ctx context.Context) (map[string]any, error) {
		raw, err := client.GenerateFunctionCall(ctx, call)
		if err != nil {
			return nil, a.mapProviderError(err)
		}
		return raw, nil
	}, request.Options{
		RateLimit:      a.limiter,
		Retry:          a.retry,
		ResponseSchema: ResponseSchema(),
		AttemptTimeout: a.opts.AttemptTimeout,
	})
	if err != nil {
		return nil, err
	}

	return resultFromFormatted(formatted), nil
}

// mapProviderError converts provider-layer sentinel errors into typed
// pipeline errors before classification.
func (a *Analyzer) mapProviderError(err error) error {
	var noCall *llm.NoFunctionCallError
	if errors.As(err, &noCall) {
		message := noCall.Reason
		if a.opts.Debug && noCall.RawText != "" {
			message = fmt.Sprintf("%s (raw: %s)", noCall.Reason, llm.TruncateSnippet(noCall.RawText, snippetLen))
		}
		return request.NewError(request.KindMalformedResponse, message, err)
	}
	return err
}

// resultFromFormatted converts the schema-formatted map into an
// AnalysisResult with derived feedback.
func resultFromFormatted(formatted map[string]any) *types.AnalysisResult {
	result := &types.AnalysisResult{
		Score:            formatted["score"].(float64),
		MatchPercentage:  formatted["matchPercentage"].(float64),
		KeywordMatches:   toStringSlice(formatted["keywordMatches"]),
		MissingKeywords:  toStringSlice(formatted["missingKeywords"]),
		Suggestions:      toStringSlice(formatted["suggestions"]),
		DetailedAnalysis: formatted["detailedAnalysis"].(string),
	}
	result.DeriveFeedback()
	return result
}

// toStringSlice converts a formatted []any into []string, skipping
// non-string members rather than failing the whole result.
func toStringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
