package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/Saanvi26/ATS-Scorer/internal/llm"
	"github.com/Saanvi26/ATS-Scorer/internal/request"
	"github.com/Saanvi26/ATS-Scorer/internal/types"
)

// fakeClient scripts provider responses for the analyzer.
type fakeClient struct {
	calls     int
	responses []fakeResponse
	lastCall  llm.FunctionCallRequest
	closed    bool
}

type fakeResponse struct {
	args map[string]any
	err  error
}

func (f *fakeClient) GenerateFunctionCall(ctx context.Context, req llm.FunctionCallRequest) (map[string]any, error) {
	f.lastCall = req
	idx := f.calls
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	f.calls++
	resp := f.responses[idx]
	return resp.args, resp.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func goodArgs() map[string]any {
	return map[string]any{
		"score":            float64(85),
		"matchPercentage":  float64(85),
		"keywordMatches":   []any{"React"},
		"missingKeywords":  []any{"Python"},
		"suggestions":      []any{"Learn Python"},
		"detailedAnalysis": "Good fit.",
	}
}

// newTestAnalyzer wires a scripted client behind the cache and shrinks retry
// delays so failing paths stay fast.
func newTestAnalyzer(client *fakeClient, opts Options) *Analyzer {
	a := New(opts)
	a.limiter = request.NewLimiter(request.RateLimiterConfig{MaxConcurrent: 5})
	a.retry = request.RetryConfig{
		MaxRetries:    3,
		BackoffFactor: 2.0,
		MinTimeout:    time.Millisecond,
		MaxTimeout:    4 * time.Millisecond,
	}
	a.cache.newClient = func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error) {
		return client, nil
	}
	return a
}

func validRequest() types.AnalysisRequest {
	return types.AnalysisRequest{
		ResumeText:     "Built UIs in React and TypeScript.",
		JobDescription: "Seeking a React engineer; Python a plus.",
		Credential:     "test-key",
	}
}

func TestAnalyzeResume_Success(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{args: goodArgs()}}}
	a := newTestAnalyzer(client, Options{})

	result, err := a.AnalyzeResume(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, float64(85), result.Score)
	assert.Equal(t, float64(85), result.MatchPercentage)
	assert.Equal(t, []string{"React"}, result.KeywordMatches)
	assert.Equal(t, []string{"Python"}, result.MissingKeywords)
	assert.Equal(t, []string{"Learn Python"}, result.Suggestions)
	assert.Equal(t, "Good fit.", result.DetailedAnalysis)

	byTitle := make(map[string]string)
	for _, item := range result.Feedback {
		byTitle[item.Title] = item.Description
	}
	assert.Equal(t, "React", byTitle[types.FeedbackMatchingSkills])
	assert.Equal(t, "Python", byTitle[types.FeedbackMissingSkills])
}

func TestAnalyzeResume_SendsPromptAndTool(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{args: goodArgs()}}}
	a := newTestAnalyzer(client, Options{})

	_, err := a.AnalyzeResume(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Contains(t, client.lastCall.UserPrompt, "Built UIs in React")
	assert.Contains(t, client.lastCall.UserPrompt, "Seeking a React engineer")
	require.NotNil(t, client.lastCall.Tool)
	assert.Equal(t, ToolName, client.lastCall.Tool.Name)
	assert.Len(t, client.lastCall.Tool.Parameters.Required, 6)
}

func TestAnalyzeResume_MissingCredential(t *testing.T) {
	a := newTestAnalyzer(&fakeClient{responses: []fakeResponse{{args: goodArgs()}}}, Options{})

	req := validRequest()
	req.Credential = ""
	_, err := a.AnalyzeResume(context.Background(), req)

	var typed *request.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, request.KindMissingCredential, typed.Kind)
}

func TestAnalyzeResume_UnrecognizedModel(t *testing.T) {
	a := newTestAnalyzer(&fakeClient{responses: []fakeResponse{{args: goodArgs()}}}, Options{})

	req := validRequest()
	req.Model = "gpt-4o"
	_, err := a.AnalyzeResume(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpt-4o")
}

func TestAnalyzeResume_401NoRetries(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: &googleapi.Error{Code: 401, Message: "unauthorized"}},
	}}
	a := newTestAnalyzer(client, Options{})

	_, err := a.AnalyzeResume(context.Background(), validRequest())

	var typed *request.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, request.KindInvalidCredential, typed.Kind)
	assert.Equal(t, 1, client.calls, "credential failure must not consume retries")
}

func TestAnalyzeResume_429ThenSuccess(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: &googleapi.Error{Code: 429}},
		{err: &googleapi.Error{Code: 429}},
		{args: goodArgs()},
	}}
	a := newTestAnalyzer(client, Options{})

	result, err := a.AnalyzeResume(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, client.calls)
	assert.Equal(t, float64(85), result.Score)
}

func TestAnalyzeResume_OutOfRangeScoreIsSchemaViolation(t *testing.T) {
	args := goodArgs()
	args["score"] = float64(150)
	client := &fakeClient{responses: []fakeResponse{{args: args}}}
	a := newTestAnalyzer(client, Options{})

	_, err := a.AnalyzeResume(context.Background(), validRequest())

	var typed *request.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, request.KindSchemaViolation, typed.Kind)
	assert.Equal(t, 1, client.calls, "schema violations are terminal")
}

func TestAnalyzeResume_NoFunctionCallIsMalformed(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: &llm.NoFunctionCallError{Reason: "response lacks the expected function call", RawText: "I think this resume is great!"}},
	}}
	a := newTestAnalyzer(client, Options{})

	_, err := a.AnalyzeResume(context.Background(), validRequest())

	var typed *request.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, request.KindMalformedResponse, typed.Kind)
	assert.Equal(t, 1, client.calls, "malformed responses are not retried")
	assert.NotContains(t, typed.Message, "I think this resume", "raw payload hidden unless debug")
}

func TestAnalyzeResume_DebugIncludesSnippet(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{err: &llm.NoFunctionCallError{Reason: "response lacks the expected function call", RawText: "I think this resume is great!"}},
	}}
	a := newTestAnalyzer(client, Options{Debug: true})

	_, err := a.AnalyzeResume(context.Background(), validRequest())

	var typed *request.Error
	require.ErrorAs(t, err, &typed)
	assert.Contains(t, typed.Message, "I think this resume is great!")
}

func TestAnalyzeResume_EmptyResumeTextRejected(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{args: goodArgs()}}}
	a := newTestAnalyzer(client, Options{})

	req := validRequest()
	req.ResumeText = ""
	_, err := a.AnalyzeResume(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 0, client.calls, "invalid requests never reach the provider")
}

func TestClientCache_ReusesClientPerCredential(t *testing.T) {
	created := 0
	cache := NewClientCache()
	cache.newClient = func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error) {
		created++
		return &fakeClient{responses: []fakeResponse{{args: goodArgs()}}}, nil
	}

	ctx := context.Background()
	first, err := cache.Get(ctx, llm.DefaultConfig(), "key-a")
	require.NoError(t, err)
	second, err := cache.Get(ctx, llm.DefaultConfig(), "key-a")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, created)

	// Different credential replaces the cached client.
	third, err := cache.Get(ctx, llm.DefaultConfig(), "key-b")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, created)
	assert.True(t, first.(*fakeClient).closed, "replaced client must be closed")
}

func TestClientCache_Invalidate(t *testing.T) {
	created := 0
	cache := NewClientCache()
	cache.newClient = func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error) {
		created++
		return &fakeClient{responses: []fakeResponse{{args: goodArgs()}}}, nil
	}

	ctx := context.Background()
	first, err := cache.Get(ctx, llm.DefaultConfig(), "key-a")
	require.NoError(t, err)

	cache.Invalidate()
	assert.True(t, first.(*fakeClient).closed)

	_, err = cache.Get(ctx, llm.DefaultConfig(), "key-a")
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}
