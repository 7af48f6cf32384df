package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Tool declares a structured-output function the model must call. It is a
// provider-neutral mirror of the subset of JSON Schema the analysis needs.
type Tool struct {
	Name        string
	Description string
	Parameters  *Param
}

// Param describes one node of a tool's parameter schema.
type Param struct {
	Type        string // "object", "string", "number", "array"
	Description string
	Properties  map[string]*Param
	Items       *Param
	Required    []string
}

// FunctionCallRequest carries everything needed for one structured call.
type FunctionCallRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Tool         *Tool
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateFunctionCall runs a chat completion that must answer via the
	// declared tool, returning the function-call arguments.
	GenerateFunctionCall(ctx context.Context, req FunctionCallRequest) (map[string]any, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateFunctionCall runs a structured analysis call and extracts the
// function-call arguments from the response.
func (c *GeminiClient) GenerateFunctionCall(ctx context.Context, req FunctionCallRequest) (map[string]any, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = c.config.Model
	}
	if modelName == "" {
		return nil, fmt.Errorf("no model configured")
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}
	if req.Tool != nil {
		model.Tools = []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{toFunctionDeclaration(req.Tool)},
		}}
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingAny,
				AllowedFunctionNames: []string{req.Tool.Name},
			},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return extractFunctionCall(resp, req.Tool)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// toFunctionDeclaration maps a provider-neutral tool to the Gemini schema.
func toFunctionDeclaration(tool *Tool) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        tool.Name,
		Description: tool.Description,
		Parameters:  toSchema(tool.Parameters),
	}
}

func toSchema(p *Param) *genai.Schema {
	if p == nil {
		return nil
	}
	s := &genai.Schema{
		Description: p.Description,
		Required:    p.Required,
	}
	switch p.Type {
	case "object":
		s.Type = genai.TypeObject
		if len(p.Properties) > 0 {
			s.Properties = make(map[string]*genai.Schema, len(p.Properties))
			for name, prop := range p.Properties {
				s.Properties[name] = toSchema(prop)
			}
		}
	case "string":
		s.Type = genai.TypeString
	case "number":
		s.Type = genai.TypeNumber
	case "array":
		s.Type = genai.TypeArray
		s.Items = toSchema(p.Items)
	default:
		s.Type = genai.TypeString
	}
	return s
}

// extractFunctionCall pulls the tool-call arguments from a Gemini response.
// A response without the expected envelope yields a *NoFunctionCallError so
// callers can classify it as a malformed provider response.
func extractFunctionCall(resp *genai.GenerateContentResponse, tool *Tool) (map[string]any, error) {
	if len(resp.Candidates) == 0 {
		return nil, &NoFunctionCallError{Reason: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, &NoFunctionCallError{Reason: "no content in response"}
	}

	var rawText string
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.FunctionCall:
			if tool == nil || p.Name == tool.Name {
				return p.Args, nil
			}
		case genai.Text:
			rawText += string(p)
		}
	}

	return nil, &NoFunctionCallError{
		Reason:  "response lacks the expected function call",
		RawText: rawText,
	}
}
