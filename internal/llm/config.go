// Package llm provides the LLM client abstraction and model configuration
// for the resume analysis calls.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultModel is the model used when the caller has not selected one.
const DefaultModel = "gemini-2.5-flash"

// allowedModels is the fixed enumerated set of recognized model ids.
var allowedModels = []string{
	"gemini-2.5-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
}

// AllowedModels returns the recognized model ids in display order.
func AllowedModels() []string {
	out := make([]string, len(allowedModels))
	copy(out, allowedModels)
	return out
}

// IsAllowedModel reports whether id is a recognized model id.
func IsAllowedModel(id string) bool {
	for _, m := range allowedModels {
		if m == id {
			return true
		}
	}
	return false
}

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Model    string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    DefaultModel,
	}
}

// WithModel returns a new Config using the given model id. Unrecognized ids
// fall back to the default model.
func (c *Config) WithModel(id string) *Config {
	model := id
	if !IsAllowedModel(model) {
		model = DefaultModel
	}
	return &Config{
		Provider: c.Provider,
		Model:    model,
	}
}
