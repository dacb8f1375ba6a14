package llm

import (
	"context"
	"fmt"

	"github.com/avelkin/prognosia/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary of a diagnosis report.
	// The summary is presentation only and never feeds back into scoring.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the scored diagnosis report to summarize
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the API
	APIKey string

	// BaseURL for OpenAI-compatible endpoints (local inference servers etc)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
		NoProxy:    mc.NoProxy,
	}
}

// BuildPrompt constructs the default summarization prompt. The model is
// constrained to the diseases already in the report and must not add
// conditions or treatment advice of its own.
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are summarizing an automated symptom-matching report for a patient. The system matches reported symptoms against known disease profiles - it NEVER establishes a medical diagnosis.

CRITICAL RULES:
1. You MUST ONLY discuss these conditions from the report:
%s

2. DO NOT introduce conditions, medications, or treatments not in this list.
3. Never present any candidate as a confirmed diagnosis - only describe how well symptoms matched.
4. Always note that a healthcare professional should be consulted.

Report Summary:
- Reported symptoms: %s
- Symptom duration: %d days
- Candidates found: %d

Candidates:
`, joinDiseases(report.Diseases), joinSymptoms(report.InputSymptoms), report.SymptomDays, len(report.Diseases))

	for i, d := range report.Diseases {
		if i >= 3 {
			break
		}
		prompt += fmt.Sprintf("- %s: %.1f%% confidence (%s), matched %d of %d symptoms\n",
			d.Name, d.Confidence, d.ConfidenceLevel, len(d.MatchedSymptoms), len(d.AllSymptoms))
		if d.DurationWarning != "" {
			prompt += fmt.Sprintf("  Duration note: %s\n", d.DurationWarning)
		}
	}

	prompt += "\nProvide a 3-4 sentence plain-language summary of the match quality, ending with a reminder to see a doctor."

	return prompt
}

// Helper functions

func joinDiseases(diseases []model.DiseaseReport) string {
	if len(diseases) == 0 {
		return "(No candidates matched)"
	}
	result := ""
	for _, d := range diseases {
		result += fmt.Sprintf("\n- %s", d.Name)
	}
	return result
}

func joinSymptoms(symptoms []string) string {
	if len(symptoms) == 0 {
		return "(none)"
	}
	result := symptoms[0]
	for _, s := range symptoms[1:] {
		result += ", " + s
	}
	return result
}
