package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// Summarizer wraps an optional provider. A nil provider means the
// feature is disabled and GenerateSummary returns nothing.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty
// provider name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces the optional narrative block for a report.
// Failures degrade to a summary with warnings instead of failing the
// diagnosis: the scored report is always delivered.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{fmt.Sprintf("LLM provider %s is not available", s.provider.Name())},
		}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return &model.LLMSummary{
			Enabled:  true,
			Provider: s.provider.Name(),
			Model:    s.config.Model,
			Warnings: []string{fmt.Sprintf("Summary generation failed: %v", err)},
		}, nil
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
		Warnings:  []string{fmt.Sprintf("Tokens used: %d", resp.TokensUsed)},
	}, nil
}

// RenderSeparateMarkdown renders the LLM block as a standalone markdown
// document, clearly flagged as generated content.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("# LLM Summary\n\n")
	sb.WriteString("> **GENERATED CONTENT** - This narrative was produced by a language model.\n")
	sb.WriteString("> All confidence scores were determined independently by the matching pipeline.\n\n")
	sb.WriteString(fmt.Sprintf("- Provider: %s\n", summary.Provider))
	sb.WriteString(fmt.Sprintf("- Model: %s\n\n", summary.Model))

	if summary.SummaryMD == "" {
		sb.WriteString("No summary generated.\n")
	} else {
		sb.WriteString(summary.SummaryMD)
		sb.WriteString("\n")
	}

	if len(summary.Warnings) > 0 {
		sb.WriteString("\n## Notes\n\n")
		for _, w := range summary.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return sb.String()
}
