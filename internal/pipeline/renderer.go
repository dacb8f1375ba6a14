package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// Renderer writes reports to files and prints the terminal summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0644)
}

// Markdown builds the markdown body for a report.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Symptom Analysis Report\n\n")
	fmt.Fprintf(&b, "- Reported symptoms: %s\n", strings.Join(report.InputSymptoms, ", "))
	fmt.Fprintf(&b, "- Symptom duration: %d days\n", report.SymptomDays)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "- Analysis type: %s\n\n", report.AnalysisType)

	if len(report.Diseases) == 0 {
		b.WriteString("No matching conditions found. Please consult a healthcare provider.\n")
	}

	for _, d := range report.Diseases {
		fmt.Fprintf(&b, "## %d. %s - %.1f%% (%s)\n\n", d.Rank, d.Name, d.Confidence, d.ConfidenceLevel)
		fmt.Fprintf(&b, "%s\n\n", d.Explanation)
		fmt.Fprintf(&b, "- Matched symptoms: %s\n", strings.Join(d.MatchedSymptoms, ", "))
		fmt.Fprintf(&b, "- Coverage: %s\n", d.XAI.SymptomAnalysis.Coverage.Text)
		fmt.Fprintf(&b, "- Why: %s\n", d.XAI.Explanation.MainReason)
		if d.DurationWarning != "" {
			fmt.Fprintf(&b, "- Duration note: %s\n", d.DurationWarning)
		}
		b.WriteString("\n")
	}

	if report.Differential.IsDifferential {
		b.WriteString("## Differential diagnosis\n\n")
		fmt.Fprintf(&b, "%s\n\n", report.Differential.Explanation)
		if len(report.Differential.ClarificationSymptoms) > 0 {
			fmt.Fprintf(&b, "Symptoms worth clarifying: %s\n\n",
				strings.Join(report.Differential.ClarificationSymptoms, ", "))
		}
	}

	if report.ConfidenceCheck.NeedsClarification && len(report.ConfidenceCheck.ClarifyingQuestions) > 0 {
		b.WriteString("## Clarifying questions\n\n")
		for _, q := range report.ConfidenceCheck.ClarifyingQuestions {
			fmt.Fprintf(&b, "- %s\n", q.Question)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("This report describes how reported symptoms matched known disease profiles. ")
		b.WriteString("It is not a medical diagnosis. Always consult a healthcare professional.\n")
	}

	return b.String()
}

// RenderLLMMarkdown writes an already rendered LLM summary document.
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	return os.WriteFile(path, []byte(markdown), 0644)
}

// RenderSummary prints the short terminal summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\nSymptoms: %s (%d days)\n", strings.Join(report.InputSymptoms, ", "), report.SymptomDays)

	if len(report.Diseases) == 0 {
		fmt.Println("No matching conditions found.")
		return
	}

	for _, d := range report.Diseases {
		warning := ""
		if d.DurationWarning != "" {
			warning = " [duration warning]"
		}
		fmt.Printf("  %d. %-28s %5.1f%%  %s%s\n", d.Rank, d.Name, d.Confidence, d.ConfidenceLevel, warning)
	}

	if report.Differential.IsDifferential {
		fmt.Printf("\nDifferential: %s\n", strings.Join(report.Differential.DiseasesCompared, " vs "))
	}
	if report.ConfidenceCheck.IsHighConfidence {
		fmt.Println("Top candidate clears the high-confidence threshold.")
	}
}
