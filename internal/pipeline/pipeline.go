package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avelkin/prognosia/internal/cache"
	"github.com/avelkin/prognosia/internal/explain"
	"github.com/avelkin/prognosia/internal/extract"
	"github.com/avelkin/prognosia/internal/llm"
	"github.com/avelkin/prognosia/internal/model"
	"github.com/avelkin/prognosia/internal/score"
	"github.com/avelkin/prognosia/internal/validate"
)

// Pipeline orchestrates the complete diagnosis process: extraction,
// scoring, duration validation and explanation assembly. It is immutable
// after construction and safe for concurrent requests.
type Pipeline struct {
	base       *model.KnowledgeBase
	extractor  *extract.SymptomExtractor
	scorer     *score.Scorer
	durations  *validate.DurationValidator
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	reports    cache.Cache     // Optional report cache (nil if disabled)
	config     *model.Config
}

// New creates a pipeline over an already loaded knowledge base.
func New(cfg *model.Config, base *model.KnowledgeBase) *Pipeline {
	// Create LLM summarizer if configured
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var reports cache.Cache
	if cfg.Cache.Enabled {
		reports = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	p := &Pipeline{
		base:      base,
		extractor: extract.NewSymptomExtractor(base.Keywords),
		durations: validate.NewDurationValidator(cfg.Duration.Rules),
		renderer:  NewRenderer(cfg.Output.IncludeFooter),

		summarizer: summarizer,
		reports:    reports,
		config:     cfg,
	}
	if !base.IsEmpty() {
		p.scorer = score.NewScorer(base, cfg.Scoring)
	}
	return p
}

// Diagnose scores the symptom input and returns the ranked candidates.
// Duration is not applied here; DiagnoseReport layers it on top.
func (p *Pipeline) Diagnose(input string) (*model.Diagnosis, error) {
	if p.base.IsEmpty() || p.scorer == nil {
		return nil, model.ErrNotInitialized
	}
	if strings.TrimSpace(input) == "" {
		return nil, &model.InputError{Reason: "please provide symptoms"}
	}

	tokens := p.extractor.Extract(input)
	if len(tokens) == 0 {
		return nil, &model.InputError{Reason: "no recognizable symptoms in input"}
	}

	candidates := p.scorer.Score(input, tokens)
	ranked := p.scorer.Rank(candidates)

	return &model.Diagnosis{
		InputSymptoms: tokens,
		Candidates:    ranked,
		TotalMatched:  len(ranked),
	}, nil
}

// DiagnoseReport runs a full diagnosis and assembles the explainable
// report envelope: per-disease XAI blocks, duration penalties, the
// differential block and the confidence questionnaire.
func (p *Pipeline) DiagnoseReport(ctx context.Context, input string, days int) (*model.Report, error) {
	if days <= 0 {
		days = 3
	}

	diag, err := p.Diagnose(input)
	if err != nil {
		return nil, err
	}

	key := cache.ReportKey(diag.InputSymptoms, days)
	if p.reports != nil {
		if data, found := p.reports.Get(key); found {
			var cached model.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	p.durations.Apply(p.base, diag.Candidates, days)

	check := explain.ConfidenceCheck(diag.Candidates, p.config.Analysis.ConfidenceThreshold)

	analysisType := "standard"
	if check.NeedsClarification {
		analysisType = "clarification_needed"
	}

	report := &model.Report{
		InputSymptoms:   diag.InputSymptoms,
		SymptomDays:     days,
		TotalMatches:    diag.TotalMatched,
		AnalysisType:    analysisType,
		GeneratedAt:     time.Now().UTC(),
		Differential:    explain.Differential(diag.Candidates, p.config.Analysis.DifferentialThreshold),
		ConfidenceCheck: check,
	}

	for _, c := range diag.Candidates {
		report.Diseases = append(report.Diseases, explain.CompleteDiagnosis(c))
	}

	// Generate LLM summary if enabled (AFTER scoring, never affects score)
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		llmSummary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			// Don't fail the diagnosis, just warn
			fmt.Printf("Warning: LLM summary generation failed: %v\n", err)
		} else if llmSummary != nil {
			report.LLM = llmSummary
		}
	}

	if p.reports != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.reports.Set(key, data, 0)
		}
	}

	return report, nil
}

// Explain returns the stored record for a disease.
func (p *Pipeline) Explain(diseaseID string) (*model.DiseaseDetail, error) {
	if p.base.IsEmpty() {
		return nil, model.ErrNotInitialized
	}

	disease, ok := p.base.Disease(diseaseID)
	if !ok {
		return nil, &model.NotFoundError{DiseaseID: diseaseID}
	}

	return &model.DiseaseDetail{
		DiseaseID:   disease.ID,
		Name:        disease.Name,
		Symptoms:    disease.Symptoms,
		Explanation: disease.Explanation,
	}, nil
}

// DiseaseExplanation extends the stored record with a specialist referral.
type DiseaseExplanation struct {
	model.DiseaseDetail
	Specialist model.SpecialistInfo `json:"specialist"`
}

// ExplainDetailed returns the disease record plus the specialist to consult.
func (p *Pipeline) ExplainDetailed(diseaseID string) (*DiseaseExplanation, error) {
	detail, err := p.Explain(diseaseID)
	if err != nil {
		return nil, err
	}

	return &DiseaseExplanation{
		DiseaseDetail: *detail,
		Specialist:    explain.Specialist(p.config.Specialists, diseaseID),
	}, nil
}

// Recommend produces the triage-style answer for a symptom input. Urgency
// is keyword-driven first, confidence-driven second.
func (p *Pipeline) Recommend(input string) (*model.Recommendation, error) {
	diag, err := p.Diagnose(input)
	if model.IsInputError(err) {
		return &model.Recommendation{
			Recommendation: "Please provide valid symptoms",
			Urgency:        "low",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	top, ok := diag.Top()
	if !ok {
		return &model.Recommendation{
			Recommendation: "No matching diseases found. Please consult a healthcare provider.",
			Urgency:        "normal",
		}, nil
	}

	urgentKeywords := []string{"fever", "chest pain", "difficulty breathing", "severe", "emergency"}
	inputLower := strings.ToLower(input)
	urgent := false
	for _, kw := range urgentKeywords {
		if strings.Contains(inputLower, kw) {
			urgent = true
			break
		}
	}

	urgency := "low"
	switch {
	case urgent:
		urgency = "high"
	case top.Confidence > 0.5:
		urgency = "medium"
	}

	return &model.Recommendation{
		TopDisease:      top.DiseaseName,
		Confidence:      fmt.Sprintf("%.1f%%", top.Confidence*100),
		Explanation:     top.Explanation,
		Urgency:         urgency,
		MatchedSymptoms: top.MatchedSymptoms,
		Recommendation:  fmt.Sprintf("Based on your symptoms, %s is likely. %s", top.DiseaseName, top.Explanation),
	}, nil
}

// Compare builds the side-by-side comparative analysis over the ranked
// candidates for a symptom input.
func (p *Pipeline) Compare(input string) (*model.Comparison, error) {
	diag, err := p.Diagnose(input)
	if err != nil {
		return nil, err
	}
	if len(diag.Candidates) == 0 {
		return nil, &model.InputError{Reason: "no diseases found to compare"}
	}

	comparison := explain.Comparative(diag.Candidates)
	return &comparison, nil
}

// Counterfactual explains which absent symptoms kept the runner-up below
// the top choice for a symptom input.
func (p *Pipeline) Counterfactual(input string) (*model.Counterfactual, error) {
	diag, err := p.Diagnose(input)
	if err != nil {
		return nil, err
	}

	cf := explain.Counterfactual(diag.Candidates)
	return &cf, nil
}

// SymptomListing is the catalogue of recognized canonical symptoms.
type SymptomListing struct {
	TotalSymptoms int      `json:"total_symptoms"`
	Symptoms      []string `json:"symptoms"`
}

// Symptoms lists all canonical symptoms, sorted.
func (p *Pipeline) Symptoms() (*SymptomListing, error) {
	if p.base.IsEmpty() {
		return nil, model.ErrNotInitialized
	}

	names := p.base.SymptomNames()
	sort.Strings(names)

	return &SymptomListing{
		TotalSymptoms: len(names),
		Symptoms:      names,
	}, nil
}

// DiseaseCatalogue is the catalogue of known diseases.
type DiseaseCatalogue struct {
	TotalDiseases int                    `json:"total_diseases"`
	Diseases      []model.DiseaseListing `json:"diseases"`
}

// Diseases lists every known disease, sorted by display name.
func (p *Pipeline) Diseases() (*DiseaseCatalogue, error) {
	if p.base.IsEmpty() {
		return nil, model.ErrNotInitialized
	}

	listings := make([]model.DiseaseListing, 0, len(p.base.Order))
	for _, id := range p.base.Order {
		d := p.base.Diseases[id]
		listings = append(listings, model.DiseaseListing{
			ID:           id,
			Name:         d.Name,
			SymptomCount: len(d.Symptoms),
		})
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Name < listings[j].Name
	})

	return &DiseaseCatalogue{
		TotalDiseases: len(listings),
		Diseases:      listings,
	}, nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	// Render JSON
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	// Render Markdown
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Render LLM summary to separate file if present
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		llmMarkdown := llm.RenderSeparateMarkdown(report.LLM)
		if err := p.renderer.RenderLLMMarkdown(llmMarkdown, llmMdPath); err != nil {
			fmt.Printf("Warning: Failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM Summary: %s\n", llmMdPath)
		}
	}

	// Print summary to stdout
	p.renderer.RenderSummary(report)

	return nil
}
