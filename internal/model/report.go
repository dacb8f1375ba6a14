package model

import "time"

// Report is the complete explainable diagnosis envelope returned to callers.
// Every number in it is derived from the ScoringBreakdowns; nothing here
// feeds back into scoring.
type Report struct {
	InputSymptoms []string  `json:"input_symptoms"`
	SymptomDays   int       `json:"days"`
	TotalMatches  int       `json:"total_matches"`
	AnalysisType  string    `json:"analysis_type"` // "standard" or "clarification_needed"
	GeneratedAt   time.Time `json:"generated_at"`

	Diseases []DiseaseReport `json:"diseases"`

	Differential    Differential    `json:"differential_diagnosis"`
	ConfidenceCheck ConfidenceCheck `json:"confidence_check"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional narrative summary, never affects scores
}

// DiseaseReport is one fully explained candidate within a Report
type DiseaseReport struct {
	DiseaseID       string   `json:"disease_id"`
	Name            string   `json:"name"`
	Confidence      float64  `json:"confidence"` // Percentage, one decimal
	ConfidenceLevel string   `json:"confidence_level"`
	Explanation     string   `json:"explanation"`
	MatchedSymptoms []string `json:"matched_symptoms"`
	AllSymptoms     []string `json:"all_symptoms"`
	Rank            int      `json:"rank"`

	DurationWarning string `json:"duration_warning,omitempty"`

	XAI XAIBlock `json:"xai"`
}

// XAIBlock groups the explainability structures for one candidate
type XAIBlock struct {
	ScoringBreakdown  ScoringBreakdown   `json:"scoring_breakdown"`
	Explanation       ScoringExplanation `json:"explanation"`
	SymptomAnalysis   SymptomAnalysis    `json:"symptom_analysis"`
	FeatureImportance []Feature          `json:"feature_importance"`
	DurationImpact    *DurationImpact    `json:"duration_impact,omitempty"`
}

// DurationImpact is the condensed duration-penalty view for display
type DurationImpact struct {
	SymptomDays    int     `json:"symptom_days"`
	DurationMax    int     `json:"typical_duration_max"`
	PenaltyApplied float64 `json:"penalty_applied"`
}

// ScoringExplanation is the human-readable "Why this disease?" structure
type ScoringExplanation struct {
	Title                    string            `json:"title"`
	MainReason               string            `json:"main_reason"`
	Components               ScoringComponents `json:"scoring_components"`
	MatchedSymptoms          []string          `json:"matched_symptoms"`
	UnmatchedDiseaseSymptoms []string          `json:"unmatched_disease_symptoms"` // At most 3 shown
	OverallConfidence        float64           `json:"overall_confidence"`         // Percentage
	ConfidenceLevel          string            `json:"confidence_level"`
	Summary                  string            `json:"summary"`
}

// ScoringComponents explains the two weighted scoring inputs
type ScoringComponents struct {
	TextSimilarity ComponentExplanation `json:"text_similarity"`
	SymptomMatch   ComponentExplanation `json:"symptom_match"`
}

// ComponentExplanation describes one weighted component of the score
type ComponentExplanation struct {
	Label       string  `json:"label"`
	Score       float64 `json:"score"` // Percentage contribution
	Explanation string  `json:"explanation"`
	Weight      string  `json:"weight"` // e.g. "60%"
}

// SymptomAnalysis contrasts reported symptoms with the disease profile
type SymptomAnalysis struct {
	ReportedAndMatch    SymptomGroup  `json:"reported_and_match"`
	ExpectedNotReported ExpectedGroup `json:"disease_expects_but_not_reported"`
	Coverage            Coverage      `json:"coverage"`
}

// SymptomGroup lists matched symptoms with a description
type SymptomGroup struct {
	Count       int      `json:"count"`
	Symptoms    []string `json:"symptoms"`
	Description string   `json:"description"`
}

// ExpectedGroup lists profile symptoms the user did not report
type ExpectedGroup struct {
	Count       int      `json:"count"`
	Symptoms    []string `json:"symptoms"` // At most 5 shown
	MoreCount   int      `json:"more_count"`
	Description string   `json:"description"`
}

// Coverage is the matched share of the disease profile
type Coverage struct {
	Percentage float64 `json:"percentage"`
	Text       string  `json:"text"`
}

// Feature is one entry of the feature-importance ranking
type Feature struct {
	Symptom      string  `json:"symptom"`
	Importance   float64 `json:"importance"`   // In [0, 1]
	Contribution string  `json:"contribution"` // "High", "Medium" or "Low"
	Explanation  string  `json:"explanation"`
}

// Differential reports when the top two candidates are too close to call
type Differential struct {
	IsDifferential               bool     `json:"is_differential"`
	DiseasesCompared             []string `json:"diseases_compared,omitempty"`
	Score1                       float64  `json:"score_1,omitempty"`
	Score2                       float64  `json:"score_2,omitempty"`
	ScoreDifference              float64  `json:"score_difference,omitempty"`
	SharedSymptoms               []string `json:"shared_symptoms,omitempty"`
	DistinguishingForTop         []string `json:"distinguishing_for_top,omitempty"`
	DistinguishingForAlternative []string `json:"distinguishing_for_alternative,omitempty"`
	Explanation                  string   `json:"explanation,omitempty"`
	ClarificationSymptoms        []string `json:"clarification_symptoms,omitempty"` // At most 4, deduplicated
}

// CandidateSummary is a name/confidence pair used across analyses
type CandidateSummary struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence"` // Percentage
}

// Question is one field of the patient-context questionnaire
type Question struct {
	Type      string `json:"type"`
	FieldName string `json:"field_name"`
	Question  string `json:"question"`
	Required  bool   `json:"required"`
}

// ConfidenceCheck carries the clarification questionnaire. Clarification is
// always requested when candidates exist; the threshold only toggles the
// IsHighConfidence indicator.
type ConfidenceCheck struct {
	NeedsClarification  bool               `json:"needs_clarification"`
	IsHighConfidence    bool               `json:"is_high_confidence,omitempty"`
	ConfidenceScore     float64            `json:"confidence_score,omitempty"` // Percentage
	Threshold           float64            `json:"threshold,omitempty"`        // Percentage
	Reason              string             `json:"reason,omitempty"`
	PrimaryCandidate    *CandidateSummary  `json:"primary_candidate,omitempty"`
	Alternatives        []CandidateSummary `json:"alternatives,omitempty"` // At most 2
	ClarifyingQuestions []Question         `json:"clarifying_questions,omitempty"`
	NextStep            string             `json:"next_step,omitempty"`
}

// MissingSymptom is one counterfactual "what if reported" entry
type MissingSymptom struct {
	Symptom         string  `json:"symptom"`
	EstimatedImpact float64 `json:"estimated_impact"` // Percentage points
	AlsoInTopChoice bool    `json:"also_in_top_choice"`
	ImpactIfPresent string  `json:"impact_if_present"`
}

// SymptomComparison contrasts the matched sets of the top two candidates
type SymptomComparison struct {
	SharedWithTopChoice []string `json:"shared_with_top_choice"`
	UniqueToTopChoice   []string `json:"unique_to_top_choice"`
	UniqueToAlternative []string `json:"unique_to_alternative"`
	OverlapPercentage   float64  `json:"symptom_overlap_percentage"`
}

// AlternativeSummary extends CandidateSummary with the gap to rank 1
type AlternativeSummary struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	GapFromTop float64 `json:"gap_from_top"`
}

// Counterfactual explains which absent symptoms kept the runner-up lower
type Counterfactual struct {
	Available         bool               `json:"available"`
	Message           string             `json:"message,omitempty"`
	TopChoice         CandidateSummary   `json:"top_choice,omitzero"`
	Alternative       AlternativeSummary `json:"alternative,omitzero"`
	Explanation       string             `json:"counterfactual_explanation,omitempty"`
	CriticalMissing   []MissingSymptom   `json:"critical_missing_symptoms,omitempty"` // At most 3
	SymptomComparison SymptomComparison  `json:"symptom_comparison,omitzero"`
	DifferentialNote  string             `json:"differential_diagnosis_note,omitempty"`
}

// ComparisonAlternative explains why a candidate ranked below the top choice
type ComparisonAlternative struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	WhyLower   string  `json:"why_lower"`
}

// DetailedScore is one row of the side-by-side scoring comparison
type DetailedScore struct {
	Rank       int              `json:"rank"`
	Disease    string           `json:"disease"`
	Confidence float64          `json:"confidence"`
	MainReason string           `json:"main_reason"`
	Breakdown  ScoringBreakdown `json:"scoring_breakdown"`
}

// ComparisonTop is the winning entry of a comparative analysis
type ComparisonTop struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Comparison is the comparative-analysis view over the ranked candidates
type Comparison struct {
	Message        string                  `json:"message,omitempty"` // Set when fewer than two candidates exist
	TopChoice      ComparisonTop           `json:"top_choice,omitzero"`
	Alternatives   []ComparisonAlternative `json:"alternatives,omitempty"`
	DetailedScores []DetailedScore         `json:"detailed_scores,omitempty"`
}

// SpecialistInfo maps a disease to the medical specialist to consult
type SpecialistInfo struct {
	Specialist string `json:"specialist" yaml:"specialist"`
	Reason     string `json:"reason" yaml:"reason"`
}

// LLMSummary is an optional generated narrative. It is produced after
// scoring from the finished report and is never an input to it.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
