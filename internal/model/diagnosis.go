package model

// SimilarityDetails records the inputs to the text-similarity component
type SimilarityDetails struct {
	TextSimilarity       float64 `json:"text_similarity"`         // Cosine similarity plus exact-match bonus, capped at 1.0
	CosineSimilarity     float64 `json:"cosine_similarity"`       // Raw vector-space similarity before the bonus
	MatchedSymptomsCount int     `json:"matched_symptoms_count"`  // Disease symptoms found as substrings in the raw input
	TotalDiseaseSymptoms int     `json:"total_disease_symptoms"`
	MatchBonus           float64 `json:"match_bonus"`
}

// ScoringBreakdown is the transparent per-disease scoring record.
// Weights always sum to 1.0.
type ScoringBreakdown struct {
	TextComponent            float64           `json:"text_component"`
	TextWeight               float64           `json:"text_weight"`
	MatchComponent           float64           `json:"match_component"`
	MatchWeight              float64           `json:"match_weight"`
	FinalScore               float64           `json:"final_score"`
	SimilarityDetails        SimilarityDetails `json:"similarity_details"`
	MatchRatio               float64           `json:"match_ratio"`
	MatchedCount             int               `json:"matched_count"`
	UnmatchedDiseaseSymptoms []string          `json:"unmatched_disease_symptoms"`
}

// DurationValidation is the audit record of a duration plausibility check.
// The penalty is always recomputed from OriginalConfidence, never stacked.
type DurationValidation struct {
	SymptomDays        int     `json:"symptom_days"`
	DurationMin        int     `json:"typical_duration_min"`
	DurationMax        int     `json:"typical_duration_max"`
	IsChronic          bool    `json:"is_chronic"`
	PenaltyApplied     float64 `json:"penalty_applied"`
	OriginalConfidence float64 `json:"original_confidence"`
	AdjustedConfidence float64 `json:"adjusted_confidence"`
	Warning            string  `json:"warning,omitempty"`
}

// Candidate is one scored disease in a diagnosis, private to its request
type Candidate struct {
	DiseaseID       string   `json:"disease_id"`
	DiseaseName     string   `json:"disease_name"`
	Confidence      float64  `json:"confidence_score"` // Always in [0, 1]
	MatchedSymptoms []string `json:"matched_symptoms"`
	DiseaseSymptoms []string `json:"disease_symptoms"`
	Explanation     string   `json:"explanation"`

	Breakdown ScoringBreakdown `json:"scoring_breakdown"`

	Rank                int     `json:"rank,omitempty"` // 1-based position within the top results
	GapFromPrevious     float64 `json:"score_difference_from_previous,omitempty"`
	ComparativeAnalysis string  `json:"comparative_analysis,omitempty"` // Descriptive only, never affects ranking

	Duration *DurationValidation `json:"duration_validation,omitempty"`
}

// Diagnosis is the ranked result of scoring one symptom input
type Diagnosis struct {
	InputSymptoms []string    `json:"input_symptoms"` // Normalized canonical tokens
	Candidates    []Candidate `json:"possible_diseases"`
	TotalMatched  int         `json:"total_matched"`
}

// Top returns the rank-1 candidate, if any.
func (d *Diagnosis) Top() (Candidate, bool) {
	if len(d.Candidates) == 0 {
		return Candidate{}, false
	}
	return d.Candidates[0], true
}

// Recommendation is the triage-style answer for a symptom input
type Recommendation struct {
	TopDisease      string   `json:"top_disease,omitempty"`
	Confidence      string   `json:"confidence,omitempty"` // Rendered percentage, e.g. "72.4%"
	Explanation     string   `json:"explanation,omitempty"`
	Urgency         string   `json:"urgency"` // "high", "medium", "low" or "normal"
	MatchedSymptoms []string `json:"matched_symptoms,omitempty"`
	Recommendation  string   `json:"recommendation"`
}
