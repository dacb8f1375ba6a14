package explain

import (
	"math"
	"strings"
	"testing"

	"github.com/avelkin/prognosia/internal/model"
)

func candidate(id, name string, confidence float64, matched, profile []string) model.Candidate {
	unmatched := make([]string, 0)
	matchedSet := make(map[string]bool)
	for _, m := range matched {
		matchedSet[m] = true
	}
	for _, s := range profile {
		if !matchedSet[s] {
			unmatched = append(unmatched, s)
		}
	}

	ratio := 0.0
	if len(profile) > 0 {
		ratio = float64(len(matched)) / float64(len(profile))
	}

	return model.Candidate{
		DiseaseID:       id,
		DiseaseName:     name,
		Confidence:      confidence,
		MatchedSymptoms: matched,
		DiseaseSymptoms: profile,
		Explanation:     "A test explanation.",
		Breakdown: model.ScoringBreakdown{
			TextComponent:  confidence * 0.6,
			TextWeight:     0.6,
			MatchComponent: confidence * 0.4,
			MatchWeight:    0.4,
			FinalScore:     confidence,
			SimilarityDetails: model.SimilarityDetails{
				TextSimilarity:       confidence,
				CosineSimilarity:     confidence,
				TotalDiseaseSymptoms: len(profile),
			},
			MatchRatio:               ratio,
			MatchedCount:             len(matched),
			UnmatchedDiseaseSymptoms: unmatched,
		},
	}
}

func TestConfidenceLevel_Bands(t *testing.T) {
	cases := []struct {
		confidence float64
		want       string
	}{
		{0.95, "Very High"},
		{0.8, "Very High"},
		{0.79, "High"},
		{0.6, "High"},
		{0.59, "Moderate"},
		{0.4, "Moderate"},
		{0.39, "Low"},
		{0.2, "Low"},
		{0.19, "Very Low"},
		{0, "Very Low"},
	}

	for _, c := range cases {
		if got := ConfidenceLevel(c.confidence); got != c.want {
			t.Errorf("ConfidenceLevel(%f) = %q, want %q", c.confidence, got, c.want)
		}
	}
}

func TestFeatureImportance_EqualWeights(t *testing.T) {
	c := candidate("flu", "Influenza", 0.5, []string{"fever", "cough"}, []string{"fever", "cough", "fatigue"})

	features := FeatureImportance(c)
	if len(features) != 2 {
		t.Fatalf("Expected 2 features, got %d", len(features))
	}

	for _, f := range features {
		if math.Abs(f.Importance-0.5) > 1e-9 {
			t.Errorf("Expected importance 0.5, got %f", f.Importance)
		}
		if f.Contribution != "Medium" {
			t.Errorf("Expected Medium contribution at confidence 0.5, got %q", f.Contribution)
		}
	}
}

func TestFeatureImportance_HighConfidenceBoost(t *testing.T) {
	c := candidate("flu", "Influenza", 0.8, []string{"fever", "cough"}, []string{"fever", "cough"})

	features := FeatureImportance(c)
	for _, f := range features {
		if math.Abs(f.Importance-0.6) > 1e-9 {
			t.Errorf("Expected boosted importance 0.6, got %f", f.Importance)
		}
		if f.Contribution != "High" {
			t.Errorf("Expected High contribution, got %q", f.Contribution)
		}
	}
}

func TestFeatureImportance_CappedAtOne(t *testing.T) {
	c := candidate("flu", "Influenza", 0.9, []string{"fever"}, []string{"fever"})

	features := FeatureImportance(c)
	if len(features) != 1 {
		t.Fatalf("Expected 1 feature, got %d", len(features))
	}
	if features[0].Importance > 1.0 {
		t.Errorf("Importance exceeds 1.0: %f", features[0].Importance)
	}
}

func TestFeatureImportance_NoMatches(t *testing.T) {
	c := candidate("flu", "Influenza", 0.3, nil, []string{"fever"})

	if features := FeatureImportance(c); len(features) != 0 {
		t.Errorf("Expected no features without matches, got %d", len(features))
	}
}

func TestSymptomAnalysis_Coverage(t *testing.T) {
	analysis := SymptomAnalysis(
		[]string{"cough", "fever"},
		[]string{"fatigue"},
		[]string{"cough", "fever", "fatigue"},
	)

	if analysis.Coverage.Percentage != 66.7 {
		t.Errorf("Expected coverage 66.7, got %f", analysis.Coverage.Percentage)
	}
	if analysis.ReportedAndMatch.Count != 2 {
		t.Errorf("Expected 2 matched, got %d", analysis.ReportedAndMatch.Count)
	}
	if analysis.ExpectedNotReported.Count != 1 {
		t.Errorf("Expected 1 unreported, got %d", analysis.ExpectedNotReported.Count)
	}
}

func TestSymptomAnalysis_TruncatesUnreported(t *testing.T) {
	unmatched := []string{"a", "b", "c", "d", "e", "f", "g"}
	analysis := SymptomAnalysis(nil, unmatched, append([]string{}, unmatched...))

	if len(analysis.ExpectedNotReported.Symptoms) != 5 {
		t.Errorf("Expected 5 shown symptoms, got %d", len(analysis.ExpectedNotReported.Symptoms))
	}
	if analysis.ExpectedNotReported.MoreCount != 2 {
		t.Errorf("Expected more_count 2, got %d", analysis.ExpectedNotReported.MoreCount)
	}
}

func TestMainReason_Tiers(t *testing.T) {
	strong := candidate("flu", "Influenza", 0.9, []string{"fever", "cough", "fatigue"}, []string{"fever", "cough", "fatigue"})
	strong.Breakdown.SimilarityDetails.CosineSimilarity = 0.7

	reason := MainReason(strong)
	if !strings.Contains(reason, "Strong semantic match") {
		t.Errorf("Expected strong semantic tier, got %q", reason)
	}
	if !strings.Contains(reason, "Most of the key symptoms match (3/3)") {
		t.Errorf("Expected full overlap tier, got %q", reason)
	}

	weak := candidate("flu", "Influenza", 0.15, nil, []string{"fever", "cough", "fatigue"})
	weak.Breakdown.SimilarityDetails.CosineSimilarity = 0.1
	if got := MainReason(weak); got != "Symptoms show similarity to this disease" {
		t.Errorf("Expected fallback reason, got %q", got)
	}
}

func TestCompleteDiagnosis_CarriesDuration(t *testing.T) {
	c := candidate("common_cold", "Common Cold", 0.7, []string{"cough"}, []string{"cough", "sneezing"})
	c.Duration = &model.DurationValidation{
		SymptomDays:    40,
		DurationMax:    10,
		PenaltyApplied: 0.25,
		Warning:        "too long",
	}

	report := CompleteDiagnosis(c)
	if report.DurationWarning != "too long" {
		t.Errorf("Expected duration warning carried over, got %q", report.DurationWarning)
	}
	if report.XAI.DurationImpact == nil || report.XAI.DurationImpact.PenaltyApplied != 0.25 {
		t.Error("Expected duration impact block with penalty 0.25")
	}
	if report.Confidence != 70.0 {
		t.Errorf("Expected confidence 70.0, got %f", report.Confidence)
	}
}

func TestSpecialist_LookupAndFallback(t *testing.T) {
	specialists := model.DefaultSpecialists()

	if got := Specialist(specialists, "migraine"); got.Specialist != "Neurologist" {
		t.Errorf("Expected Neurologist for migraine, got %q", got.Specialist)
	}
	if got := Specialist(specialists, "unknown_condition"); got.Specialist != "General Practitioner" {
		t.Errorf("Expected General Practitioner fallback, got %q", got.Specialist)
	}
}
