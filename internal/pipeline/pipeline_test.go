package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avelkin/prognosia/internal/model"
)

func testBase() *model.KnowledgeBase {
	diseases := []model.Disease{
		{
			ID:          "common_cold",
			Name:        "Common Cold",
			Symptoms:    []string{"cough", "sore throat", "runny nose", "sneezing"},
			Explanation: "A viral infection of the upper respiratory tract.",
			DurationMin: 2,
			DurationMax: 10,
		},
		{
			ID:          "flu",
			Name:        "Influenza",
			Symptoms:    []string{"fever", "body aches", "cough", "fatigue"},
			Explanation: "A contagious respiratory illness caused by influenza viruses.",
			DurationMin: 3,
			DurationMax: 14,
		},
		{
			ID:          "hypertension",
			Name:        "Hypertension",
			Symptoms:    []string{"headache", "dizziness", "blurred vision"},
			Explanation: "Persistently elevated blood pressure.",
			DurationMin: 1,
			DurationMax: 365,
			IsChronic:   true,
		},
	}

	base := &model.KnowledgeBase{
		Diseases: make(map[string]model.Disease),
		Keywords: []model.KeywordRule{
			{Symptom: "cough", Keywords: []string{"cough", "coughing"}},
			{Symptom: "sore throat", Keywords: []string{"sore throat", "throat pain"}},
			{Symptom: "runny nose", Keywords: []string{"runny nose", "nasal discharge"}},
			{Symptom: "fever", Keywords: []string{"fever", "temperature"}},
			{Symptom: "headache", Keywords: []string{"headache", "head pain"}},
		},
	}
	for _, d := range diseases {
		base.Order = append(base.Order, d.ID)
		base.Diseases[d.ID] = d
	}
	return base
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func testPipeline() *Pipeline {
	return New(testConfig(), testBase())
}

func TestDiagnose_FullOverlapRanksFirst(t *testing.T) {
	p := testPipeline()

	diag, err := p.Diagnose("cough, sore throat, runny nose, sneezing")
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}

	top, ok := diag.Top()
	if !ok {
		t.Fatal("Expected at least one candidate")
	}
	if top.DiseaseID != "common_cold" {
		t.Errorf("Expected common_cold at rank 1, got %s", top.DiseaseID)
	}
	if top.Rank != 1 {
		t.Errorf("Expected rank 1, got %d", top.Rank)
	}
	if top.Breakdown.MatchRatio != 1.0 {
		t.Errorf("Expected full profile coverage, got match ratio %f", top.Breakdown.MatchRatio)
	}
}

func TestDiagnose_EmptyInput(t *testing.T) {
	p := testPipeline()

	_, err := p.Diagnose("   ")
	if !model.IsInputError(err) {
		t.Errorf("Expected InputError, got %v", err)
	}
}

func TestDiagnose_NotInitialized(t *testing.T) {
	p := New(testConfig(), &model.KnowledgeBase{})

	_, err := p.Diagnose("cough")
	if !errors.Is(err, model.ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestDiagnoseReport_NoDurationWarningInRange(t *testing.T) {
	p := testPipeline()

	report, err := p.DiagnoseReport(context.Background(), "cough, sore throat, runny nose", 3)
	if err != nil {
		t.Fatalf("DiagnoseReport failed: %v", err)
	}

	if len(report.Diseases) == 0 {
		t.Fatal("Expected candidates in report")
	}
	if report.Diseases[0].DurationWarning != "" {
		t.Errorf("Expected no duration warning for in-range days, got %q", report.Diseases[0].DurationWarning)
	}
	if report.SymptomDays != 3 {
		t.Errorf("Expected days 3, got %d", report.SymptomDays)
	}
}

func TestDiagnoseReport_QuickOnsetPenalty(t *testing.T) {
	p := testPipeline()

	report, err := p.DiagnoseReport(context.Background(), "cough, sore throat, runny nose", 1)
	if err != nil {
		t.Fatalf("DiagnoseReport failed: %v", err)
	}

	top := report.Diseases[0]
	if top.DiseaseID != "common_cold" {
		t.Fatalf("Expected common_cold first, got %s", top.DiseaseID)
	}
	if !strings.Contains(top.DurationWarning, "2+ days") {
		t.Errorf("Expected quick-onset warning naming the minimum, got %q", top.DurationWarning)
	}
	if top.XAI.DurationImpact == nil {
		t.Fatal("Expected duration impact block")
	}
	// 0.15 * (2-1)/2 for a 2-day minimum
	if top.XAI.DurationImpact.PenaltyApplied != 0.075 {
		t.Errorf("Expected penalty 0.075, got %f", top.XAI.DurationImpact.PenaltyApplied)
	}
}

func TestDiagnoseReport_LongDurationPenalty(t *testing.T) {
	p := testPipeline()

	report, err := p.DiagnoseReport(context.Background(), "cough, sore throat, runny nose", 40)
	if err != nil {
		t.Fatalf("DiagnoseReport failed: %v", err)
	}

	top := report.Diseases[0]
	if top.XAI.DurationImpact == nil {
		t.Fatal("Expected duration impact block")
	}
	// The above_max rule comes first in the default schedule, so 40 days
	// against a 10-day maximum stays at the 0.25 penalty.
	if top.XAI.DurationImpact.PenaltyApplied != 0.25 {
		t.Errorf("Expected penalty 0.25, got %f", top.XAI.DurationImpact.PenaltyApplied)
	}
	if !strings.Contains(top.DurationWarning, "unusual") && !strings.Contains(top.DurationWarning, "persisted") {
		t.Errorf("Expected long-duration warning, got %q", top.DurationWarning)
	}
}

func TestDiagnoseReport_AlwaysRequestsClarification(t *testing.T) {
	p := testPipeline()

	report, err := p.DiagnoseReport(context.Background(), "cough, fever", 3)
	if err != nil {
		t.Fatalf("DiagnoseReport failed: %v", err)
	}

	if !report.ConfidenceCheck.NeedsClarification {
		t.Error("Expected clarification to always be requested when candidates exist")
	}
	if report.AnalysisType != "clarification_needed" {
		t.Errorf("Expected analysis type clarification_needed, got %s", report.AnalysisType)
	}
	if len(report.ConfidenceCheck.ClarifyingQuestions) != 7 {
		t.Errorf("Expected the 7-question form, got %d questions", len(report.ConfidenceCheck.ClarifyingQuestions))
	}
}

func TestDiagnoseReport_DefaultDays(t *testing.T) {
	p := testPipeline()

	report, err := p.DiagnoseReport(context.Background(), "cough", 0)
	if err != nil {
		t.Fatalf("DiagnoseReport failed: %v", err)
	}
	if report.SymptomDays != 3 {
		t.Errorf("Expected default of 3 days, got %d", report.SymptomDays)
	}
}

func TestDiagnoseReport_Cached(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()
	p := New(cfg, testBase())

	first, err := p.DiagnoseReport(context.Background(), "cough, sore throat", 3)
	if err != nil {
		t.Fatalf("DiagnoseReport failed: %v", err)
	}

	second, err := p.DiagnoseReport(context.Background(), "cough, sore throat", 3)
	if err != nil {
		t.Fatalf("DiagnoseReport failed on cache hit: %v", err)
	}

	if !first.GeneratedAt.Equal(second.GeneratedAt) {
		t.Error("Expected cached report on second identical request")
	}
}

func TestExplain_KnownAndUnknown(t *testing.T) {
	p := testPipeline()

	detail, err := p.Explain("flu")
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}
	if detail.Name != "Influenza" || len(detail.Symptoms) != 4 {
		t.Errorf("Unexpected detail: %+v", detail)
	}

	_, err = p.Explain("dragon_pox")
	if !model.IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestExplainDetailed_SpecialistReferral(t *testing.T) {
	p := testPipeline()

	exp, err := p.ExplainDetailed("hypertension")
	if err != nil {
		t.Fatalf("ExplainDetailed failed: %v", err)
	}
	if exp.Specialist.Specialist != "Cardiologist" {
		t.Errorf("Expected cardiologist referral, got %q", exp.Specialist.Specialist)
	}

	// Unmapped disease falls back to a GP referral.
	cfg := testConfig()
	cfg.Specialists = map[string]model.SpecialistInfo{}
	fallback := New(cfg, testBase())
	exp, err = fallback.ExplainDetailed("flu")
	if err != nil {
		t.Fatalf("ExplainDetailed failed: %v", err)
	}
	if exp.Specialist.Specialist != "General Practitioner" {
		t.Errorf("Expected GP fallback, got %q", exp.Specialist.Specialist)
	}
}

func TestRecommend_UrgencyKeyword(t *testing.T) {
	p := testPipeline()

	rec, err := p.Recommend("fever, cough")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if rec.Urgency != "high" {
		t.Errorf("Expected high urgency for fever, got %s", rec.Urgency)
	}
	if rec.TopDisease == "" {
		t.Error("Expected a top disease")
	}
	if !strings.HasSuffix(rec.Confidence, "%") {
		t.Errorf("Expected rendered percentage, got %q", rec.Confidence)
	}
}

func TestRecommend_ConfidenceDrivenUrgency(t *testing.T) {
	p := testPipeline()

	rec, err := p.Recommend("cough, sore throat, runny nose, sneezing")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if rec.Urgency != "medium" {
		t.Errorf("Expected medium urgency for confident non-urgent match, got %s", rec.Urgency)
	}
}

func TestRecommend_InvalidInput(t *testing.T) {
	p := testPipeline()

	rec, err := p.Recommend("")
	if err != nil {
		t.Fatalf("Expected graceful recommendation, got %v", err)
	}
	if rec.Urgency != "low" || !strings.Contains(rec.Recommendation, "valid symptoms") {
		t.Errorf("Unexpected recommendation: %+v", rec)
	}
}

func TestCompare_RankedRows(t *testing.T) {
	p := testPipeline()

	cmp, err := p.Compare("cough, fever, sore throat")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(cmp.DetailedScores) < 2 {
		t.Fatalf("Expected at least two detailed rows, got %d", len(cmp.DetailedScores))
	}
	if cmp.DetailedScores[0].Rank != 1 {
		t.Errorf("Expected first row at rank 1, got %d", cmp.DetailedScores[0].Rank)
	}
}

func TestSymptoms_SortedCatalogue(t *testing.T) {
	p := testPipeline()

	listing, err := p.Symptoms()
	if err != nil {
		t.Fatalf("Symptoms failed: %v", err)
	}
	if listing.TotalSymptoms != 5 {
		t.Errorf("Expected 5 symptoms, got %d", listing.TotalSymptoms)
	}
	for i := 1; i < len(listing.Symptoms); i++ {
		if listing.Symptoms[i-1] > listing.Symptoms[i] {
			t.Fatalf("Expected sorted symptoms, got %v", listing.Symptoms)
		}
	}
}

func TestDiseases_SortedByName(t *testing.T) {
	p := testPipeline()

	catalogue, err := p.Diseases()
	if err != nil {
		t.Fatalf("Diseases failed: %v", err)
	}
	if catalogue.TotalDiseases != 3 {
		t.Errorf("Expected 3 diseases, got %d", catalogue.TotalDiseases)
	}
	if catalogue.Diseases[0].Name != "Common Cold" {
		t.Errorf("Expected Common Cold first alphabetically, got %s", catalogue.Diseases[0].Name)
	}
}

func TestRenderer_MarkdownSections(t *testing.T) {
	p := testPipeline()

	report, err := p.DiagnoseReport(context.Background(), "cough, sore throat, runny nose", 3)
	if err != nil {
		t.Fatalf("DiagnoseReport failed: %v", err)
	}

	md := p.renderer.Markdown(report)

	for _, want := range []string{
		"# Symptom Analysis Report",
		"Common Cold",
		"Reported symptoms: cough, sore throat, runny nose",
		"not a medical diagnosis",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestRenderer_FooterToggle(t *testing.T) {
	r := NewRenderer(false)

	md := r.Markdown(&model.Report{InputSymptoms: []string{"cough"}})
	if strings.Contains(md, "not a medical diagnosis") {
		t.Error("Expected no footer when disabled")
	}
}
