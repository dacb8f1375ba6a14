// Package explain turns scored candidates into presentation-ready
// explanation structures. Every function here is a pure transform over the
// diagnosis data model; nothing feeds back into scoring.
package explain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// ConfidenceLevel bands a confidence score for display.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "Very High"
	case confidence >= 0.6:
		return "High"
	case confidence >= 0.4:
		return "Moderate"
	case confidence >= 0.2:
		return "Low"
	default:
		return "Very Low"
	}
}

// MainReason assembles the headline sentence for a candidate from its
// similarity and overlap tiers.
func MainReason(c model.Candidate) string {
	sb := c.Breakdown
	cosine := sb.SimilarityDetails.CosineSimilarity
	matched := sb.MatchedCount
	total := sb.SimilarityDetails.TotalDiseaseSymptoms
	if total == 0 {
		total = 1
	}

	var reasons []string

	if cosine > 0.6 {
		reasons = append(reasons, "Strong semantic match (your symptoms closely match the description of this disease)")
	} else if cosine > 0.3 {
		reasons = append(reasons, "Moderate semantic match (your symptoms are somewhat similar to this disease)")
	}

	if float64(matched) >= float64(total)*0.7 {
		reasons = append(reasons, fmt.Sprintf("Most of the key symptoms match (%d/%d)", matched, total))
	} else if float64(matched) >= float64(total)*0.4 {
		reasons = append(reasons, fmt.Sprintf("Several key symptoms match (%d/%d)", matched, total))
	}

	if len(reasons) == 0 {
		return "Symptoms show similarity to this disease"
	}
	return strings.Join(reasons, " and ")
}

// ScoringExplanation builds the "Why this disease?" structure.
func ScoringExplanation(c model.Candidate) model.ScoringExplanation {
	sb := c.Breakdown

	unmatched := sb.UnmatchedDiseaseSymptoms
	if len(unmatched) > 3 {
		unmatched = unmatched[:3]
	}

	return model.ScoringExplanation{
		Title:      fmt.Sprintf("Why %s?", c.DiseaseName),
		MainReason: MainReason(c),
		Components: model.ScoringComponents{
			TextSimilarity: model.ComponentExplanation{
				Label:       "Text/Semantic Similarity",
				Score:       round1(sb.TextComponent * 100),
				Explanation: explainTextSimilarity(sb),
				Weight:      fmt.Sprintf("%.0f%%", sb.TextWeight*100),
			},
			SymptomMatch: model.ComponentExplanation{
				Label:       "Symptom Overlap",
				Score:       round1(sb.MatchComponent * 100),
				Explanation: explainSymptomMatch(sb),
				Weight:      fmt.Sprintf("%.0f%%", sb.MatchWeight*100),
			},
		},
		MatchedSymptoms:          c.MatchedSymptoms,
		UnmatchedDiseaseSymptoms: unmatched,
		OverallConfidence:        round1(c.Confidence * 100),
		ConfidenceLevel:          ConfidenceLevel(c.Confidence),
		Summary:                  summary(c),
	}
}

func explainTextSimilarity(sb model.ScoringBreakdown) string {
	cosine := sb.SimilarityDetails.CosineSimilarity
	switch {
	case cosine > 0.7:
		return "Your symptom description closely matches the medical terms used for this disease"
	case cosine > 0.4:
		return "Your symptom description is moderately similar to how this disease is typically described"
	default:
		return "Your symptom description has some similarity to this disease"
	}
}

func explainSymptomMatch(sb model.ScoringBreakdown) string {
	matched := sb.MatchedCount
	total := sb.SimilarityDetails.TotalDiseaseSymptoms
	if total == 0 {
		total = 1
	}

	switch {
	case sb.MatchRatio > 0.7:
		return fmt.Sprintf("Most symptoms match: %d out of %d key symptoms are present in your report", matched, total)
	case sb.MatchRatio > 0.4:
		return fmt.Sprintf("Good overlap: %d out of %d key symptoms match your symptoms", matched, total)
	default:
		return fmt.Sprintf("Partial match: %d out of %d key symptoms are present", matched, total)
	}
}

func summary(c model.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s appears to match your symptoms with %.0f%% confidence.\n\n", c.DiseaseName, c.Confidence*100)

	if len(c.MatchedSymptoms) > 0 {
		fmt.Fprintf(&b, "You reported %d symptoms that are typical of %s: ", len(c.MatchedSymptoms), c.DiseaseName)
		shown := c.MatchedSymptoms
		if len(shown) > 3 {
			shown = shown[:3]
		}
		b.WriteString(strings.Join(shown, ", "))
		if rest := len(c.MatchedSymptoms) - 3; rest > 0 {
			fmt.Fprintf(&b, ", and %d more.\n\n", rest)
		} else {
			b.WriteString(".\n\n")
		}
	}

	b.WriteString(c.Explanation)
	return b.String()
}

// SymptomAnalysis contrasts the reported symptoms with the disease profile.
func SymptomAnalysis(matched, unmatched, diseaseSymptoms []string) model.SymptomAnalysis {
	coverage := 0.0
	if len(diseaseSymptoms) > 0 {
		coverage = round1(float64(len(matched)) / float64(len(diseaseSymptoms)) * 100)
	}

	shown := unmatched
	if len(shown) > 5 {
		shown = shown[:5]
	}
	more := len(unmatched) - 5
	if more < 0 {
		more = 0
	}

	return model.SymptomAnalysis{
		ReportedAndMatch: model.SymptomGroup{
			Count:       len(matched),
			Symptoms:    matched,
			Description: fmt.Sprintf("These %d symptoms from your report are key indicators of this disease", len(matched)),
		},
		ExpectedNotReported: model.ExpectedGroup{
			Count:       len(unmatched),
			Symptoms:    shown,
			MoreCount:   more,
			Description: "Other symptoms commonly associated with this disease (but you didn't mention them)",
		},
		Coverage: model.Coverage{
			Percentage: coverage,
			Text:       fmt.Sprintf("You reported %.1f%% of the typical symptoms", coverage),
		},
	}
}

// FeatureImportance distributes equal base weight across the matched
// symptoms, boosted by 1.2 for confident diagnoses and capped at 1.0.
func FeatureImportance(c model.Candidate) []model.Feature {
	if len(c.MatchedSymptoms) == 0 {
		return nil
	}

	base := 1.0 / float64(len(c.MatchedSymptoms))

	contribution := "Low"
	importance := base
	if c.Confidence > 0.7 {
		contribution = "High"
		importance = math.Min(base*1.2, 1.0)
	} else if c.Confidence > 0.4 {
		contribution = "Medium"
	}

	features := make([]model.Feature, 0, len(c.MatchedSymptoms))
	for _, symptom := range c.MatchedSymptoms {
		features = append(features, model.Feature{
			Symptom:      symptom,
			Importance:   importance,
			Contribution: contribution,
			Explanation:  "Present in your symptoms and is a key indicator for this diagnosis",
		})
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Importance > features[j].Importance
	})
	return features
}

// CompleteDiagnosis assembles the full per-disease report entry.
func CompleteDiagnosis(c model.Candidate) model.DiseaseReport {
	report := model.DiseaseReport{
		DiseaseID:       c.DiseaseID,
		Name:            c.DiseaseName,
		Confidence:      round1(c.Confidence * 100),
		ConfidenceLevel: ConfidenceLevel(c.Confidence),
		Explanation:     c.Explanation,
		MatchedSymptoms: c.MatchedSymptoms,
		AllSymptoms:     c.DiseaseSymptoms,
		Rank:            c.Rank,
		XAI: model.XAIBlock{
			ScoringBreakdown:  c.Breakdown,
			Explanation:       ScoringExplanation(c),
			SymptomAnalysis:   SymptomAnalysis(c.MatchedSymptoms, c.Breakdown.UnmatchedDiseaseSymptoms, c.DiseaseSymptoms),
			FeatureImportance: FeatureImportance(c),
		},
	}

	if c.Duration != nil {
		report.DurationWarning = c.Duration.Warning
		report.XAI.DurationImpact = &model.DurationImpact{
			SymptomDays:    c.Duration.SymptomDays,
			DurationMax:    c.Duration.DurationMax,
			PenaltyApplied: c.Duration.PenaltyApplied,
		}
	}

	return report
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
