package explain

import (
	"fmt"

	"github.com/avelkin/prognosia/internal/model"
)

// Comparative builds the side-by-side view of the ranked candidates:
// why the top choice won, why each alternative scored lower, and a
// detailed per-candidate scoring row.
func Comparative(candidates []model.Candidate) model.Comparison {
	if len(candidates) < 2 {
		return model.Comparison{Message: "Only one disease detected"}
	}

	top := candidates[0]

	reason := top.Explanation
	if reason == "" {
		reason = "Best match for reported symptoms"
	}

	comparison := model.Comparison{
		TopChoice: model.ComparisonTop{
			Name:       top.DiseaseName,
			Confidence: round1(top.Confidence * 100),
			Reason:     reason,
		},
	}

	for _, alt := range candidates[1:] {
		gap := top.Confidence - alt.Confidence
		comparison.Alternatives = append(comparison.Alternatives, model.ComparisonAlternative{
			Name:       alt.DiseaseName,
			Confidence: round1(alt.Confidence * 100),
			WhyLower:   fmt.Sprintf("%.1f%% less likely than %s", round1(gap*100), top.DiseaseName),
		})
	}

	for _, c := range candidates {
		comparison.DetailedScores = append(comparison.DetailedScores, model.DetailedScore{
			Rank:       c.Rank,
			Disease:    c.DiseaseName,
			Confidence: round1(c.Confidence * 100),
			MainReason: MainReason(c),
			Breakdown:  c.Breakdown,
		})
	}

	return comparison
}
