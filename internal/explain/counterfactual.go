package explain

import (
	"fmt"
	"math"
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// Counterfactual explains which currently-absent symptoms kept the rank-2
// candidate below rank 1, with an estimated impact per missing symptom.
func Counterfactual(candidates []model.Candidate) model.Counterfactual {
	if len(candidates) < 2 {
		return model.Counterfactual{
			Available: false,
			Message:   "Only one disease detected",
		}
	}

	top, alt := candidates[0], candidates[1]
	gap := top.Confidence - alt.Confidence

	// Profile symptoms of the runner-up the user did not report, in
	// profile order for determinism.
	matchedAlt := toSet(alt.MatchedSymptoms)
	var missing []string
	for _, s := range alt.DiseaseSymptoms {
		if !matchedAlt[s] {
			missing = append(missing, s)
		}
	}
	if len(missing) > 5 {
		missing = missing[:5]
	}

	topProfile := toSet(top.DiseaseSymptoms)

	var critical []model.MissingSymptom
	if len(missing) > 0 {
		impact := math.Min(gap/float64(len(missing)), 0.15)
		for _, symptom := range missing {
			critical = append(critical, model.MissingSymptom{
				Symptom:         symptom,
				EstimatedImpact: round1(impact * 100),
				AlsoInTopChoice: topProfile[symptom],
				ImpactIfPresent: fmt.Sprintf("+%.1f%% confidence", impact*100),
			})
		}
	}
	if len(critical) > 3 {
		critical = critical[:3]
	}

	matchedTop := toSet(top.MatchedSymptoms)
	overlap := sortedKeys(intersectSets(matchedTop, matchedAlt))
	uniqueTop := sortedKeys(subtractSets(matchedTop, matchedAlt))
	uniqueAlt := sortedKeys(subtractSets(matchedAlt, matchedTop))

	union := len(matchedTop) + len(uniqueAlt)
	if union == 0 {
		union = 1
	}

	return model.Counterfactual{
		Available: true,
		TopChoice: model.CandidateSummary{
			Disease:    top.DiseaseName,
			Confidence: round1(top.Confidence * 100),
		},
		Alternative: model.AlternativeSummary{
			Name:       alt.DiseaseName,
			Confidence: round1(alt.Confidence * 100),
			GapFromTop: round1(gap * 100),
		},
		Explanation:     counterfactualText(top, alt, missing, gap),
		CriticalMissing: critical,
		SymptomComparison: model.SymptomComparison{
			SharedWithTopChoice: overlap,
			UniqueToTopChoice:   uniqueTop,
			UniqueToAlternative: uniqueAlt,
			OverlapPercentage:   round1(float64(len(overlap)) / float64(union) * 100),
		},
		DifferentialNote: fmt.Sprintf(
			"Both %s and %s share several symptoms, but %s has %d distinguishing symptoms that better match your report, while %s is missing %d key symptoms.",
			top.DiseaseName, alt.DiseaseName, top.DiseaseName, len(uniqueTop), alt.DiseaseName, len(missing)),
	}
}

func counterfactualText(top, alt model.Candidate, missing []string, gap float64) string {
	if len(missing) == 0 {
		return fmt.Sprintf(
			"%s scored lower (%.1f%%) compared to %s (%.1f%%) primarily because the scoring algorithms gave higher weight to semantic similarity and pattern matching that favors %s. Both diseases have similar symptom profiles, but %s has a closer match to your specific symptom description.",
			alt.DiseaseName, alt.Confidence*100, top.DiseaseName, top.Confidence*100, top.DiseaseName, top.DiseaseName)
	}

	shown := missing
	if len(shown) > 3 {
		shown = shown[:3]
	}
	missingList := strings.Join(shown, ", ")
	if rest := len(missing) - 3; rest > 0 {
		missingList += fmt.Sprintf(", and %d others", rest)
	}

	return fmt.Sprintf(
		"%s received a lower score (%.1f%%) than %s (%.1f%%) by %.1f%% because key symptoms are missing. Specifically, if you had reported: %s, the confidence in %s would increase significantly. These symptoms are hallmark indicators of %s, and their absence lowered its ranking.",
		alt.DiseaseName, alt.Confidence*100, top.DiseaseName, top.Confidence*100, gap*100, missingList, alt.DiseaseName, alt.DiseaseName)
}

func subtractSets(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if !b[k] {
			out[k] = true
		}
	}
	return out
}
