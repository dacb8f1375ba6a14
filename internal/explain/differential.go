package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// Differential checks whether the top two candidates are close enough to
// need distinguishing symptoms. Triggers when the rank-1/rank-2 score gap
// is at most the threshold; fewer than two candidates never trigger.
func Differential(candidates []model.Candidate, threshold float64) model.Differential {
	if len(candidates) < 2 {
		return model.Differential{IsDifferential: false}
	}

	top, alt := candidates[0], candidates[1]
	gap := top.Confidence - alt.Confidence
	if gap > threshold {
		return model.Differential{IsDifferential: false}
	}

	matchedTop := toSet(top.MatchedSymptoms)
	matchedAlt := toSet(alt.MatchedSymptoms)

	shared := sortedKeys(intersectSets(matchedTop, matchedAlt))

	distTop := distinguishing(top, alt)
	distAlt := distinguishing(alt, top)

	explanation := buildDifferentialExplanation(top, alt, shared, distTop, distAlt)

	clarification := dedupe(append(append([]string{}, distTop...), distAlt...))
	if len(clarification) > 4 {
		clarification = clarification[:4]
	}

	return model.Differential{
		IsDifferential:               true,
		DiseasesCompared:             []string{top.DiseaseName, alt.DiseaseName},
		Score1:                       round1(top.Confidence * 100),
		Score2:                       round1(alt.Confidence * 100),
		ScoreDifference:              round1(gap * 100),
		SharedSymptoms:               shared,
		DistinguishingForTop:         distTop,
		DistinguishingForAlternative: distAlt,
		Explanation:                  explanation,
		ClarificationSymptoms:        clarification,
	}
}

// distinguishing returns up to 2 symptoms unique to candidate c's profile
// that the user has not yet matched, falling back to all unique profile
// symptoms when every unique symptom is already matched. Profile order is
// preserved for determinism.
func distinguishing(c, other model.Candidate) []string {
	otherProfile := toSet(other.DiseaseSymptoms)
	matched := toSet(c.MatchedSymptoms)

	var unique, uniqueUnmatched []string
	for _, s := range c.DiseaseSymptoms {
		if otherProfile[s] {
			continue
		}
		unique = append(unique, s)
		if !matched[s] {
			uniqueUnmatched = append(uniqueUnmatched, s)
		}
	}

	out := uniqueUnmatched
	if len(out) == 0 {
		out = unique
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

func buildDifferentialExplanation(top, alt model.Candidate, shared, distTop, distAlt []string) string {
	sharedText := "similar presentation"
	if len(shared) > 0 {
		shown := shared
		if len(shown) > 3 {
			shown = shown[:3]
		}
		sharedText = strings.Join(shown, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "While %s is listed first (%.1f%%), %s has an equal or very similar score (%.1f%%) because of shared symptoms: %s. ",
		top.DiseaseName, top.Confidence*100, alt.DiseaseName, alt.Confidence*100, sharedText)

	if len(distTop) > 0 {
		fmt.Fprintf(&b, "The presence of %s would clearly point to %s. ", strings.Join(distTop, ", "), top.DiseaseName)
	}
	if len(distAlt) > 0 {
		fmt.Fprintf(&b, "Conversely, %s would indicate %s.", strings.Join(distAlt, ", "), alt.DiseaseName)
	}

	return b.String()
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func intersectSets(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
