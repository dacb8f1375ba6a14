package score

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// Scorer computes per-disease confidence scores. The vector space is fit
// once over the knowledge base at construction and the scorer is read-only
// afterwards, so concurrent requests need no synchronization.
type Scorer struct {
	base         *model.KnowledgeBase
	vectorizer   *Vectorizer
	diseaseTexts map[string]string // Concatenated symptom text per disease
	cfg          model.ScoringConfig
}

// NewScorer fits the vectorizer over all disease symptom texts.
func NewScorer(base *model.KnowledgeBase, cfg model.ScoringConfig) *Scorer {
	texts := make([]string, 0, len(base.Order))
	diseaseTexts := make(map[string]string, len(base.Order))

	for _, id := range base.Order {
		text := strings.Join(base.Diseases[id].Symptoms, " ")
		texts = append(texts, text)
		diseaseTexts[id] = text
	}

	return &Scorer{
		base:         base,
		vectorizer:   FitVectorizer(texts),
		diseaseTexts: diseaseTexts,
		cfg:          cfg,
	}
}

// Score scores every disease independently against the raw input text and
// the normalized tokens, returning the candidates whose confidence clears
// the inclusion threshold (strict), in knowledge-base order.
func (s *Scorer) Score(rawInput string, tokens []string) []model.Candidate {
	var candidates []model.Candidate

	for _, id := range s.base.Order {
		disease := s.base.Diseases[id]

		textSim, simDetails := s.textSimilarity(rawInput, disease)

		matched := intersect(tokens, disease.Symptoms)
		unmatched := subtract(disease.Symptoms, tokens)

		matchRatio := 0.0
		if len(disease.Symptoms) > 0 {
			matchRatio = float64(len(matched)) / float64(len(disease.Symptoms))
		}

		textComponent := textSim * s.cfg.TextWeight
		matchComponent := matchRatio * s.cfg.MatchWeight
		confidence := textComponent + matchComponent

		if confidence <= s.cfg.InclusionThreshold {
			continue
		}

		candidates = append(candidates, model.Candidate{
			DiseaseID:       id,
			DiseaseName:     disease.Name,
			Confidence:      confidence,
			MatchedSymptoms: matched,
			DiseaseSymptoms: disease.Symptoms,
			Explanation:     disease.Explanation,
			Breakdown: model.ScoringBreakdown{
				TextComponent:            textComponent,
				TextWeight:               s.cfg.TextWeight,
				MatchComponent:           matchComponent,
				MatchWeight:              s.cfg.MatchWeight,
				FinalScore:               confidence,
				SimilarityDetails:        simDetails,
				MatchRatio:               matchRatio,
				MatchedCount:             len(matched),
				UnmatchedDiseaseSymptoms: unmatched,
			},
		})
	}

	return candidates
}

// textSimilarity combines vector-space similarity between the raw input and
// the disease's symptom text with an exact-substring bonus, capped at 1.0.
func (s *Scorer) textSimilarity(rawInput string, disease model.Disease) (float64, model.SimilarityDetails) {
	inputLower := strings.ToLower(rawInput)
	cosine := s.vectorizer.Similarity(inputLower, s.diseaseTexts[disease.ID])

	exactMatches := 0
	for _, symptom := range disease.Symptoms {
		if strings.Contains(inputLower, strings.ToLower(symptom)) {
			exactMatches++
		}
	}

	bonus := 0.0
	if len(disease.Symptoms) > 0 {
		bonus = float64(exactMatches) / float64(len(disease.Symptoms)) * s.cfg.ExactMatchBonus
	}

	sim := cosine + bonus
	if sim > 1.0 {
		sim = 1.0
	}

	return sim, model.SimilarityDetails{
		TextSimilarity:       sim,
		CosineSimilarity:     cosine,
		MatchedSymptomsCount: exactMatches,
		TotalDiseaseSymptoms: len(disease.Symptoms),
		MatchBonus:           bonus,
	}
}

// Rank sorts candidates descending by confidence (stable, so ties keep
// knowledge-base order), truncates to the configured maximum, assigns
// 1-based ranks and attaches the descriptive pairwise comparisons.
func (s *Scorer) Rank(candidates []model.Candidate) []model.Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	if len(candidates) > s.cfg.MaxResults {
		candidates = candidates[:s.cfg.MaxResults]
	}

	for i := range candidates {
		candidates[i].Rank = i + 1
		if i > 0 {
			prev := candidates[i-1]
			candidates[i].GapFromPrevious = prev.Confidence - candidates[i].Confidence
			candidates[i].ComparativeAnalysis = explainScoreDifference(prev, candidates[i])
		}
	}

	return candidates
}

// explainScoreDifference builds the descriptive comparison between two
// adjacent ranked candidates. Presentational only.
func explainScoreDifference(higher, lower model.Candidate) string {
	diff := higher.Confidence - lower.Confidence
	matchDiff := len(higher.MatchedSymptoms) - len(lower.MatchedSymptoms)

	var b strings.Builder
	fmt.Fprintf(&b, "%s scored %.1f%% higher than %s. ", higher.DiseaseName, diff*100, lower.DiseaseName)

	if matchDiff > 0 {
		fmt.Fprintf(&b, "%s matched %d symptoms vs %d for %s. ",
			higher.DiseaseName, len(higher.MatchedSymptoms), len(lower.MatchedSymptoms), lower.DiseaseName)
	} else if matchDiff < 0 {
		fmt.Fprintf(&b, "%s matched more symptoms (%d vs %d), but %s had better text similarity. ",
			lower.DiseaseName, len(lower.MatchedSymptoms), len(higher.MatchedSymptoms), higher.DiseaseName)
	}

	fmt.Fprintf(&b, "Text similarity: %s (%.1f%%) > %s (%.1f%%)",
		higher.DiseaseName, higher.Breakdown.SimilarityDetails.CosineSimilarity*100,
		lower.DiseaseName, lower.Breakdown.SimilarityDetails.CosineSimilarity*100)

	return b.String()
}

// intersect returns the tokens present in the disease symptom list,
// preserving token order.
func intersect(tokens, symptoms []string) []string {
	set := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		set[s] = true
	}

	var out []string
	for _, t := range tokens {
		if set[t] {
			out = append(out, t)
		}
	}
	return out
}

// subtract returns the symptoms not present in tokens, preserving
// symptom order.
func subtract(symptoms, tokens []string) []string {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}

	var out []string
	for _, s := range symptoms {
		if !set[s] {
			out = append(out, s)
		}
	}
	return out
}
