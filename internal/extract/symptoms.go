package extract

import (
	"strings"

	"github.com/avelkin/prognosia/internal/model"
)

// SymptomExtractor normalizes raw symptom text into canonical tokens
type SymptomExtractor struct {
	rules []model.KeywordRule
}

// NewSymptomExtractor creates an extractor over the given keyword rules.
// The rule order is the lookup priority: for each input token the first
// rule with a matching keyword variant wins.
func NewSymptomExtractor(rules []model.KeywordRule) *SymptomExtractor {
	return &SymptomExtractor{rules: rules}
}

// Extract lowercases the input, splits it on commas and resolves each token
// against the keyword rules. A canonical symptom is assigned when any of its
// keyword variants appears as a substring of the token; unresolved tokens
// pass through verbatim. The result is deduplicated in first-seen order.
// Empty input yields an empty slice; the caller treats that as invalid input.
func (e *SymptomExtractor) Extract(input string) []string {
	tokens := strings.Split(strings.ToLower(input), ",")

	processed := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		resolved := token
		for _, rule := range e.rules {
			if matchesAny(token, rule.Keywords) {
				resolved = rule.Symptom
				break
			}
		}

		if !seen[resolved] {
			seen[resolved] = true
			processed = append(processed, resolved)
		}
	}

	return processed
}

func matchesAny(token string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(token, kw) {
			return true
		}
	}
	return false
}
