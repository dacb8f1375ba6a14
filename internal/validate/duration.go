package validate

import (
	"fmt"
	"math"

	"github.com/avelkin/prognosia/internal/model"
)

// DurationValidator adjusts candidate confidence using the reported
// symptom duration. The penalty schedule is an ordered rule list evaluated
// first-match, so which condition wins is configuration, not code.
type DurationValidator struct {
	rules []model.DurationRule
}

// NewDurationValidator creates a validator over the given schedule.
func NewDurationValidator(rules []model.DurationRule) *DurationValidator {
	return &DurationValidator{rules: rules}
}

// Validate checks the reported duration against one disease's typical
// range and returns the audit record. The adjusted confidence is always
// recomputed from originalConfidence, so repeated calls never stack
// penalties. Missing bounds default to (1, 365, not chronic).
func (v *DurationValidator) Validate(disease model.Disease, originalConfidence float64, days int) model.DurationValidation {
	minDays := disease.DurationMin
	if minDays <= 0 {
		minDays = 1
	}
	maxDays := disease.DurationMax
	if maxDays <= 0 {
		maxDays = 365
	}

	penalty, warning := v.evaluate(disease.Name, days, minDays, maxDays, disease.IsChronic)

	adjusted := math.Max(0, originalConfidence-penalty)

	return model.DurationValidation{
		SymptomDays:        days,
		DurationMin:        minDays,
		DurationMax:        maxDays,
		IsChronic:          disease.IsChronic,
		PenaltyApplied:     round3(penalty),
		OriginalConfidence: round3(originalConfidence),
		AdjustedConfidence: round3(adjusted),
		Warning:            warning,
	}
}

// Apply validates every candidate in place, replacing its confidence with
// the duration-adjusted value and attaching the audit record.
func (v *DurationValidator) Apply(base *model.KnowledgeBase, candidates []model.Candidate, days int) {
	for i := range candidates {
		disease, ok := base.Disease(candidates[i].DiseaseID)
		if !ok {
			continue
		}
		validation := v.Validate(disease, candidates[i].Confidence, days)
		candidates[i].Confidence = math.Max(0, candidates[i].Confidence-validation.PenaltyApplied)
		candidates[i].Duration = &validation
	}
}

// evaluate walks the schedule in order and returns the first matching
// rule's penalty and warning.
func (v *DurationValidator) evaluate(name string, days, minDays, maxDays int, chronic bool) (float64, string) {
	for _, rule := range v.rules {
		if rule.ChronicExempt && chronic {
			continue
		}

		switch rule.When {
		case model.DurationBelowMin:
			if days < minDays {
				denom := minDays
				if denom < 1 {
					denom = 1
				}
				penalty := rule.Penalty * float64(minDays-days) / float64(denom)
				warning := fmt.Sprintf("Symptoms developed very quickly. %s typically develops over %d+ days.", name, minDays)
				return penalty, warning
			}
		case model.DurationAboveMax:
			if days > maxDays {
				warning := fmt.Sprintf("Symptoms lasting %d days is unusual for %s (typically %d days max). Consider chronic condition re-evaluation.", days, name, maxDays)
				return rule.Penalty, warning
			}
		case model.DurationAboveTwiceMax:
			if days > 2*maxDays {
				warning := fmt.Sprintf("These symptoms have persisted for %d days, which is far longer than typical for %s. Please consult a specialist.", days, name)
				return rule.Penalty, warning
			}
		}
	}

	return 0, ""
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
