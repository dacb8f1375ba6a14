package explain

import "github.com/avelkin/prognosia/internal/model"

// patientContextQuestions is the fixed clarification questionnaire. It is
// requested on every diagnosis with candidates: collecting patient context
// unconditionally is a product decision, not a confidence fallback.
var patientContextQuestions = []model.Question{
	{Type: "text_input", FieldName: "last_meal_time", Question: "When did you last eat food? (e.g., 2 hours ago, morning)"},
	{Type: "text_input", FieldName: "last_meal_type", Question: "What did you eat? (e.g., rice, bread, fruits)"},
	{Type: "text_input", FieldName: "water_intake", Question: "Are you having proper water intake? (Yes/No/How much per day)"},
	{Type: "text_input", FieldName: "age", Question: "What is your age? (in years)"},
	{Type: "text_input", FieldName: "weight", Question: "What is your weight? (in kg - optional if you don't know)"},
	{Type: "text_input", FieldName: "past_conditions", Question: "Do you have any past medical conditions? (e.g., diabetes, asthma, hypertension)"},
	{Type: "text_input", FieldName: "allergies", Question: "Do you have any allergies? (e.g., peanuts, penicillin, shellfish)"},
}

// ConfidenceCheck builds the always-on clarification block. The threshold
// only toggles the IsHighConfidence indicator; it never gates whether the
// questionnaire is returned.
func ConfidenceCheck(candidates []model.Candidate, threshold float64) model.ConfidenceCheck {
	if len(candidates) == 0 {
		return model.ConfidenceCheck{NeedsClarification: false}
	}

	top := candidates[0]

	var alternatives []model.CandidateSummary
	for _, alt := range candidates[1:] {
		if len(alternatives) == 2 {
			break
		}
		alternatives = append(alternatives, model.CandidateSummary{
			Disease:    alt.DiseaseName,
			Confidence: round1(alt.Confidence * 100),
		})
	}

	return model.ConfidenceCheck{
		NeedsClarification: true,
		IsHighConfidence:   top.Confidence >= threshold,
		ConfidenceScore:    round1(top.Confidence * 100),
		Threshold:          round1(threshold * 100),
		Reason:             "Collect patient information for comprehensive report",
		PrimaryCandidate: &model.CandidateSummary{
			Disease:    top.DiseaseName,
			Confidence: round1(top.Confidence * 100),
		},
		Alternatives:        alternatives,
		ClarifyingQuestions: patientContextQuestions,
		NextStep:            "Please provide the following information for your health report",
	}
}
