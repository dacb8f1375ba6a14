package explain

import (
	"reflect"
	"strings"
	"testing"

	"github.com/avelkin/prognosia/internal/model"
)

func TestDifferential_TriggersOnCloseScores(t *testing.T) {
	candidates := []model.Candidate{
		candidate("flu", "Influenza", 0.62,
			[]string{"fever", "cough"}, []string{"fever", "cough", "body aches", "chills"}),
		candidate("covid_19", "COVID-19", 0.60,
			[]string{"fever", "cough"}, []string{"fever", "cough", "loss of taste", "shortness of breath"}),
	}

	diff := Differential(candidates, 0.05)
	if !diff.IsDifferential {
		t.Fatal("Expected differential at gap 0.02 <= 0.05")
	}

	if !reflect.DeepEqual(diff.SharedSymptoms, []string{"cough", "fever"}) {
		t.Errorf("Expected shared symptoms [cough fever], got %v", diff.SharedSymptoms)
	}
	if !reflect.DeepEqual(diff.DistinguishingForTop, []string{"body aches", "chills"}) {
		t.Errorf("Expected distinguishing [body aches chills], got %v", diff.DistinguishingForTop)
	}
	if !reflect.DeepEqual(diff.DistinguishingForAlternative, []string{"loss of taste", "shortness of breath"}) {
		t.Errorf("Expected distinguishing [loss of taste shortness of breath], got %v", diff.DistinguishingForAlternative)
	}
	if len(diff.ClarificationSymptoms) > 4 {
		t.Errorf("Expected at most 4 clarification symptoms, got %d", len(diff.ClarificationSymptoms))
	}
	if !strings.Contains(diff.Explanation, "Influenza") || !strings.Contains(diff.Explanation, "COVID-19") {
		t.Errorf("Explanation should name both diseases: %q", diff.Explanation)
	}
}

func TestDifferential_NoTriggerOnClearWinner(t *testing.T) {
	candidates := []model.Candidate{
		candidate("flu", "Influenza", 0.80, []string{"fever"}, []string{"fever"}),
		candidate("covid_19", "COVID-19", 0.40, []string{"fever"}, []string{"fever"}),
	}

	if diff := Differential(candidates, 0.05); diff.IsDifferential {
		t.Error("Expected no differential at gap 0.40")
	}
}

func TestDifferential_GapEqualToThresholdTriggers(t *testing.T) {
	candidates := []model.Candidate{
		candidate("a", "A", 0.60, nil, []string{"x"}),
		candidate("b", "B", 0.55, nil, []string{"y"}),
	}

	if diff := Differential(candidates, 0.05); !diff.IsDifferential {
		t.Error("Gap exactly at the threshold must trigger")
	}
}

func TestDifferential_FewerThanTwoCandidates(t *testing.T) {
	if diff := Differential(nil, 0.05); diff.IsDifferential {
		t.Error("Expected no differential without candidates")
	}

	one := []model.Candidate{candidate("a", "A", 0.6, nil, nil)}
	if diff := Differential(one, 0.05); diff.IsDifferential {
		t.Error("Expected no differential with a single candidate")
	}
}

func TestDifferential_FallbackWhenUniqueSymptomsAllMatched(t *testing.T) {
	// Every symptom unique to A is already matched, so the fallback uses
	// the full unique set rather than reporting nothing.
	candidates := []model.Candidate{
		candidate("a", "A", 0.60, []string{"fever", "rash"}, []string{"fever", "rash"}),
		candidate("b", "B", 0.58, []string{"fever"}, []string{"fever", "nausea"}),
	}

	diff := Differential(candidates, 0.05)
	if !diff.IsDifferential {
		t.Fatal("Expected differential")
	}
	if !reflect.DeepEqual(diff.DistinguishingForTop, []string{"rash"}) {
		t.Errorf("Expected fallback distinguishing [rash], got %v", diff.DistinguishingForTop)
	}
}
