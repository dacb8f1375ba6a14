package score

import (
	"math"
	"testing"
)

func TestVectorizer_IdenticalTexts(t *testing.T) {
	v := FitVectorizer([]string{"cough sore throat runny nose"})

	sim := v.Similarity("cough sore throat runny nose", "cough sore throat runny nose")
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("Expected similarity 1.0 for identical texts, got %f", sim)
	}
}

func TestVectorizer_DisjointTexts(t *testing.T) {
	v := FitVectorizer([]string{"cough fever", "rash itching"})

	sim := v.Similarity("cough fever", "rash itching")
	if sim != 0 {
		t.Errorf("Expected similarity 0 for disjoint texts, got %f", sim)
	}
}

func TestVectorizer_OutOfVocabularyIgnored(t *testing.T) {
	v := FitVectorizer([]string{"cough fever"})

	// "zebra" is not in the fitted vocabulary and must not contribute.
	a := v.Similarity("cough zebra", "cough")
	b := v.Similarity("cough", "cough")
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("Out-of-vocabulary term changed similarity: %f vs %f", a, b)
	}
}

func TestVectorizer_StopwordsDropped(t *testing.T) {
	v := FitVectorizer([]string{"cough and fever"})

	if got := v.VocabularySize(); got != 2 {
		t.Errorf("Expected vocabulary of 2 terms, got %d", got)
	}
}

func TestVectorizer_EmptyText(t *testing.T) {
	v := FitVectorizer([]string{"cough fever"})

	if sim := v.Similarity("", "cough fever"); sim != 0 {
		t.Errorf("Expected similarity 0 for empty text, got %f", sim)
	}
}

func TestCosine_Bounds(t *testing.T) {
	cases := [][2][]float64{
		{{1, 0, 2}, {2, 1, 0}},
		{{1, 1, 1}, {1, 1, 1}},
		{{0.5, 0.1}, {0.3, 0.9}},
	}

	for _, c := range cases {
		sim := Cosine(c[0], c[1])
		if sim < 0 || sim > 1+1e-9 {
			t.Errorf("Cosine(%v, %v) = %f out of [0, 1]", c[0], c[1], sim)
		}
	}
}
