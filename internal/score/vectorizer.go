package score

import (
	"math"
	"strings"
	"unicode"
)

// english stopwords dropped during tokenization, matching the common
// vectorizer convention of ignoring connective words.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "in": true, "is": true, "it": true, "its": true,
	"my": true, "of": true, "on": true, "or": true, "our": true, "so": true,
	"that": true, "the": true, "their": true, "this": true, "to": true,
	"very": true, "was": true, "we": true, "were": true, "with": true,
	"you": true, "your": true,
}

// Vectorizer maps texts into a fixed term-frequency vector space.
// The vocabulary is fit once over the disease symptom texts at load time
// and is immutable afterwards; Transform is safe for concurrent use.
type Vectorizer struct {
	vocab map[string]int
}

// FitVectorizer builds the vocabulary from the given documents.
func FitVectorizer(docs []string) *Vectorizer {
	vocab := make(map[string]int)
	for _, doc := range docs {
		for _, term := range tokenize(doc) {
			if _, ok := vocab[term]; !ok {
				vocab[term] = len(vocab)
			}
		}
	}
	return &Vectorizer{vocab: vocab}
}

// VocabularySize returns the number of fitted terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocab)
}

// Transform maps a text into the fitted vector space. Terms outside the
// vocabulary are ignored.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.vocab))
	for _, term := range tokenize(text) {
		if idx, ok := v.vocab[term]; ok {
			vec[idx]++
		}
	}
	return vec
}

// Similarity returns the cosine similarity of two texts in the fitted
// space, in [0, 1]. Zero vectors yield 0.
func (v *Vectorizer) Similarity(a, b string) float64 {
	return Cosine(v.Transform(a), v.Transform(b))
}

// Cosine computes the cosine similarity of two equal-length vectors.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// stopwords and single-character tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}
