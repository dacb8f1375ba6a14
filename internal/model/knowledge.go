package model

// Disease describes one condition in the knowledge base
type Disease struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Symptoms    []string `json:"symptoms" yaml:"symptoms"`                 // Canonical symptom strings, in profile order
	Explanation string   `json:"explanation" yaml:"explanation"`           // Free-text medical explanation
	DurationMin int      `json:"typical_duration_min" yaml:"typical_duration_min"` // Typical onset, days (default 1)
	DurationMax int      `json:"typical_duration_max" yaml:"typical_duration_max"` // Typical resolution, days (default 365)
	IsChronic   bool     `json:"is_chronic" yaml:"is_chronic"`
}

// KeywordRule maps free-text keyword variants to a canonical symptom.
// Rules are an ordered list: the first rule whose keyword matches wins.
type KeywordRule struct {
	Symptom  string   `json:"symptom" yaml:"symptom"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// KnowledgeBase holds the disease and symptom-keyword tables.
// Built once at startup and never mutated afterwards, so any number of
// requests may read it concurrently without synchronization.
type KnowledgeBase struct {
	Order    []string           // Disease IDs in file order; ranking ties preserve this order
	Diseases map[string]Disease // Keyed by disease ID
	Keywords []KeywordRule      // Ordered keyword priority list
}

// Disease returns the record for the given ID.
func (kb *KnowledgeBase) Disease(id string) (Disease, bool) {
	d, ok := kb.Diseases[id]
	return d, ok
}

// SymptomNames returns all canonical symptoms from the keyword table.
func (kb *KnowledgeBase) SymptomNames() []string {
	names := make([]string, 0, len(kb.Keywords))
	for _, rule := range kb.Keywords {
		names = append(names, rule.Symptom)
	}
	return names
}

// IsEmpty reports whether the knowledge base has no diseases.
func (kb *KnowledgeBase) IsEmpty() bool {
	return kb == nil || len(kb.Order) == 0
}

// DiseaseListing is a compact entry for disease catalogue endpoints
type DiseaseListing struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SymptomCount int    `json:"symptom_count"`
}

// DiseaseDetail is the full stored record returned by explain lookups
type DiseaseDetail struct {
	DiseaseID   string   `json:"disease_id"`
	Name        string   `json:"disease_name"`
	Symptoms    []string `json:"symptoms"`
	Explanation string   `json:"explanation"`
}
