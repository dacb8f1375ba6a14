package model

import "time"

// Config is the complete application configuration
type Config struct {
	KnowledgeBase KBConfig                  `yaml:"knowledge_base"`
	Scoring       ScoringConfig             `yaml:"scoring"`
	Duration      DurationConfig            `yaml:"duration"`
	Analysis      AnalysisConfig            `yaml:"analysis"`
	Specialists   map[string]SpecialistInfo `yaml:"specialists"`
	Server        ServerConfig              `yaml:"server"`
	Cache         CacheConfig               `yaml:"cache"`
	Output        OutputConfig              `yaml:"output"`
	LLM           LLMConfig                 `yaml:"llm"`
}

// KBConfig locates the knowledge base asset
type KBConfig struct {
	Path string `yaml:"path"`
}

// ScoringConfig holds the weighted-combination parameters.
// TextWeight and MatchWeight must sum to 1.0.
type ScoringConfig struct {
	TextWeight         float64 `yaml:"text_weight"`
	MatchWeight        float64 `yaml:"match_weight"`
	ExactMatchBonus    float64 `yaml:"exact_match_bonus"`    // Scale of the substring-overlap bonus
	InclusionThreshold float64 `yaml:"inclusion_threshold"`  // Strict: candidates need confidence > threshold
	MaxResults         int     `yaml:"max_results"`
}

// DurationRuleKind names one condition of the penalty schedule
type DurationRuleKind string

const (
	DurationBelowMin      DurationRuleKind = "below_min"
	DurationAboveMax      DurationRuleKind = "above_max"
	DurationAboveTwiceMax DurationRuleKind = "above_twice_max"
)

// DurationRule is one entry of the ordered penalty schedule. Rules are
// evaluated first-match in slice order, so the ordering is configuration,
// not code. For below_min the Penalty is the scale of the proportional
// formula penalty*(min-days)/max(1,min); otherwise it is subtracted as is.
type DurationRule struct {
	When          DurationRuleKind `yaml:"when"`
	Penalty       float64          `yaml:"penalty"`
	ChronicExempt bool             `yaml:"chronic_exempt"`
}

// DurationConfig holds the ordered duration-penalty schedule
type DurationConfig struct {
	Rules []DurationRule `yaml:"rules"`
}

// AnalysisConfig holds the post-ranking analysis thresholds
type AnalysisConfig struct {
	DifferentialThreshold float64 `yaml:"differential_threshold"` // Rank-1/rank-2 gap, default 0.05
	ConfidenceThreshold   float64 `yaml:"confidence_threshold"`   // High-confidence indicator, default 0.50
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Port              string        `yaml:"port"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // Per-client rate limit
	Burst             int           `yaml:"burst"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// CacheConfig configures the layered report cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OutputConfig configures CLI rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// LLMConfig configures the optional narrative summarizer
type LLMConfig struct {
	Provider   string `yaml:"provider"` // "openai" or "" (disabled)
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"` // Covers OpenAI-compatible local endpoints
	Timeout    int    `yaml:"timeout"`            // Seconds
	MaxTokens  int    `yaml:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// DefaultConfig returns the built-in defaults. The duration schedule keeps
// the above_max rule ahead of above_twice_max on purpose: the shipped
// behavior caps the long-duration penalty at 0.25, and reordering the
// schedule is a configuration decision.
func DefaultConfig() *Config {
	return &Config{
		KnowledgeBase: KBConfig{
			Path: "data/knowledge_base.yaml",
		},
		Scoring: ScoringConfig{
			TextWeight:         0.6,
			MatchWeight:        0.4,
			ExactMatchBonus:    0.3,
			InclusionThreshold: 0.1,
			MaxResults:         5,
		},
		Duration: DurationConfig{
			Rules: []DurationRule{
				{When: DurationBelowMin, Penalty: 0.15},
				{When: DurationAboveMax, Penalty: 0.25, ChronicExempt: true},
				{When: DurationAboveTwiceMax, Penalty: 0.35, ChronicExempt: true},
			},
		},
		Analysis: AnalysisConfig{
			DifferentialThreshold: 0.05,
			ConfidenceThreshold:   0.50,
		},
		Specialists: DefaultSpecialists(),
		Server: ServerConfig{
			Port:              "8080",
			MaxBodyBytes:      1 << 20,
			RequestsPerSecond: 10,
			Burst:             20,
			ShutdownTimeout:   10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".prognosia-cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}

// DefaultSpecialists returns the built-in disease-to-specialist table.
// Unmapped diseases fall back to a General Practitioner referral.
func DefaultSpecialists() map[string]SpecialistInfo {
	return map[string]SpecialistInfo{
		"common_cold":             {Specialist: "General Practitioner", Reason: "No specialist visit usually needed"},
		"flu":                     {Specialist: "General Practitioner", Reason: "Consult for severe cases"},
		"covid_19":                {Specialist: "Infectious Disease Specialist", Reason: "COVID-19 management and monitoring"},
		"allergies":               {Specialist: "Allergist/Immunologist", Reason: "Allergy testing and management"},
		"asthma":                  {Specialist: "Pulmonologist", Reason: "Respiratory function testing and management"},
		"bronchitis":              {Specialist: "Pulmonologist", Reason: "Airways inflammation treatment"},
		"pneumonia":               {Specialist: "Pulmonologist", Reason: "Chest imaging and antibiotics"},
		"migraine":                {Specialist: "Neurologist", Reason: "Headache management and prevention"},
		"hypertension":            {Specialist: "Cardiologist", Reason: "Blood pressure control and cardiovascular health"},
		"diabetes":                {Specialist: "Endocrinologist", Reason: "Blood glucose management and complications"},
		"gastroenteritis":         {Specialist: "Gastroenterologist", Reason: "GI infection treatment"},
		"urinary_tract_infection": {Specialist: "Urologist", Reason: "Urinary system infection treatment"},
		"anxiety":                 {Specialist: "Psychiatrist/Psychologist", Reason: "Mental health evaluation and therapy"},
		"depression":              {Specialist: "Psychiatrist/Psychologist", Reason: "Mental health evaluation and therapy"},
		"dermatitis":              {Specialist: "Dermatologist", Reason: "Skin condition diagnosis and treatment"},
		"thyroiditis":             {Specialist: "Endocrinologist", Reason: "Thyroid function testing and management"},
	}
}
