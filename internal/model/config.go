package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Retrieval   RetrievalConfig   `yaml:"retrieval" json:"retrieval" mapstructure:"retrieval"`
	Weights     WeightsConfig     `yaml:"weights" json:"weights" mapstructure:"weights"`
	Vocabulary  Vocabulary        `yaml:"vocabulary" json:"vocabulary" mapstructure:"vocabulary"`
	LLM         LLMConfig         `yaml:"llm" json:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" json:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" json:"output" mapstructure:"output"`
}

// RetrievalConfig bounds the context handed to the reasoning call
type RetrievalConfig struct {
	MaxContextTokens   int  `yaml:"max_context_tokens" json:"max_context_tokens" mapstructure:"max_context_tokens"`
	MaxChunks          int  `yaml:"max_chunks" json:"max_chunks" mapstructure:"max_chunks"`
	IncludeDefinitions bool `yaml:"include_definitions" json:"include_definitions" mapstructure:"include_definitions"`
	ForceLivingSpace   bool `yaml:"force_living_space" json:"force_living_space" mapstructure:"force_living_space"`
}

// WeightsConfig holds the scoring weights. The values are tunable; the
// order in which the scorer applies them is not.
type WeightsConfig struct {
	ZoneMatch         float64 `yaml:"zone_match" json:"zone_match" mapstructure:"zone_match"`
	PermitFreePhrase  float64 `yaml:"permit_free_phrase" json:"permit_free_phrase" mapstructure:"permit_free_phrase"`
	PlanTerm          float64 `yaml:"plan_term" json:"plan_term" mapstructure:"plan_term"`
	PermitDutyContext float64 `yaml:"permit_duty_context" json:"permit_duty_context" mapstructure:"permit_duty_context"`
}

// Vocabulary collects the phrase lists the pipeline matches against.
// Loaded once per run and treated as immutable; overriding it is how a
// future jurisdiction or language gets supported without code changes.
type Vocabulary struct {
	PermitFreePhrases    []string `yaml:"permit_free_phrases" json:"permit_free_phrases" mapstructure:"permit_free_phrases"`
	LivingSpacePhrases   []string `yaml:"living_space_phrases" json:"living_space_phrases" mapstructure:"living_space_phrases"`
	ConstructionTerms    []string `yaml:"construction_terms" json:"construction_terms" mapstructure:"construction_terms"`
	PlanTerms            []string `yaml:"plan_terms" json:"plan_terms" mapstructure:"plan_terms"`
	DefinitionHeadings   []string `yaml:"definition_headings" json:"definition_headings" mapstructure:"definition_headings"`
	ExcludedTitleParts   []string `yaml:"excluded_title_parts" json:"excluded_title_parts" mapstructure:"excluded_title_parts"`
	AllowedDocumentTypes []string `yaml:"allowed_document_types" json:"allowed_document_types" mapstructure:"allowed_document_types"`
}

// LLMConfig configures the reasoning call
type LLMConfig struct {
	Provider       string `yaml:"provider" json:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model          string `yaml:"model" json:"model" mapstructure:"model"`
	APIKey         string `yaml:"-" json:"-" mapstructure:"-"`
	BaseURL        string `yaml:"base_url" json:"base_url" mapstructure:"base_url"`
	Timeout        int    `yaml:"timeout" json:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens      int    `yaml:"max_tokens" json:"max_tokens" mapstructure:"max_tokens"`
	StrictEvidence bool   `yaml:"strict_evidence" json:"strict_evidence" mapstructure:"strict_evidence"`
	HTTPProxy      string `yaml:"http_proxy" json:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy     string `yaml:"https_proxy" json:"https_proxy" mapstructure:"https_proxy"`
	NoProxy        string `yaml:"no_proxy" json:"no_proxy" mapstructure:"no_proxy"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers" json:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" json:"burst_size" mapstructure:"burst_size"`
}

// CacheConfig controls the assessment cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" json:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" json:"json" mapstructure:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Retrieval: RetrievalConfig{
			MaxContextTokens:   10_000,
			MaxChunks:          40,
			IncludeDefinitions: true,
			ForceLivingSpace:   true,
		},
		Weights: WeightsConfig{
			ZoneMatch:         10,
			PermitFreePhrase:  50,
			PlanTerm:          20,
			PermitDutyContext: 8,
		},
		Vocabulary: DefaultVocabulary(),
		LLM: LLMConfig{
			Provider:       "",
			Model:          "",
			Timeout:        30,
			MaxTokens:      1500,
			StrictEvidence: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{},
	}
}

// DefaultVocabulary returns the Dutch (Omgevingswet) phrase lists
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		PermitFreePhrases: []string{
			"vergunningsvrij",
			"vergunningvrij",
			"zonder omgevingsvergunning",
			"geen omgevingsvergunning",
			"niet vergunningplichtig",
			"uitzondering op de vergunningplicht",
			"is niet van toepassing",
		},
		LivingSpacePhrases: []string{
			"verblijfsgebied",
			"verblijfsruimte",
			"woonfunctie",
			"bewoning",
			"wonen",
			"permanente bewoning",
		},
		ConstructionTerms: []string{
			"bouw", "bouwen", "bouwwerk", "bouwwerken",
			"bijbehorend", "bijgebouw", "erf", "achtererf",
			"aanbouw", "uitbouw", "erker", "berging", "schuur", "tuinhuis", "garage", "carport",
			"dakterras", "balkon",
			"omgevingsplanactiviteit", "bouwactiviteit",
			"vergunningplicht", "omgevingsvergunning",
		},
		PlanTerms: []string{
			"bijbehorend bouwwerk",
			"bijgebouw",
			"erfbebouwing",
			"achtererfgebied",
			"oppervlakte",
			"bouwhoogte",
			"goothoogte",
			"m2",
		},
		DefinitionHeadings: []string{
			"begrip", "begripsbepal",
		},
		ExcludedTitleParts: []string{
			"parapluplan",
		},
		AllowedDocumentTypes: []string{
			"Bestemmingsplan", "Omgevingsplan",
		},
	}
}
