package model

import "time"

// Config is the explicit configuration surface for the whole pipeline. It is
// passed into constructors rather than read from global state.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Adapters    AdaptersConfig    `yaml:"adapters" mapstructure:"adapters"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cluster     ClusterConfig     `yaml:"cluster" mapstructure:"cluster"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig shapes all outbound HTTP.
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent  string        `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig selects and tunes the resolution cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Backend is one of "memory", "disk", "redis", "layered".
	Backend string `yaml:"backend" mapstructure:"backend"`
	Dir     string `yaml:"dir" mapstructure:"dir"`

	// PositiveTTL applies to confirmed results, NegativeTTL to NotFound
	// entries (shorter, so known-bad citations are retried sooner).
	PositiveTTL time.Duration `yaml:"positive_ttl" mapstructure:"positive_ttl"`
	NegativeTTL time.Duration `yaml:"negative_ttl" mapstructure:"negative_ttl"`
	URLTTL      time.Duration `yaml:"url_ttl" mapstructure:"url_ttl"`

	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig connects the optional shared Redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// AdapterConfig tunes a single source adapter.
type AdapterConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`

	// RateLimit is requests per second shared across all workers.
	RateLimit  float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	Burst      int     `yaml:"burst" mapstructure:"burst"`
	MaxRetries int     `yaml:"max_retries" mapstructure:"max_retries"`
}

// AdaptersConfig holds one entry per external source, in fallback order.
type AdaptersConfig struct {
	CourtListener AdapterConfig `yaml:"courtlistener" mapstructure:"courtlistener"`
	Scholar       AdapterConfig `yaml:"scholar" mapstructure:"scholar"`
	WebSearch     AdapterConfig `yaml:"websearch" mapstructure:"websearch"`
	PrivacySearch AdapterConfig `yaml:"privacysearch" mapstructure:"privacysearch"`
}

// ScoringConfig exposes the empirically tuned thresholds as configuration
// rather than hard-coded constants.
type ScoringConfig struct {
	VerifiedThreshold       float64 `yaml:"verified_threshold" mapstructure:"verified_threshold"`
	NameSimilarityThreshold float64 `yaml:"name_similarity_threshold" mapstructure:"name_similarity_threshold"`

	AuthoritativeConfidence float64 `yaml:"authoritative_confidence" mapstructure:"authoritative_confidence"`
	MultiSourceConfidence   float64 `yaml:"multi_source_confidence" mapstructure:"multi_source_confidence"`
	SingleSourceConfidence  float64 `yaml:"single_source_confidence" mapstructure:"single_source_confidence"`

	// UnconfirmedDamping scales likelihood when no source confirmed the
	// citation; the result never crosses the verified threshold.
	UnconfirmedDamping float64 `yaml:"unconfirmed_damping" mapstructure:"unconfirmed_damping"`
}

// ConcurrencyConfig bounds the per-batch worker pool.
type ConcurrencyConfig struct {
	Workers  int           `yaml:"workers" mapstructure:"workers"`
	Deadline time.Duration `yaml:"deadline" mapstructure:"deadline"`
}

// ClusterConfig tunes parallel-citation grouping.
type ClusterConfig struct {
	// MaxGapChars is the maximum character distance between two citations
	// for them to be considered parallel.
	MaxGapChars int `yaml:"max_gap_chars" mapstructure:"max_gap_chars"`
}

// LLMConfig configures the optional summary provider.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "" disables
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "citecheck/0.3 (+https://github.com/mkravets/citecheck)",
		},
		Cache: CacheConfig{
			Enabled:     true,
			Backend:     "layered",
			Dir:         "", // resolved to ~/.citecheck/cache at startup
			PositiveTTL: 7 * 24 * time.Hour,
			NegativeTTL: 6 * time.Hour,
			URLTTL:      24 * time.Hour,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Adapters: AdaptersConfig{
			CourtListener: AdapterConfig{
				Enabled:    true,
				BaseURL:    "https://www.courtlistener.com",
				RateLimit:  1.0,
				Burst:      3,
				MaxRetries: 3,
			},
			Scholar: AdapterConfig{
				Enabled:    true,
				BaseURL:    "https://scholar.google.com",
				RateLimit:  0.5,
				Burst:      1,
				MaxRetries: 2,
			},
			WebSearch: AdapterConfig{
				Enabled:    true,
				BaseURL:    "https://www.bing.com",
				RateLimit:  0.5,
				Burst:      2,
				MaxRetries: 2,
			},
			PrivacySearch: AdapterConfig{
				Enabled:    true,
				BaseURL:    "https://html.duckduckgo.com",
				RateLimit:  0.5,
				Burst:      1,
				MaxRetries: 2,
			},
		},
		Scoring: ScoringConfig{
			VerifiedThreshold:       0.70,
			NameSimilarityThreshold: 0.62,
			AuthoritativeConfidence: 0.95,
			MultiSourceConfidence:   0.90,
			SingleSourceConfidence:  0.75,
			UnconfirmedDamping:      0.50,
		},
		Concurrency: ConcurrencyConfig{
			Workers:  4,
			Deadline: 2 * time.Minute,
		},
		Cluster: ClusterConfig{
			MaxGapChars: 80,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 800,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
