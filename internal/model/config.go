package model

import "time"

// Config holds the full runtime configuration.
type Config struct {
	Screening ScreeningConfig `yaml:"screening" mapstructure:"screening"`
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Speech    SpeechConfig    `yaml:"speech" mapstructure:"speech"`
}

// ScreeningConfig tunes the risk scorer and assessor. The weight table
// and the threshold are data, not code: deployments adjust them without
// touching the scorer.
type ScreeningConfig struct {
	// Threshold is the score at or above which a report is flagged
	// as a likely emergency.
	Threshold int `yaml:"threshold" mapstructure:"threshold"`

	// Weights maps symptom category names to severity points.
	Weights map[string]int `yaml:"weights" mapstructure:"weights"`

	// DefaultWeight applies to categories absent from Weights.
	DefaultWeight int `yaml:"default_weight" mapstructure:"default_weight"`

	// Messages overrides the built-in localized emergency messages,
	// keyed by language code.
	Messages map[string]string `yaml:"messages,omitempty" mapstructure:"messages"`
}

// CatalogConfig controls remote signal acquisition and refresh.
type CatalogConfig struct {
	// URL is the base URL of the signals service (e.g. http://host:8080).
	// Empty means the embedded default catalog is used.
	URL string `yaml:"url" mapstructure:"url"`

	// FetchTimeout bounds a single fetch; on expiry the last-known-good
	// snapshot stays in place.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`

	// RefreshInterval is how often the refresher polls for updates.
	// Zero disables background refresh.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// CacheTTL is how long per-category fetch responses are cached.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ServerConfig configures the signals service.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// DBPath is the SQLite file persisting the catalog document.
	DBPath string `yaml:"db_path" mapstructure:"db_path"`

	// RatePerSecond / Burst rate-limit admin mutations and assessments.
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	Burst         int     `yaml:"burst" mapstructure:"burst"`
}

// SpeechConfig configures the transcription collaborator.
type SpeechConfig struct {
	Model  string `yaml:"model" mapstructure:"model"`
	Locale string `yaml:"locale" mapstructure:"locale"`
}

// DefaultConfig returns the built-in defaults. Weights mirror the
// reference deployment; anything not listed scores DefaultWeight.
func DefaultConfig() *Config {
	return &Config{
		Screening: ScreeningConfig{
			Threshold: 70,
			Weights: map[string]int{
				"cardiac":      60,
				"neurological": 70,
				"respiratory":  70,
				"bleeding":     80,
			},
			DefaultWeight: 40,
		},
		Catalog: CatalogConfig{
			FetchTimeout:    10 * time.Second,
			RefreshInterval: 5 * time.Minute,
			CacheTTL:        time.Minute,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			DBPath:        "docai-signals.db",
			RatePerSecond: 10,
			Burst:         20,
		},
		Speech: SpeechConfig{
			Model:  "whisper-1",
			Locale: "en-IN",
		},
	}
}
