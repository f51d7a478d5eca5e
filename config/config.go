package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Backend   BackendConfig   `yaml:"backend"`
	Video     VideoConfig     `yaml:"video"`
	Rubric    Rubric          `yaml:"rubric"`
	Site      SiteConfig      `yaml:"site"`
}

type PathsConfig struct {
	Data    string `yaml:"data"`
	Scripts string `yaml:"scripts"`
	Videos  string `yaml:"videos"`
	Site    string `yaml:"site"`
}

type DiscoveryConfig struct {
	MaxNew     int      `yaml:"max_new"`
	Subreddits []string `yaml:"subreddits"`
}

type BackendConfig struct {
	Enabled        bool   `yaml:"enabled"`
	URL            string `yaml:"url"`
	Model          string `yaml:"model"`
	TimeoutSec     int    `yaml:"timeout_sec"`
	MinIntervalSec int    `yaml:"min_interval_sec"`
}

type VideoConfig struct {
	BurnCaptions    bool `yaml:"burn_captions"`
	CaptionFontSize int  `yaml:"caption_font_size"`
}

// Rubric holds the validator's deduction weights and the approval
// threshold. These are policy knobs, not invariants; zero values fall
// back to the defaults below.
type Rubric struct {
	MinScore          int     `yaml:"min_score"`
	MissingHook       int     `yaml:"missing_hook"`
	HookTooLong       int     `yaml:"hook_too_long"`
	MaxHookWords      int     `yaml:"max_hook_words"`
	TooFewSegments    int     `yaml:"too_few_segments"`
	MinSegments       int     `yaml:"min_segments"`
	TooShort          int     `yaml:"too_short"`
	MinDurationSec    int     `yaml:"min_duration_sec"`
	TooLong           int     `yaml:"too_long"`
	MaxDurationSec    int     `yaml:"max_duration_sec"`
	TooFewHashtags    int     `yaml:"too_few_hashtags"`
	MinHashtags       int     `yaml:"min_hashtags"`
	MissingCTA        int     `yaml:"missing_cta"`
	MissingCaption    int     `yaml:"missing_caption"`
	TooDense          int     `yaml:"too_dense"`
	MaxWordsPerSecond float64 `yaml:"max_words_per_second"`
}

type SiteConfig struct {
	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url"`
}

// DefaultRubric returns the stock deduction weights.
func DefaultRubric() Rubric {
	return Rubric{
		MinScore:          60,
		MissingHook:       30,
		HookTooLong:       10,
		MaxHookWords:      20,
		TooFewSegments:    20,
		MinSegments:       3,
		TooShort:          15,
		MinDurationSec:    15,
		TooLong:           10,
		MaxDurationSec:    90,
		TooFewHashtags:    10,
		MinHashtags:       3,
		MissingCTA:        15,
		MissingCaption:    10,
		TooDense:          5,
		MaxWordsPerSecond: 4,
	}
}

// Default returns a runnable configuration without a config file.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Data:    "data",
			Scripts: "output/scripts",
			Videos:  "output/videos",
			Site:    "site",
		},
		Discovery: DiscoveryConfig{MaxNew: 5},
		Backend: BackendConfig{
			URL:            "http://localhost:11434",
			Model:          "llama3",
			TimeoutSec:     120,
			MinIntervalSec: 2,
		},
		Video: VideoConfig{
			BurnCaptions:    true,
			CaptionFontSize: 40,
		},
		Rubric: DefaultRubric(),
		Site: SiteConfig{
			Title:   "Shortform Scripts",
			BaseURL: "https://example.github.io/shortform",
		},
	}
}

// Load reads a YAML config file and applies env overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if os.Getenv("SHORTFORM_LLM_BACKEND") == "ollama" {
		c.Backend.Enabled = true
	}
	if m := os.Getenv("SHORTFORM_OLLAMA_MODEL"); m != "" {
		c.Backend.Model = m
	}
	if u := os.Getenv("SHORTFORM_BASE_URL"); u != "" {
		c.Site.BaseURL = u
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Discovery.MaxNew <= 0 {
		c.Discovery.MaxNew = def.Discovery.MaxNew
	}
	if c.Backend.URL == "" {
		c.Backend.URL = def.Backend.URL
	}
	if c.Backend.Model == "" {
		c.Backend.Model = def.Backend.Model
	}
	if c.Backend.TimeoutSec <= 0 {
		c.Backend.TimeoutSec = def.Backend.TimeoutSec
	}
	if c.Backend.MinIntervalSec <= 0 {
		c.Backend.MinIntervalSec = def.Backend.MinIntervalSec
	}
	if c.Video.CaptionFontSize <= 0 {
		c.Video.CaptionFontSize = def.Video.CaptionFontSize
	}
	defRubric := DefaultRubric()
	if c.Rubric.MinScore <= 0 {
		c.Rubric = defRubric
	}
	if c.Rubric.MaxHookWords <= 0 {
		c.Rubric.MaxHookWords = defRubric.MaxHookWords
	}
	if c.Rubric.MinSegments <= 0 {
		c.Rubric.MinSegments = defRubric.MinSegments
	}
	if c.Rubric.MinDurationSec <= 0 {
		c.Rubric.MinDurationSec = defRubric.MinDurationSec
	}
	if c.Rubric.MaxDurationSec <= 0 {
		c.Rubric.MaxDurationSec = defRubric.MaxDurationSec
	}
	if c.Rubric.MinHashtags <= 0 {
		c.Rubric.MinHashtags = defRubric.MinHashtags
	}
	if c.Rubric.MaxWordsPerSecond <= 0 {
		c.Rubric.MaxWordsPerSecond = defRubric.MaxWordsPerSecond
	}
}
