// Package models defines data structures for configuration and clipping.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultWorkerCount  = 4
	DefaultRootSelector = "body"
	DefaultUserAgent    = "snap-clipper/1.0 (+https://github.com/dtnitsch/snap-clipper)"
)

// Config holds runtime configuration. Values come from an optional YAML file
// and are overridden by CLI flags that were set explicitly.
type Config struct {
	URLs        []string `yaml:"urls"`
	WorkerCount int      `yaml:"workers"`

	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`

	Extract ExtractConfig `yaml:"extract"`
	Tagger  TaggerConfig  `yaml:"tagger"`

	DetectLanguage bool   `yaml:"detect_language"`
	OutputDir      string `yaml:"output_dir"`
}

// ExtractConfig tunes the readability and flattening stages.
type ExtractConfig struct {
	RootSelector string `yaml:"root_selector"`
	RequireText  bool   `yaml:"require_text"`
	UseFinalURL  bool   `yaml:"use_final_url"`

	MaxElemsToParse int  `yaml:"max_elems_to_parse"`
	NTopCandidates  int  `yaml:"n_top_candidates"`
	CharThreshold   int  `yaml:"char_threshold"`
	KeepClasses     bool `yaml:"keep_classes"`
}

// TaggerConfig selects how snap title/type/tags are suggested.
type TaggerConfig struct {
	Kind     string `yaml:"kind"`     // none, keywords, llm
	Provider string `yaml:"provider"` // openai, anthropic, gemini
	Model    string `yaml:"model"`    // empty picks the provider default
	BaseURL  string `yaml:"base_url"` // empty picks the provider endpoint
	APIKey   string `yaml:"-"`
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() *Config {
	return &Config{
		WorkerCount: DefaultWorkerCount,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Extract: ExtractConfig{
			RootSelector: DefaultRootSelector,
		},
		Tagger: TaggerConfig{
			Kind:     "none",
			Provider: "openai",
		},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = DefaultWorkerCount
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Extract.RootSelector == "" {
		c.Extract.RootSelector = DefaultRootSelector
	}
	if c.Tagger.Kind == "" {
		c.Tagger.Kind = "none"
	}
}
