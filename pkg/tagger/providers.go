package tagger

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/snap-clipper/models"
)

// provider is an OpenAI-compatible chat endpoint and its default model.
type provider struct {
	baseURL string
	model   string
}

// providers lists the chat backends a snap can be tagged with. Anthropic and
// Gemini are reached through their OpenAI-compatible endpoints.
var providers = map[string]provider{
	"openai":    {baseURL: "", model: "gpt-4-turbo"},
	"anthropic": {baseURL: "https://api.anthropic.com/v1/", model: "claude-3-opus-20240229"},
	"gemini":    {baseURL: "https://generativelanguage.googleapis.com/v1beta/openai/", model: "gemini-1.5-pro"},
}

// resolveProvider fills BaseURL and Model from the provider defaults where
// they were not set explicitly.
func resolveProvider(cfg models.TaggerConfig) (models.TaggerConfig, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		name = "openai"
	}
	p, ok := providers[name]
	if !ok {
		return cfg, fmt.Errorf("unknown llm provider %q (want openai, anthropic or gemini)", cfg.Provider)
	}
	cfg.Provider = name
	if cfg.BaseURL == "" {
		cfg.BaseURL = p.baseURL
	}
	if cfg.Model == "" {
		cfg.Model = p.model
	}
	return cfg, nil
}
