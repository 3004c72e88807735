// Package tagger suggests a title, content type and tags for saving a clip.
package tagger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dtnitsch/snap-clipper/models"
	"github.com/dtnitsch/snap-clipper/pkg/analytics"
)

const (
	KindNone     = "none"
	KindKeywords = "keywords"
	KindLLM      = "llm"
)

// MaxTags bounds how many tags a suggestion carries.
const MaxTags = 5

// Tagger proposes snap metadata for a clip.
type Tagger interface {
	Suggest(ctx context.Context, clip *models.Clip) (models.Suggestion, error)
}

// KeywordTagger builds suggestions from the clip itself, with no network calls.
type KeywordTagger struct {
	analytics *analytics.Analytics
}

func NewKeywordTagger() *KeywordTagger {
	return &KeywordTagger{analytics: &analytics.Analytics{}}
}

func (k *KeywordTagger) Suggest(_ context.Context, clip *models.Clip) (models.Suggestion, error) {
	if clip == nil {
		return models.FallbackSuggestion(), nil
	}
	title := clip.Title
	if title == "" {
		title = clip.Host()
	}
	if title == "" {
		title = models.FallbackSuggestion().Title
	}
	tags := k.analytics.TopNWords(clip.Text, MaxTags)
	if tags == nil {
		tags = []string{}
	}
	return models.Suggestion{
		Title:       title,
		ContentType: "link",
		Tags:        tags,
	}, nil
}

// New returns the tagger for cfg.Kind, or nil for "none".
func New(cfg models.TaggerConfig, logger *zap.Logger) (Tagger, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindNone:
		return nil, nil
	case KindKeywords:
		return NewKeywordTagger(), nil
	case KindLLM:
		if cfg.APIKey == "" && cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm tagger needs an API key or a base URL")
		}
		resolved, err := resolveProvider(cfg)
		if err != nil {
			return nil, err
		}
		return NewLLMTagger(NewOpenAIClient(resolved.APIKey, resolved.BaseURL), resolved.Model, logger), nil
	default:
		return nil, fmt.Errorf("unknown tagger %q (want none, keywords or llm)", cfg.Kind)
	}
}
