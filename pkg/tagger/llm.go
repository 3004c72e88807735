package tagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/dtnitsch/snap-clipper/models"
)

// maxPromptRunes caps how much clip text is sent to the model.
const maxPromptRunes = 8000

// ChatClient is the part of the OpenAI client the LLM tagger needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient builds an OpenAI-compatible client. baseURL may point at any
// compatible endpoint; empty keeps the OpenAI default.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// LLMTagger asks a chat model for the suggestion. It never returns an error:
// any failure yields the fallback suggestion with LLMError set.
type LLMTagger struct {
	client ChatClient
	model  string
	logger *zap.Logger
}

func NewLLMTagger(client ChatClient, model string, logger *zap.Logger) *LLMTagger {
	if model == "" {
		model = "gpt-4-turbo"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMTagger{client: client, model: model, logger: logger}
}

const promptTemplate = `Analyze the following content and return structured JSON:
- title: A short, meaningful title
- contentType: "text", "link", "image", "code", etc.
- tags: List of 3-5 relevant tags

Content: %q`

type llmSuggestion struct {
	Title       string   `json:"title"`
	ContentType string   `json:"contentType"`
	Tags        []string `json:"tags"`
}

func (l *LLMTagger) Suggest(ctx context.Context, clip *models.Clip) (models.Suggestion, error) {
	s, err := l.suggest(ctx, clip)
	if err != nil {
		l.logger.Warn("llm suggestion failed, using fallback", zap.String("model", l.model), zap.Error(err))
		fb := models.FallbackSuggestion()
		fb.LLMError = true
		return fb, nil
	}
	return s, nil
}

func (l *LLMTagger) suggest(ctx context.Context, clip *models.Clip) (models.Suggestion, error) {
	if l.client == nil {
		return models.Suggestion{}, errors.New("llm tagger not configured")
	}
	if clip == nil {
		return models.Suggestion{}, errors.New("nil clip")
	}

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, promptContent(clip))},
		},
		Temperature: 0.5,
		N:           1,
	})
	if err != nil {
		return models.Suggestion{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.Suggestion{}, errors.New("no choices")
	}

	var parsed llmSuggestion
	raw := stripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.Suggestion{}, fmt.Errorf("parse suggestion json: %w", err)
	}
	return normalize(parsed), nil
}

func promptContent(clip *models.Clip) string {
	text := clip.Text
	if text == "" {
		text = clip.URL
	}
	if utf8.RuneCountInString(text) > maxPromptRunes {
		text = string([]rune(text)[:maxPromptRunes])
	}
	return text
}

// stripFences removes markdown code fences models like to wrap JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func normalize(in llmSuggestion) models.Suggestion {
	fb := models.FallbackSuggestion()
	out := models.Suggestion{
		Title:       strings.TrimSpace(in.Title),
		ContentType: strings.ToLower(strings.TrimSpace(in.ContentType)),
		Tags:        []string{},
	}
	if out.Title == "" {
		out.Title = fb.Title
	}
	if out.ContentType == "" {
		out.ContentType = fb.ContentType
	}
	seen := map[string]struct{}{}
	for _, tag := range in.Tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Tags = append(out.Tags, tag)
		if len(out.Tags) == MaxTags {
			break
		}
	}
	return out
}
