package tagger

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dtnitsch/snap-clipper/models"
)

type capturingClient struct {
	lastReq openai.ChatCompletionRequest
	content string
	err     error
}

func (c *capturingClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.lastReq = req
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.content},
		}},
	}, nil
}

func TestKeywordTagger(t *testing.T) {
	k := NewKeywordTagger()
	clip := &models.Clip{
		URL:     "https://www.shore.example.com/notes",
		Article: models.Article{Title: "Tide Pools"},
		Text:    "anemones crabs anemones kelp crabs anemones urchins otters snails",
	}

	got, err := k.Suggest(context.Background(), clip)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	want := models.Suggestion{
		Title:       "Tide Pools",
		ContentType: "link",
		Tags:        []string{"anemones", "crabs", "kelp", "otters", "snails"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %+v, want %+v", got, want)
	}

	clip.Title = ""
	got, _ = k.Suggest(context.Background(), clip)
	if got.Title != "shore.example.com" {
		t.Errorf("Suggest() title = %q, want host fallback", got.Title)
	}
}

func TestLLMTaggerParsesFencedJSON(t *testing.T) {
	cc := &capturingClient{content: "```json\n{\"title\":\"Tide Pools\",\"contentType\":\"Text\",\"tags\":[\"ocean\",\"Ocean\",\" tides \",\"\"]}\n```"}
	l := NewLLMTagger(cc, "test-model", nil)

	got, err := l.Suggest(context.Background(), &models.Clip{URL: "https://example.com", Text: "tide pool notes"})
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	want := models.Suggestion{Title: "Tide Pools", ContentType: "text", Tags: []string{"ocean", "tides"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %+v, want %+v", got, want)
	}

	if cc.lastReq.Model != "test-model" {
		t.Errorf("model = %q, want test-model", cc.lastReq.Model)
	}
	if cc.lastReq.Temperature != 0.5 {
		t.Errorf("temperature = %v, want 0.5", cc.lastReq.Temperature)
	}
	if len(cc.lastReq.Messages) != 1 || !strings.Contains(cc.lastReq.Messages[0].Content, "tide pool notes") {
		t.Errorf("prompt does not carry the clip text: %+v", cc.lastReq.Messages)
	}
}

func TestLLMTaggerFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		client *capturingClient
	}{
		{"api error", &capturingClient{err: errors.New("401 unauthorized")}},
		{"not json", &capturingClient{content: "Sure! Here is a title: Tide Pools"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			l := NewLLMTagger(tt.client, "", zap.New(core))

			got, err := l.Suggest(context.Background(), &models.Clip{Text: "anything"})
			if err != nil {
				t.Fatalf("Suggest() error = %v, want nil", err)
			}
			want := models.FallbackSuggestion()
			want.LLMError = true
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Suggest() = %+v, want %+v", got, want)
			}
			if logs.Len() != 1 {
				t.Errorf("expected one warning, got %d", logs.Len())
			}
		})
	}
}

func TestNew(t *testing.T) {
	if tg, err := New(models.TaggerConfig{Kind: "none"}, nil); err != nil || tg != nil {
		t.Errorf("New(none) = %v, %v; want nil, nil", tg, err)
	}
	if tg, err := New(models.TaggerConfig{Kind: "keywords"}, nil); err != nil {
		t.Errorf("New(keywords) error = %v", err)
	} else if _, ok := tg.(*KeywordTagger); !ok {
		t.Errorf("New(keywords) = %T, want *KeywordTagger", tg)
	}
	if _, err := New(models.TaggerConfig{Kind: "llm"}, nil); err == nil {
		t.Error("New(llm) without key should fail")
	}
	if _, err := New(models.TaggerConfig{Kind: "magic"}, nil); err == nil {
		t.Error("New(magic) should fail")
	}
}

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		name        string
		cfg         models.TaggerConfig
		wantBaseURL string
		wantModel   string
		wantErr     bool
	}{
		{"default openai", models.TaggerConfig{}, "", "gpt-4-turbo", false},
		{"anthropic", models.TaggerConfig{Provider: "Anthropic"}, "https://api.anthropic.com/v1/", "claude-3-opus-20240229", false},
		{"gemini", models.TaggerConfig{Provider: "gemini"}, "https://generativelanguage.googleapis.com/v1beta/openai/", "gemini-1.5-pro", false},
		{"explicit overrides", models.TaggerConfig{Provider: "gemini", Model: "gemini-1.5-flash", BaseURL: "http://localhost:8080/v1"}, "http://localhost:8080/v1", "gemini-1.5-flash", false},
		{"unknown", models.TaggerConfig{Provider: "cohere"}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveProvider(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.BaseURL != tt.wantBaseURL || got.Model != tt.wantModel {
				t.Errorf("resolveProvider() = %q, %q; want %q, %q", got.BaseURL, got.Model, tt.wantBaseURL, tt.wantModel)
			}
		})
	}

	if _, err := New(models.TaggerConfig{Kind: "llm", Provider: "cohere", APIKey: "k"}, nil); err == nil {
		t.Error("New(llm, cohere) should fail")
	}
}
