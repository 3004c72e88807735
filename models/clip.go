package models

import (
	"net/url"
	"strings"
)

// Article is the readability result for one page. Content is an HTML fragment.
type Article struct {
	Title         string `json:"title" yaml:"title"`
	Byline        string `json:"byline,omitempty" yaml:"byline,omitempty"`
	Excerpt       string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	SiteName      string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Image         string `json:"image,omitempty" yaml:"image,omitempty"`
	Favicon       string `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	PublishedTime string `json:"published_time,omitempty" yaml:"published_time,omitempty"` // ISO-8601 date
	Content       string `json:"-" yaml:"-"`
}

// Clip is the plain-text result of extracting one URL plus what we learned on the way.
type Clip struct {
	URL      string `json:"url" yaml:"url"`
	FinalURL string `json:"final_url,omitempty" yaml:"final_url,omitempty"` // after redirects

	Article `yaml:",inline"`

	Text string `json:"text" yaml:"text"`
	// Empty is set when the root selector matched nothing or only whitespace.
	Empty bool `json:"empty,omitempty" yaml:"empty,omitempty"`

	// HTTP metadata
	StatusCode      int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	HTTPContentType string `json:"http_content_type,omitempty" yaml:"http_content_type,omitempty"`

	// Size signals
	WordCount        int     `json:"word_count" yaml:"word_count"`
	EstimatedReadMin float64 `json:"estimated_read_min" yaml:"estimated_read_min"`

	Language           string  `json:"language,omitempty" yaml:"language,omitempty"` // ISO-639-1
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`

	Suggestion *Suggestion `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Host returns the host of the requested URL, or "" when it does not parse.
func (c *Clip) Host() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Suggestion is a proposed title, content type and tag set for saving a clip as a snap.
type Suggestion struct {
	Title       string   `json:"title" yaml:"title"`
	ContentType string   `json:"content_type" yaml:"content_type"` // text, link, image, code, ...
	Tags        []string `json:"tags" yaml:"tags"`
	LLMError    bool     `json:"llm_error,omitempty" yaml:"llm_error,omitempty"`
}

// FallbackSuggestion is used whenever a suggestion cannot be produced.
func FallbackSuggestion() Suggestion {
	return Suggestion{
		Title:       "Untitled Snap",
		ContentType: "text",
		Tags:        []string{},
	}
}
