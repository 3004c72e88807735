package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/snap-clipper/pkg/httpclient"
)

// ErrUndecodable marks a response body that could not be turned into text.
var ErrUndecodable = errors.New("response body is not decodable text")

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d body: %s", e.StatusCode, e.Snippet)
}

// Document is one fetched page, decoded to UTF-8.
type Document struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	Body        string
}

type Fetcher struct {
	client    httpclient.Client
	userAgent string
}

// NewFetcher builds a Fetcher on top of client. A nil client gets a resty
// client bounded by timeout.
func NewFetcher(client httpclient.Client, timeout time.Duration, userAgent string) *Fetcher {
	if client == nil {
		client = httpclient.NewRestyClient(timeout)
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch issues one GET and returns the decoded page. No retries.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Document, error) {
	headers := map[string]string{
		"Accept": "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
	}
	if f.userAgent != "" {
		headers["User-Agent"] = f.userAgent
	}

	resp, err := f.client.Get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Snippet: responseSnippet(resp.Body())}
	}

	contentType := resp.Header().Get("Content-Type")
	body, err := Decode(resp.Body(), contentType)
	if err != nil {
		return nil, err
	}

	finalURL := resp.FinalURL()
	if finalURL == "" {
		finalURL = url
	}

	return &Document{
		URL:         url,
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode(),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func responseSnippet(body []byte) string {
	const maxLen = 256
	s := string(body)
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return sanitizeSnippet(s)
}
