package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/snap-clipper/pkg/httpclient"
)

type stubResponse struct {
	body     []byte
	status   int
	header   http.Header
	finalURL string
}

func (s stubResponse) Body() []byte        { return s.body }
func (s stubResponse) StatusCode() int     { return s.status }
func (s stubResponse) Header() http.Header { return s.header }
func (s stubResponse) FinalURL() string    { return s.finalURL }

type stubClient struct {
	resp    httpclient.Response
	err     error
	headers map[string]string
}

func (s *stubClient) Get(_ context.Context, _ string, headers map[string]string) (httpclient.Response, error) {
	s.headers = headers
	return s.resp, s.err
}

func TestFetchDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>café</p></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(nil, 2*time.Second, "snap-test")
	doc, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(doc.Body, "café") {
		t.Errorf("Body = %q, want it to contain café", doc.Body)
	}
	if doc.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", doc.StatusCode)
	}
	if doc.FinalURL != srv.URL {
		t.Errorf("FinalURL = %q, want %q", doc.FinalURL, srv.URL)
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	client := &stubClient{resp: stubResponse{body: []byte("<p>x</p>"), status: 200, header: http.Header{}}}
	f := NewFetcher(client, time.Second, "snap-test/1.0")
	if _, err := f.Fetch(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := client.headers["User-Agent"]; got != "snap-test/1.0" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestFetchStatusError(t *testing.T) {
	client := &stubClient{resp: stubResponse{body: []byte("not\nfound"), status: 404, header: http.Header{}}}
	f := NewFetcher(client, time.Second, "")

	_, err := f.Fetch(context.Background(), "https://example.com/missing")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
	if statusErr.Snippet != "not found" {
		t.Errorf("Snippet = %q", statusErr.Snippet)
	}
}

func TestFetchTransportError(t *testing.T) {
	client := &stubClient{err: errors.New("dial tcp: connection refused")}
	f := NewFetcher(client, time.Second, "")

	_, err := f.Fetch(context.Background(), "https://example.com")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected transport cause in error, got %v", err)
	}
	if errors.Is(err, ErrUndecodable) {
		t.Fatalf("transport error must not be reported as undecodable")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		body        []byte
		contentType string
		want        string
		wantErr     bool
	}{
		{
			name:        "utf-8 header",
			body:        []byte("<p>naïve</p>"),
			contentType: "text/html; charset=utf-8",
			want:        "<p>naïve</p>",
		},
		{
			name:        "latin-1 header",
			body:        []byte("<p>caf\xe9</p>"),
			contentType: "text/html; charset=iso-8859-1",
			want:        "<p>café</p>",
		},
		{
			name: "meta charset without header",
			body: []byte("<html><head><meta charset=\"windows-1252\"></head><body>\x93hi\x94</body></html>"),
			want: "<html><head><meta charset=\"windows-1252\"></head><body>“hi”</body></html>",
		},
		{
			name: "utf-8 bom",
			body: []byte("\xef\xbb\xbf<p>bom</p>"),
			want: "<p>bom</p>",
		},
		{
			name:        "unknown charset",
			body:        []byte("<p>x</p>"),
			contentType: "text/html; charset=x-made-up",
			wantErr:     true,
		},
		{
			name:        "stray nul in html",
			body:        []byte("<!-- \x00 --><p>kept</p>"),
			contentType: "text/html; charset=utf-8",
			want:        "<!-- \x00 --><p>kept</p>",
		},
		{
			name:        "invalid utf-8 replaced",
			body:        []byte("<p>bad \xff\xfe byte</p>"),
			contentType: "text/html; charset=utf-8",
			want:        "<p>bad \uFFFD\uFFFD byte</p>",
		},
		{
			name:        "png labelled as html",
			body:        []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
			contentType: "text/html",
			wantErr:     true,
		},
		{
			name:        "binary body",
			body:        []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
			contentType: "image/png",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.body, tt.contentType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUndecodable) {
					t.Fatalf("expected ErrUndecodable, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}
