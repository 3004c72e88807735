// Package extractor turns a URL into the clean plain text of its main article.
package extractor

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/dtnitsch/snap-clipper/models"
	"github.com/dtnitsch/snap-clipper/pkg/analytics"
	"github.com/dtnitsch/snap-clipper/pkg/fetcher"
	"github.com/dtnitsch/snap-clipper/pkg/parser"
)

// Fetcher retrieves one page and decodes it to UTF-8.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Document, error)
}

// LanguageDetector guesses the language of a piece of text.
type LanguageDetector interface {
	Detect(text string) (code string, confidence float64, ok bool)
}

// Options control the flattening stage.
type Options struct {
	// RootSelector picks the element(s) whose text is kept. Defaults to "body".
	RootSelector string
	// RequireText turns an empty result into an extraction failure.
	RequireText bool
	// UseFinalURL resolves relative links against the post-redirect URL
	// instead of the requested one.
	UseFinalURL bool
}

// Extractor runs the fetch, readability and flatten pipeline. It holds no
// per-request state and is safe for concurrent use.
type Extractor struct {
	fetcher   Fetcher
	parser    *parser.Parser
	detector  LanguageDetector
	analytics *analytics.Analytics
	opts      Options
	logger    *zap.Logger
}

type Option func(*Extractor)

func WithFetcher(f Fetcher) Option {
	return func(e *Extractor) { e.fetcher = f }
}

func WithParser(p *parser.Parser) Option {
	return func(e *Extractor) { e.parser = p }
}

// WithLanguageDetector enables language detection on extracted text.
func WithLanguageDetector(d LanguageDetector) Option {
	return func(e *Extractor) { e.detector = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an Extractor. Without WithFetcher it fetches with a resty client
// using the default timeout and user agent.
func New(opts Options, options ...Option) *Extractor {
	if opts.RootSelector == "" {
		opts.RootSelector = models.DefaultRootSelector
	}
	e := &Extractor{
		analytics: &analytics.Analytics{},
		opts:      opts,
		logger:    zap.NewNop(),
	}
	for _, o := range options {
		o(e)
	}
	if e.fetcher == nil {
		e.fetcher = fetcher.NewFetcher(nil, models.DefaultTimeout, models.DefaultUserAgent)
	}
	if e.parser == nil {
		e.parser = parser.New(parser.Options{})
	}
	return e
}

// NewFromConfig wires an Extractor from runtime configuration.
func NewFromConfig(cfg *models.Config, options ...Option) *Extractor {
	base := []Option{
		WithFetcher(fetcher.NewFetcher(nil, cfg.Timeout, cfg.UserAgent)),
		WithParser(parser.New(parser.OptionsFromConfig(cfg.Extract))),
	}
	return New(Options{
		RootSelector: cfg.Extract.RootSelector,
		RequireText:  cfg.Extract.RequireText,
		UseFinalURL:  cfg.Extract.UseFinalURL,
	}, append(base, options...)...)
}

var defaultExtractor = New(Options{})

// FetchCleanContent fetches rawURL with default settings and returns the plain
// text of its main article.
func FetchCleanContent(ctx context.Context, rawURL string) (string, error) {
	return defaultExtractor.FetchCleanContent(ctx, rawURL)
}

// FetchCleanContent returns the plain text of the main article at rawURL.
// It returns "" with no error when the root selector matches nothing, unless
// RequireText is set.
func (e *Extractor) FetchCleanContent(ctx context.Context, rawURL string) (string, error) {
	clip, err := e.Extract(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return clip.Text, nil
}

// Extract runs the full pipeline and returns the text with page metadata.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*models.Clip, error) {
	log := e.logger.With(zap.String("url", rawURL))

	base, err := ParseURL(rawURL)
	if err != nil {
		log.Debug("rejected URL", zap.Error(err))
		return nil, newError(KindInvalidURL, rawURL, err)
	}

	doc, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		kind := KindFetchFailed
		if errors.Is(err, fetcher.ErrUndecodable) {
			kind = KindDecodeFailed
		}
		log.Warn("fetch failed", zap.Stringer("kind", kind), zap.Error(err))
		return nil, newError(kind, rawURL, err)
	}
	log.Debug("fetched page",
		zap.Int("status", doc.StatusCode),
		zap.String("final_url", doc.FinalURL),
		zap.Int("bytes", len(doc.Body)))

	if e.opts.UseFinalURL && doc.FinalURL != "" && doc.FinalURL != rawURL {
		if final, err := url.Parse(doc.FinalURL); err == nil && final.IsAbs() {
			base = final
		}
	}

	article, err := e.parser.Parse(doc.Body, base)
	if err != nil {
		log.Warn("readability failed", zap.Error(err))
		return nil, newError(KindExtractionFailed, rawURL, err)
	}

	text, matched, err := parser.PlainText(article.Content, e.opts.RootSelector)
	if err != nil {
		return nil, newError(KindExtractionFailed, rawURL, err)
	}
	empty := !matched || text == ""
	if empty {
		log.Debug("no text under root selector",
			zap.String("selector", e.opts.RootSelector),
			zap.Bool("matched", matched))
		if e.opts.RequireText {
			return nil, newError(KindExtractionFailed, rawURL,
				&EmptyTextError{Selector: e.opts.RootSelector, Matched: matched})
		}
	}

	clip := &models.Clip{
		URL:             rawURL,
		FinalURL:        doc.FinalURL,
		Article:         *article,
		Text:            text,
		Empty:           empty,
		StatusCode:      doc.StatusCode,
		HTTPContentType: doc.ContentType,
	}
	clip.WordCount = e.analytics.WordCount(text)
	clip.EstimatedReadMin = analytics.EstimatedReadMinutes(clip.WordCount)

	if e.detector != nil {
		if code, conf, ok := e.detector.Detect(text); ok {
			clip.Language = code
			clip.LanguageConfidence = conf
		}
	}

	log.Info("extracted content",
		zap.String("title", clip.Title),
		zap.Int("words", clip.WordCount),
		zap.Bool("empty", clip.Empty))
	return clip, nil
}

// EmptyTextError explains an empty result when text was required.
type EmptyTextError struct {
	Selector string
	Matched  bool
}

func (e *EmptyTextError) Error() string {
	if !e.Matched {
		return "no element matches selector " + e.Selector
	}
	return "selector " + e.Selector + " matched only whitespace"
}
