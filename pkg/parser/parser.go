package parser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dtnitsch/snap-clipper/models"
	"github.com/go-shiori/go-readability"
)

// ErrNoContent is returned when readability cannot isolate a main-content region.
var ErrNoContent = errors.New("no readable content found")

// Options tune go-readability. Zero values keep the library defaults.
type Options struct {
	MaxElemsToParse int
	NTopCandidates  int
	CharThreshold   int
	KeepClasses     bool
}

// OptionsFromConfig maps the extract section of the config to parser options.
func OptionsFromConfig(cfg models.ExtractConfig) Options {
	return Options{
		MaxElemsToParse: cfg.MaxElemsToParse,
		NTopCandidates:  cfg.NTopCandidates,
		CharThreshold:   cfg.CharThreshold,
		KeepClasses:     cfg.KeepClasses,
	}
}

// Parser runs readability extraction. It keeps no per-document state and is
// safe for concurrent use.
type Parser struct {
	opts Options
}

func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// newReadability builds a fresh go-readability parser; those carry
// per-document state and must not be shared.
func (p *Parser) newReadability() readability.Parser {
	rp := readability.NewParser()
	if p.opts.MaxElemsToParse > 0 {
		rp.MaxElemsToParse = p.opts.MaxElemsToParse
	}
	if p.opts.NTopCandidates > 0 {
		rp.NTopCandidates = p.opts.NTopCandidates
	}
	if p.opts.CharThreshold > 0 {
		rp.CharThresholds = p.opts.CharThreshold
	}
	rp.KeepClasses = p.opts.KeepClasses
	return rp
}

// Parse finds the main article in html. base resolves relative links inside
// the returned content.
func (p *Parser) Parse(html string, base *url.URL) (*models.Article, error) {
	if base == nil {
		return nil, fmt.Errorf("base URL is required")
	}

	rp := p.newReadability()
	article, err := rp.Parse(strings.NewReader(html), base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, ErrNoContent
	}

	out := &models.Article{
		Title:    normalizeText(article.Title),
		Byline:   normalizeText(article.Byline),
		Excerpt:  normalizeText(article.Excerpt),
		SiteName: normalizeText(article.SiteName),
		Image:    article.Image,
		Favicon:  article.Favicon,
		Content:  article.Content,
	}
	if article.PublishedTime != nil {
		out.PublishedTime = article.PublishedTime.Format("2006-01-02")
	}
	return out, nil
}

// normalizeText collapses every whitespace run to a single space and trims the ends.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
