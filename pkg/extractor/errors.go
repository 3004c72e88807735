package extractor

import (
	"errors"
	"fmt"
)

// Kind classifies why an extraction failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidURL
	KindFetchFailed
	KindDecodeFailed
	KindExtractionFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindFetchFailed:
		return "fetch_failed"
	case KindDecodeFailed:
		return "decode_failed"
	case KindExtractionFailed:
		return "extraction_failed"
	default:
		return "unknown"
	}
}

func (k Kind) describe() string {
	switch k {
	case KindInvalidURL:
		return "invalid URL"
	case KindFetchFailed:
		return "failed to fetch page"
	case KindDecodeFailed:
		return "failed to decode page"
	case KindExtractionFailed:
		return "failed to extract content"
	default:
		return "extraction error"
	}
}

// Error is the single error type returned by Extractor. Err carries the cause.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.describe()
	if e.URL != "" {
		msg = fmt.Sprintf("%s %q", msg, e.URL)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.URL == "" && t.Err == nil
}

var (
	ErrInvalidURL       = &Error{Kind: KindInvalidURL}
	ErrFetchFailed      = &Error{Kind: KindFetchFailed}
	ErrDecodeFailed     = &Error{Kind: KindDecodeFailed}
	ErrExtractionFailed = &Error{Kind: KindExtractionFailed}
)

// KindOf reports the kind of err, or KindUnknown when err did not come from an Extractor.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, url string, err error) *Error {
	return &Error{Kind: kind, URL: url, Err: err}
}
