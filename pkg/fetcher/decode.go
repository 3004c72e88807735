package fetcher

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// Decode converts a response body to UTF-8 text. The charset comes from the
// Content-Type header, a BOM, or a <meta> declaration, in that order of trust.
// Bytes that are invalid in the resolved charset become U+FFFD. NUL bytes only
// mark a body as binary when neither the declared nor the sniffed type is text.
func Decode(body []byte, contentType string) (string, error) {
	if label := declaredCharset(contentType); label != "" {
		if enc, _ := charset.Lookup(label); enc == nil {
			return "", fmt.Errorf("%w: unsupported charset %q", ErrUndecodable, label)
		}
	}
	if bytes.IndexByte(body, 0) >= 0 {
		declaredText := contentType == "" || isTextual(mediaType(contentType))
		if sniffed := mediaType(http.DetectContentType(body)); !declaredText || !isTextual(sniffed) {
			return "", fmt.Errorf("%w: binary content (%s)", ErrUndecodable, sniffed)
		}
	}

	enc, name, _ := charset.DetermineEncoding(body, contentType)
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("%w: decode as %s: %v", ErrUndecodable, name, err)
	}
	// Strip a leading BOM the decoder left behind.
	decoded = bytes.TrimPrefix(decoded, []byte("\uFEFF"))
	return string(decoded), nil
}

func isTextual(mt string) bool {
	return strings.HasPrefix(mt, "text/") ||
		strings.HasSuffix(mt, "/xml") ||
		strings.HasSuffix(mt, "+xml") ||
		strings.Contains(mt, "html")
}

func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt == "" {
		return "unknown type"
	}
	return mt
}

func sanitizeSnippet(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == utf8.RuneError || (unicode.IsControl(r) && !unicode.IsSpace(r)) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
