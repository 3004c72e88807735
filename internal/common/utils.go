package common

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/snap-clipper/models"
	"github.com/dtnitsch/snap-clipper/pkg/extractor"
)

// markdownLink matches [text](url) so the URL can be pulled out.
var markdownLink = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// ContentHash computes the SHA256 hash of data as a hex string.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// SanitizeURL cleans up common copy-paste damage: surrounding whitespace,
// markdown link syntax, wrapping brackets or quotes and trailing punctuation.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// "[click here](https://example.com)" -> "https://example.com"
	if m := markdownLink.FindStringSubmatch(cleaned); len(m) > 1 {
		cleaned = m[1]
	}

	// "https://example.com," -> "https://example.com"
	cleaned = strings.TrimRight(cleaned, ",.)}]\"'>;")
	// "(https://example.com" -> "https://example.com"
	cleaned = strings.TrimLeft(cleaned, "([<\"'")

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs cleans every input and splits the result into
// requests that can be fetched and inputs that stay malformed after cleanup.
// Validation is the same the extractor applies, so nothing reported valid here
// fails later as an invalid URL.
func SanitizeAndValidateURLs(urls []string) ([]models.ExtractionRequest, []string) {
	requests := make([]models.ExtractionRequest, 0, len(urls))
	var invalid []string

	for _, raw := range urls {
		cleaned := SanitizeURL(raw)
		if cleaned == "" {
			invalid = append(invalid, raw)
			continue
		}
		if _, err := extractor.ParseURL(cleaned); err != nil {
			invalid = append(invalid, raw)
			continue
		}
		requests = append(requests, models.ExtractionRequest{URL: cleaned, Original: raw})
	}

	return requests, invalid
}

// SplitURLList splits a comma separated --urls value, dropping blanks.
func SplitURLList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return out
}
