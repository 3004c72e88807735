package extractor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParseURL validates raw as an absolute http(s) URL without touching the network.
func ParseURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("URL is empty")
	}
	// Literal spaces must be pre-encoded as %20.
	if strings.ContainsAny(raw, " \t\r\n") {
		return nil, errors.New("URL contains whitespace")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !parsed.IsAbs() {
		return nil, errors.New("URL is not absolute (missing scheme)")
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" || parsed.Hostname() == "" {
		return nil, errors.New("URL has no host")
	}
	// Example: "https://example.com{}" should fail
	if strings.ContainsAny(parsed.Host, "{}[]<>\"'") && !isBracketedIPv6(parsed.Host) {
		return nil, fmt.Errorf("URL host %q contains invalid characters", parsed.Host)
	}
	return parsed, nil
}

func isBracketedIPv6(host string) bool {
	if !strings.HasPrefix(host, "[") {
		return false
	}
	end := strings.Index(host, "]")
	return end > 0 && !strings.ContainsAny(host[end+1:], "{}[]<>\"'")
}
