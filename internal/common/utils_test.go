package common

import (
	"reflect"
	"testing"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  https://example.com  ", "https://example.com"},
		{"https://example.com,", "https://example.com"},
		{"https://example.com/page.", "https://example.com/page"},
		{"[docs](https://example.com/docs)", "https://example.com/docs"},
		{"(https://example.com)", "https://example.com"},
		{"<https://example.com/a?b=c>", "https://example.com/a?b=c"},
		{"\"https://example.com\";", "https://example.com"},
	}
	for _, tt := range tests {
		if got := SanitizeURL(tt.in); got != tt.want {
			t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeAndValidateURLs(t *testing.T) {
	input := []string{
		"https://example.com/a,",
		"http://127.0.0.1:8080/local",
		"not a url",
		"https://example.com{}",
		"ftp://example.com/file",
		"   ",
	}

	requests, invalid := SanitizeAndValidateURLs(input)

	var got []string
	for _, r := range requests {
		got = append(got, r.URL)
	}
	wantValid := []string{"https://example.com/a", "http://127.0.0.1:8080/local"}
	if !reflect.DeepEqual(got, wantValid) {
		t.Errorf("valid = %v, want %v", got, wantValid)
	}
	if !requests[0].WasSanitized() || requests[1].WasSanitized() {
		t.Errorf("WasSanitized flags wrong: %+v", requests)
	}

	wantInvalid := []string{"not a url", "https://example.com{}", "ftp://example.com/file", "   "}
	if !reflect.DeepEqual(invalid, wantInvalid) {
		t.Errorf("invalid = %v, want %v", invalid, wantInvalid)
	}
}

func TestSplitURLList(t *testing.T) {
	got := SplitURLList("https://a.example, ,https://b.example,")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitURLList() = %q, want %q", got, want)
	}
}

func TestContentHash(t *testing.T) {
	const emptySHA = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := ContentHash(nil); got != emptySHA {
		t.Errorf("ContentHash(nil) = %s", got)
	}
}
