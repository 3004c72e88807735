package models

// ExtractionRequest is one URL to clip.
type ExtractionRequest struct {
	URL string `json:"url" yaml:"url"`
	// Original is the input before sanitizing, kept for reporting.
	Original string `json:"original,omitempty" yaml:"original,omitempty"`
}

// WasSanitized reports whether the URL was changed by sanitizing.
func (r ExtractionRequest) WasSanitized() bool {
	return r.Original != "" && r.Original != r.URL
}
