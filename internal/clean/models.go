package clean

import (
	"github.com/dtnitsch/snap-clipper/models"
	"github.com/dtnitsch/snap-clipper/pkg/mapreduce"
)

// Job is one URL handed to a worker. ID keeps results in input order.
type Job struct {
	ID      int
	Request models.ExtractionRequest
}

// Result holds the outcome of a processed job.
type Result struct {
	ID         int
	Request    models.ExtractionRequest
	Clip       *models.Clip
	Error      error
	ErrorKind  string
	FilePath   string
	SizeBytes  int64
	WordCounts map[string]int
}

// ResultOutput is the structured output for a single URL.
type ResultOutput struct {
	URL        string             `json:"url" yaml:"url"`
	Original   string             `json:"original,omitempty" yaml:"original,omitempty"`
	Status     string             `json:"status" yaml:"status"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind  string             `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	FilePath   string             `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Title      string             `json:"title,omitempty" yaml:"title,omitempty"`
	WordCount  int                `json:"word_count,omitempty" yaml:"word_count,omitempty"`
	Empty      bool               `json:"empty,omitempty" yaml:"empty,omitempty"`
	Language   string             `json:"language,omitempty" yaml:"language,omitempty"`
	Suggestion *models.Suggestion `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Text       string             `json:"text,omitempty" yaml:"text,omitempty"`
}

// FinalOutput is the structured output for the entire run.
type FinalOutput struct {
	Status   string         `json:"status" yaml:"status"` // success, partial_failure, failure
	Results  []ResultOutput `json:"results" yaml:"results"`
	Stats    Stats          `json:"stats" yaml:"stats"`
	Manifest string         `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalURLs        int                 `json:"total_urls" yaml:"total_urls"`
	Successful       int                 `json:"successful" yaml:"successful"`
	Failed           int                 `json:"failed" yaml:"failed"`
	Sanitized        int                 `json:"sanitized,omitempty" yaml:"sanitized,omitempty"`
	TotalTimeSeconds float64             `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopKeywords      []mapreduce.Keyword `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}

// toOutput flattens a Result for printing. Text is only included when asked for.
func (r Result) toOutput(withText bool) ResultOutput {
	out := ResultOutput{
		URL:      r.Request.URL,
		FilePath: r.FilePath,
	}
	if r.Request.WasSanitized() {
		out.Original = r.Request.Original
	}
	if r.Error != nil {
		out.Status = "failed"
		out.Error = r.Error.Error()
		out.ErrorKind = r.ErrorKind
		return out
	}
	out.Status = "success"
	if c := r.Clip; c != nil {
		out.Title = c.Title
		out.WordCount = c.WordCount
		out.Empty = c.Empty
		out.Language = c.Language
		out.Suggestion = c.Suggestion
		if withText {
			out.Text = c.Text
		}
	}
	return out
}
