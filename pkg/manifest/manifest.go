// Package manifest writes the batch index that sits next to saved clips.
package manifest

import (
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/snap-clipper/pkg/mapreduce"
	"github.com/dtnitsch/snap-clipper/pkg/storage"
)

// FileName is the manifest's name inside the output directory.
const FileName = "summary.yaml"

// SummaryManifest gives an overview of a batch run without opening each clip file.
type SummaryManifest struct {
	GeneratedAt       string              `yaml:"generated_at"`
	TotalURLs         int                 `yaml:"total_urls"`
	Successful        int                 `yaml:"successful"`
	Failed            int                 `yaml:"failed"`
	AggregateKeywords []mapreduce.Keyword `yaml:"aggregate_keywords,omitempty"`
	Results           []Entry             `yaml:"results"`
}

// Entry summarizes one URL of the batch.
type Entry struct {
	URL          string   `yaml:"url"`
	FilePath     string   `yaml:"file_path,omitempty"`
	Status       string   `yaml:"status"` // success or error
	ErrorKind    string   `yaml:"error_kind,omitempty"`
	ErrorMessage string   `yaml:"error_message,omitempty"`
	Title        string   `yaml:"title,omitempty"`
	WordCount    int      `yaml:"word_count,omitempty"`
	SizeBytes    int64    `yaml:"size_bytes,omitempty"`
	TopKeywords  []string `yaml:"top_keywords,omitempty"`
}

// Build counts successes and failures and ranks the aggregated keywords.
func Build(entries []Entry, aggregate map[string]int, now time.Time) SummaryManifest {
	m := SummaryManifest{
		GeneratedAt:       now.UTC().Format(time.RFC3339),
		TotalURLs:         len(entries),
		AggregateKeywords: mapreduce.TopKeywords(aggregate, 25),
		Results:           entries,
	}
	for _, e := range entries {
		if e.Status == "success" {
			m.Successful++
		} else {
			m.Failed++
		}
	}
	return m
}

// Write saves m as YAML under dir and returns the file path.
func Write(dir string, m SummaryManifest, s *storage.Storage) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := s.SaveFile(path, data); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}
	return path, nil
}
