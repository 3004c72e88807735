package manifest

import (
	"os"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/snap-clipper/pkg/storage"
)

func TestBuildAndWrite(t *testing.T) {
	entries := []Entry{
		{URL: "https://a.example", Status: "success", Title: "A", WordCount: 12},
		{URL: "https://b.example", Status: "error", ErrorKind: "fetch_failed", ErrorMessage: "boom"},
	}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := Build(entries, map[string]int{"kelp": 3, "otters": 1}, now)

	if m.Successful != 1 || m.Failed != 1 || m.TotalURLs != 2 {
		t.Errorf("counts = %d/%d/%d", m.Successful, m.Failed, m.TotalURLs)
	}
	if m.GeneratedAt != "2024-05-01T12:00:00Z" {
		t.Errorf("GeneratedAt = %s", m.GeneratedAt)
	}
	if len(m.AggregateKeywords) != 2 || m.AggregateKeywords[0].Word != "kelp" {
		t.Errorf("AggregateKeywords = %v", m.AggregateKeywords)
	}

	s := &storage.Storage{}
	path, err := Write(t.TempDir(), m, s)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var back SummaryManifest
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("manifest is not YAML: %v", err)
	}
	if len(back.Results) != 2 || back.Results[1].ErrorKind != "fetch_failed" {
		t.Errorf("round-tripped results = %+v", back.Results)
	}
}
