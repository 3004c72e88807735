package clean

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/snap-clipper/internal/common"
	"github.com/dtnitsch/snap-clipper/models"
	"github.com/dtnitsch/snap-clipper/pkg/analytics"
	"github.com/dtnitsch/snap-clipper/pkg/extractor"
	"github.com/dtnitsch/snap-clipper/pkg/mapreduce"
	"github.com/dtnitsch/snap-clipper/pkg/storage"
	"github.com/dtnitsch/snap-clipper/pkg/tagger"
)

// pipeline bundles what every worker shares. All fields are safe for concurrent use.
type pipeline struct {
	logger    *zap.Logger
	extractor *extractor.Extractor
	tagger    tagger.Tagger
	analytics *analytics.Analytics
	storage   *storage.Storage
	outputDir string
}

// run extracts every request with workerCount workers and returns the results
// in input order plus the reduced keyword counts.
func run(ctx context.Context, p *pipeline, requests []models.ExtractionRequest, workerCount int) ([]Result, map[string]int) {
	if workerCount <= 0 {
		workerCount = models.DefaultWorkerCount
	}
	if workerCount > len(requests) {
		workerCount = max(len(requests), 1)
	}

	p.logger.Info("starting concurrent extraction", zap.Int("url_count", len(requests)), zap.Int("workers", workerCount))
	var wg sync.WaitGroup
	jobs := make(chan Job, len(requests))
	results := make(chan Result, len(requests))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, p, &wg, jobs, results)
	}

	for i, req := range requests {
		jobs <- Job{ID: i, Request: req}
	}
	close(jobs)

	wg.Wait()
	close(results)
	p.logger.Info("all workers finished")

	allResults := make([]Result, 0, len(requests))
	for result := range results {
		allResults = append(allResults, result)
	}
	sort.Slice(allResults, func(i, j int) bool { return allResults[i].ID < allResults[j].ID })

	intermediate := make([]map[string]int, 0, len(allResults))
	for _, result := range allResults {
		if result.WordCounts != nil {
			intermediate = append(intermediate, result.WordCounts)
		}
	}
	return allResults, mapreduce.Reduce(intermediate)
}

func worker(ctx context.Context, id int, p *pipeline, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		log := p.logger.With(zap.Int("worker_id", id), zap.String("url", job.Request.URL))
		log.Debug("worker started job")
		results <- process(ctx, log, p, job)
	}
}

func process(ctx context.Context, log *zap.Logger, p *pipeline, job Job) Result {
	result := Result{ID: job.ID, Request: job.Request}

	clip, err := p.extractor.Extract(ctx, job.Request.URL)
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		result.Error = err
		result.ErrorKind = extractor.KindOf(err).String()
		return result
	}
	result.Clip = clip
	result.WordCounts = mapreduce.Map(clip.Text, p.analytics)

	if p.tagger != nil {
		s, err := p.tagger.Suggest(ctx, clip)
		if err != nil {
			log.Warn("suggestion failed", zap.Error(err))
			s = models.FallbackSuggestion()
		}
		clip.Suggestion = &s
	}

	if p.outputDir != "" {
		path, size, err := saveClip(p.storage, p.outputDir, clip)
		if err != nil {
			log.Error("failed to save clip", zap.Error(err))
			result.Error = err
			result.ErrorKind = "save_error"
			return result
		}
		result.FilePath = path
		result.SizeBytes = size
	}

	log.Info("worker finished job", zap.Int("words", clip.WordCount))
	return result
}

func saveClip(s *storage.Storage, dir string, clip *models.Clip) (string, int64, error) {
	data, err := yaml.Marshal(clip)
	if err != nil {
		return "", 0, fmt.Errorf("error marshalling clip: %w", err)
	}
	path := ClipFilePath(dir, clip.URL)
	if err := s.SaveFile(path, data); err != nil {
		return "", 0, err
	}
	stats, err := s.GetFileStats(path)
	if err != nil {
		return "", 0, err
	}
	return path, stats.SizeBytes, nil
}

// maxBaseLen bounds the host+path part of a clip file name.
const maxBaseLen = 100

// ClipFilePath generates a filesystem-friendly path for a clip of rawURL.
// A short hash of the URL keeps distinct query strings apart.
func ClipFilePath(dir, rawURL string) string {
	hash := common.ContentHash([]byte(rawURL))[:8]

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return filepath.Join(dir, fmt.Sprintf("clip-%s.yaml", hash))
	}

	host := strings.ReplaceAll(parsed.Hostname(), ".", "_")
	path := strings.Trim(parsed.Path, "/")
	path = strings.NewReplacer("/", "-", ".", "_").Replace(path)

	base := host
	if path != "" {
		base = host + "-" + path
	}
	base = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, base)
	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", base, hash))
}
