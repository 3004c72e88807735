package clean

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/snap-clipper/internal/common"
	"github.com/dtnitsch/snap-clipper/internal/logger"
	"github.com/dtnitsch/snap-clipper/models"
	"github.com/dtnitsch/snap-clipper/pkg/analytics"
	"github.com/dtnitsch/snap-clipper/pkg/detector"
	"github.com/dtnitsch/snap-clipper/pkg/extractor"
	"github.com/dtnitsch/snap-clipper/pkg/help"
	"github.com/dtnitsch/snap-clipper/pkg/manifest"
	"github.com/dtnitsch/snap-clipper/pkg/mapreduce"
	"github.com/dtnitsch/snap-clipper/pkg/storage"
	"github.com/dtnitsch/snap-clipper/pkg/tagger"
)

// CleanAction extracts one URL and prints its text or full clip record.
func CleanAction(c *cli.Context) error {
	log := newLogger(c)
	defer func() { _ = log.Sync() }()

	format := strings.ToLower(c.String("format"))
	if format != "text" && format != "json" && format != "yaml" {
		return cli.Exit(fmt.Sprintf("Error: unknown format %q (want text, json or yaml)", format), 1)
	}

	rawURL := c.Args().First()
	if rawURL == "" {
		return cli.Exit("Error: No URL provided\n\nUsage:\n  snapclip clean https://example.com/article", 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	p, err := newPipeline(cfg, log)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	ctx := c.Context
	clip, err := p.extractor.Extract(ctx, rawURL)
	if err != nil {
		log.Error("extraction failed", zap.String("url", rawURL), zap.Stringer("kind", extractor.KindOf(err)), zap.Error(err))
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	if p.tagger != nil {
		s, err := p.tagger.Suggest(ctx, clip)
		if err != nil {
			log.Warn("suggestion failed", zap.Error(err))
			s = models.FallbackSuggestion()
		}
		clip.Suggestion = &s
	}

	if format == "text" {
		_, err = fmt.Fprintln(c.App.Writer, clip.Text)
		return err
	}
	return writeStructured(c.App.Writer, format, clip)
}

// BatchAction extracts many URLs with a worker pool and prints per-URL results and run stats.
func BatchAction(c *cli.Context) error {
	log := newLogger(c)
	defer func() { _ = log.Sync() }()
	startTime := time.Now()

	format := strings.ToLower(c.String("format"))
	if format != "json" && format != "yaml" {
		return cli.Exit(fmt.Sprintf("Error: unknown format %q (want json or yaml)", format), 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if c.IsSet("urls") {
		cfg.URLs = common.SplitURLList(c.String("urls"))
	}
	cfg.URLs = append(cfg.URLs, c.Args().Slice()...)

	if len(cfg.URLs) == 0 {
		return cli.Exit(strings.Join([]string{
			"Error: No URLs provided",
			"",
			"Usage:",
			`  snapclip batch --urls "https://example.com,https://example.org"`,
			`  snapclip batch --config clips.yaml`,
		}, "\n"), 1)
	}

	// Sanitize and validate all URLs before fetching anything.
	requests, invalidURLs := common.SanitizeAndValidateURLs(cfg.URLs)
	if len(invalidURLs) > 0 {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, bad := range invalidURLs {
			fmt.Fprintf(&sb, "  - %s\n", bad)
		}
		sb.WriteString("\nNote: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)\n")
		sb.WriteString("      Spaces in URLs must be pre-encoded as %20. Braces {} in domains are not allowed.")
		return cli.Exit(sb.String(), 1)
	}

	p, err := newPipeline(cfg, log)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	results, wordCounts := run(c.Context, p, requests, cfg.WorkerCount)

	finalOutput := FinalOutput{
		Stats: Stats{
			TotalURLs:   len(requests),
			TopKeywords: mapreduce.TopKeywords(wordCounts, 25),
		},
	}
	entries := make([]manifest.Entry, 0, len(results))
	for _, r := range results {
		out := r.toOutput(c.Bool("include-text"))
		finalOutput.Results = append(finalOutput.Results, out)
		if r.Error != nil {
			finalOutput.Stats.Failed++
		} else {
			finalOutput.Stats.Successful++
		}
		if r.Request.WasSanitized() {
			finalOutput.Stats.Sanitized++
		}
		entries = append(entries, manifestEntry(r))
	}

	if cfg.OutputDir != "" {
		m := manifest.Build(entries, wordCounts, time.Now())
		path, err := manifest.Write(cfg.OutputDir, m, p.storage)
		if err != nil {
			log.Warn("failed to write manifest", zap.Error(err))
		} else {
			finalOutput.Manifest = path
		}
	}

	stats := &finalOutput.Stats
	switch {
	case stats.Failed == 0:
		finalOutput.Status = "success"
	case stats.Failed == stats.TotalURLs:
		finalOutput.Status = "failure"
	default:
		finalOutput.Status = "partial_failure"
	}
	stats.TotalTimeSeconds = time.Since(startTime).Seconds()

	if err := writeStructured(c.App.Writer, format, finalOutput); err != nil {
		return err
	}

	if stats.Failed == stats.TotalURLs {
		return cli.Exit("", 2)
	}
	if stats.Failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// QuickstartAction prints the cheat sheet.
func QuickstartAction(c *cli.Context) error {
	_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
	return err
}

func newLogger(c *cli.Context) *zap.Logger {
	w := c.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	return logger.New(w, c.String("log-level"), c.Bool("quiet"))
}

// loadConfig reads --config when given and lets explicitly set flags win.
func loadConfig(c *cli.Context) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("selector") || cfg.Extract.RootSelector == "" {
		cfg.Extract.RootSelector = c.String("selector")
	}
	if c.IsSet("require-text") {
		cfg.Extract.RequireText = c.Bool("require-text")
	}
	if c.IsSet("use-final-url") {
		cfg.Extract.UseFinalURL = c.Bool("use-final-url")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}
	if c.IsSet("tagger") {
		cfg.Tagger.Kind = c.String("tagger")
	}
	if c.IsSet("llm-provider") {
		cfg.Tagger.Provider = c.String("llm-provider")
	}
	if c.IsSet("llm-model") {
		cfg.Tagger.Model = c.String("llm-model")
	}
	if c.IsSet("llm-base-url") {
		cfg.Tagger.BaseURL = c.String("llm-base-url")
	}
	cfg.Tagger.APIKey = c.String("llm-api-key")
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}

func newPipeline(cfg *models.Config, log *zap.Logger) (*pipeline, error) {
	opts := []extractor.Option{extractor.WithLogger(log)}
	if cfg.DetectLanguage {
		opts = append(opts, extractor.WithLanguageDetector(detector.NewLanguageDetector()))
	}

	tg, err := tagger.New(cfg.Tagger, log)
	if err != nil {
		return nil, err
	}

	return &pipeline{
		logger:    log,
		extractor: extractor.NewFromConfig(cfg, opts...),
		tagger:    tg,
		analytics: &analytics.Analytics{},
		storage:   &storage.Storage{},
		outputDir: cfg.OutputDir,
	}, nil
}

func manifestEntry(r Result) manifest.Entry {
	e := manifest.Entry{URL: r.Request.URL, FilePath: r.FilePath, SizeBytes: r.SizeBytes}
	if r.Error != nil {
		e.Status = "error"
		e.ErrorKind = r.ErrorKind
		e.ErrorMessage = r.Error.Error()
		return e
	}
	e.Status = "success"
	if r.Clip != nil {
		e.Title = r.Clip.Title
		e.WordCount = r.Clip.WordCount
	}
	if r.WordCounts != nil {
		e.TopKeywords = analytics.TopN(r.WordCounts, 10)
	}
	return e
}

func writeStructured(w io.Writer, format string, v any) error {
	var (
		data []byte
		err  error
	)
	if format == "yaml" {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
	return err
}
