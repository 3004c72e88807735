package clean

import (
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/snap-clipper/models"
)

// GlobalFlags apply to every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "log level: debug, info, warn, error",
			EnvVars: []string{"SNAPCLIP_LOG_LEVEL"},
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log errors",
		},
	}
}

// extractionFlags are shared by clean and batch.
func extractionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file; flags override its values",
			EnvVars: []string{"SNAPCLIP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "selector",
			Value: models.DefaultRootSelector,
			Usage: "CSS selector for the root whose text is kept",
		},
		&cli.BoolFlag{
			Name:  "require-text",
			Usage: "fail when the selector matches nothing or only whitespace",
		},
		&cli.BoolFlag{
			Name:  "use-final-url",
			Usage: "resolve relative links against the post-redirect URL",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Value:   models.DefaultTimeout,
			Usage:   "upper bound on each page fetch",
			EnvVars: []string{"SNAPCLIP_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "user-agent",
			Value:   models.DefaultUserAgent,
			Usage:   "User-Agent header sent with each request",
			EnvVars: []string{"SNAPCLIP_USER_AGENT"},
		},
		&cli.BoolFlag{
			Name:  "detect-language",
			Usage: "guess the language of the extracted text",
		},
		&cli.StringFlag{
			Name:  "tagger",
			Value: "none",
			Usage: "snap suggestion: none, keywords, llm",
		},
		&cli.StringFlag{
			Name:    "llm-provider",
			Value:   "openai",
			Usage:   "llm tagger backend: openai, anthropic, gemini",
			EnvVars: []string{"SNAPCLIP_LLM_PROVIDER"},
		},
		&cli.StringFlag{
			Name:    "llm-model",
			Usage:   "chat model used by the llm tagger (default depends on --llm-provider)",
			EnvVars: []string{"SNAPCLIP_LLM_MODEL"},
		},
		&cli.StringFlag{
			Name:    "llm-base-url",
			Usage:   "OpenAI-compatible endpoint for the llm tagger",
			EnvVars: []string{"OPENAI_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "llm-api-key",
			Usage:   "API key for the llm tagger",
			EnvVars: []string{"SNAPCLIP_LLM_API_KEY", "OPENAI_API_KEY"},
		},
	}
}

// Commands returns the snapclip command set.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "clean",
			Usage:     "Extract the clean plain text of one URL",
			ArgsUsage: "URL",
			Flags: append(extractionFlags(),
				&cli.StringFlag{
					Name:  "format",
					Value: "text",
					Usage: "output format: text, json, yaml",
				},
			),
			Action: CleanAction,
		},
		{
			Name:  "batch",
			Usage: "Extract many URLs concurrently",
			Flags: append(extractionFlags(),
				&cli.StringFlag{
					Name:  "urls",
					Usage: "comma separated list of URLs",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: models.DefaultWorkerCount,
					Usage: "number of concurrent workers",
				},
				&cli.StringFlag{
					Name:  "output-dir",
					Usage: "write one YAML file per clip plus summary.yaml here",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: "json",
					Usage: "output format: json, yaml",
				},
				&cli.BoolFlag{
					Name:  "include-text",
					Usage: "include the extracted text in the printed results",
				},
			),
			Action: BatchAction,
		},
		{
			Name:   "quickstart",
			Usage:  "Print a YAML cheat sheet",
			Action: QuickstartAction,
		},
	}
}

// NewApp assembles the snapclip application.
func NewApp() *cli.App {
	return &cli.App{
		Name:     "snapclip",
		Usage:    "Turn web pages into clean plain-text snaps",
		Flags:    GlobalFlags(),
		Commands: Commands(),
	}
}
