package help

const QuickstartYAML = `# snapclip Quick Start

pipeline:
  - "validate URL (http/https only, nothing fetched when invalid)"
  - "fetch page (single GET, redirects followed, 30s timeout)"
  - "readability: keep the main article, drop nav/ads/sidebars"
  - "flatten to one line of plain text, segments joined by single spaces"

commands:
  clean_text: |
    snapclip clean https://example.com/article

  clean_record: |
    snapclip clean --format yaml --detect-language https://example.com/article

  custom_root: |
    snapclip clean --selector "article" --require-text https://example.com/article

  suggest_tags: |
    snapclip clean --format json --tagger keywords https://example.com/article
    OPENAI_API_KEY=... snapclip clean --format json --tagger llm https://example.com/article
    SNAPCLIP_LLM_API_KEY=... snapclip clean --tagger llm --llm-provider anthropic https://example.com/article
    SNAPCLIP_LLM_API_KEY=... snapclip clean --tagger llm --llm-provider gemini https://example.com/article

  batch: |
    snapclip batch --urls "https://a.example,https://b.example" --workers 4
    snapclip batch --config clips.yaml --output-dir clips/

errors:
  invalid_url: "URL failed validation, nothing was fetched"
  fetch_failed: "network error, timeout or non-2xx status"
  decode_failed: "body is binary or in an unknown charset"
  extraction_failed: "no readable main content (or empty text with --require-text)"

environment:
  - "SNAPCLIP_LOG_LEVEL: debug, info, warn, error"
  - "SNAPCLIP_LLM_PROVIDER: openai (default), anthropic or gemini"
  - "SNAPCLIP_LLM_API_KEY (or OPENAI_API_KEY) / OPENAI_BASE_URL / SNAPCLIP_LLM_MODEL: llm tagger"

llm_providers:
  openai: "api.openai.com, default model gpt-4-turbo"
  anthropic: "https://api.anthropic.com/v1/ (OpenAI-compatible), default model claude-3-opus-20240229"
  gemini: "https://generativelanguage.googleapis.com/v1beta/openai/ (OpenAI-compatible), default model gemini-1.5-pro"
  override: "--llm-base-url and --llm-model win over the provider defaults"
  - "a .env file in the working directory is loaded first"

exit_codes:
  "0": "success"
  "1": "error, or some batch URLs failed"
  "2": "every batch URL failed"
`
