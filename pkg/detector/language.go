// Package detector guesses the natural language of clipped text.
package detector

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// MinTextLength is the shortest text, in runes, worth running detection on.
const MinTextLength = 20

// maxSampleRunes caps how much text is handed to the detector.
const maxSampleRunes = 4000

var supportedLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Russian,
	lingua.Chinese,
	lingua.Japanese,
	lingua.Korean,
	lingua.Arabic,
}

// LanguageDetector wraps a lingua detector that is built on first use.
// Safe for concurrent use.
type LanguageDetector struct {
	languages []lingua.Language
	once      sync.Once
	detector  lingua.LanguageDetector
}

// NewLanguageDetector returns a detector over the given languages, or a fixed
// set of common ones when none are given.
func NewLanguageDetector(languages ...lingua.Language) *LanguageDetector {
	if len(languages) < 2 {
		languages = supportedLanguages
	}
	return &LanguageDetector{languages: languages}
}

func (d *LanguageDetector) build() {
	d.detector = lingua.NewLanguageDetectorBuilder().
		FromLanguages(d.languages...).
		WithLowAccuracyMode().
		Build()
}

// Detect returns the ISO 639-1 code of the most likely language and its
// confidence in [0,1]. ok is false for short or undecidable text.
func (d *LanguageDetector) Detect(text string) (code string, confidence float64, ok bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinTextLength {
		return "", 0, false
	}
	text = truncateRunes(text, maxSampleRunes)

	d.once.Do(d.build)
	lang, exists := d.detector.DetectLanguageOf(text)
	if !exists {
		return "", 0, false
	}
	confidence = d.detector.ComputeLanguageConfidence(text, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence, true
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
