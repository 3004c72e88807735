// Package analytics computes word statistics over clipped text.
package analytics

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// WordsPerMinute is the reading speed used for EstimatedReadMinutes.
const WordsPerMinute = 200

type Analytics struct{}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

// WordCount counts whitespace separated tokens that contain at least one letter or digit.
func (a *Analytics) WordCount(text string) int {
	n := 0
	for _, tok := range strings.Fields(text) {
		if strings.IndexFunc(tok, isWordRune) >= 0 {
			n++
		}
	}
	return n
}

// EstimatedReadMinutes rounds up to a tenth of a minute. Zero words read in zero minutes.
func EstimatedReadMinutes(words int) float64 {
	if words <= 0 {
		return 0
	}
	return math.Ceil(float64(words)/WordsPerMinute*10) / 10
}

// WordFrequency counts lowercased keywords in text, skipping stopwords.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		// trim punctuation, keep inner apostrophes and hyphens
		word = strings.TrimFunc(word, func(r rune) bool { return !isWordRune(r) })
		if word == "" {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		frequencies[word]++
	}

	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

// TopNWords returns the n most frequent keywords. Ties sort alphabetically.
func (a *Analytics) TopNWords(text string, n int) []string {
	return TopN(a.WordFrequency(text), n)
}

// TopN ranks a frequency map by count, then alphabetically.
func TopN(frequencies map[string]int, n int) []string {
	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := min(n, len(counts))
	if limit < 0 {
		limit = 0
	}
	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}
	return topN
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
