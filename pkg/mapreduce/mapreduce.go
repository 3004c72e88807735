// Package mapreduce aggregates keyword counts across a batch of clips.
package mapreduce

import "github.com/dtnitsch/snap-clipper/pkg/analytics"

// Map generates a word frequency map for a single clip's text.
func Map(text string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(text)
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
