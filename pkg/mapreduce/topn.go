package mapreduce

import (
	"fmt"
	"sort"
	"strings"
)

// Keyword is one aggregated keyword and its count across the batch.
type Keyword struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

func (k Keyword) String() string {
	return fmt.Sprintf("%s:%d", k.Word, k.Count)
}

// isValidKeyword drops obviously broken tokens: trailing ":" or "=", unmatched
// brackets or quotes. Technical terms like x_train are kept.
func isValidKeyword(word string) bool {
	if strings.HasSuffix(word, ":") || strings.HasSuffix(word, "=") {
		return false
	}
	pairs := [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}}
	for _, p := range pairs {
		if strings.Contains(word, p[0]) && !strings.Contains(word, p[1]) {
			return false
		}
	}
	return strings.Count(word, "\"")%2 == 0 && strings.Count(word, "'")%2 == 0
}

// TopKeywords returns the n most frequent valid keywords, highest count first,
// ties broken alphabetically.
func TopKeywords(wordCounts map[string]int, n int) []Keyword {
	var ranked []Keyword
	for k, v := range wordCounts {
		if isValidKeyword(k) {
			ranked = append(ranked, Keyword{Word: k, Count: v})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
