package textfile

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/datapeek/datapeek/pkg/source"
)

// WordCount is one entry in a word frequency report.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopWords streams the file at path and returns the n most frequent
// words. Words are lowercased and stripped of surrounding punctuation
// before counting, so "Data," and "data" tally together. Ties are
// broken alphabetically for stable output. n <= 0 returns all words.
func TopWords(path string, n int) ([]WordCount, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	counts := make(map[string]int)
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), MaxLineBytes)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		word := normalizeWord(sc.Text())
		if word == "" {
			continue
		}
		counts[word]++
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return nil, err
	}

	result := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		result = append(result, WordCount{Word: word, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Word < result[j].Word
	})

	if n > 0 && n < len(result) {
		result = result[:n]
	}
	return result, nil
}

// normalizeWord lowercases and trims punctuation from both ends.
// Inner punctuation survives, so contractions stay whole.
func normalizeWord(w string) string {
	return strings.TrimFunc(strings.ToLower(w), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
