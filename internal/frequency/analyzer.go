package frequency

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/nao1215/headline/internal/model"
)

// Analyzer computes word frequencies over a set of titles.
type Analyzer struct {
	stopWords map[string]struct{}
	minLength int
	folder    cases.Caser
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStopWords replaces the stop word set. Words are matched after
// case folding, so the set itself should be lowercase.
func WithStopWords(words []string) Option {
	return func(a *Analyzer) {
		a.stopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			a.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithMinWordLength sets the minimum token length in runes.
func WithMinWordLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.minLength = n
		}
	}
}

// NewAnalyzer creates an Analyzer. Without options it counts every
// token of at least one rune.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		stopWords: map[string]struct{}{},
		minLength: 1,
		folder:    cases.Fold(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze tokenizes the titles and returns the frequency table sorted
// by count descending, then word ascending. The tiebreak makes the
// output a pure function of the input multiset: title order never
// matters.
func (a *Analyzer) Analyze(titles []string) []model.WordCount {
	counts := make(map[string]int)

	for _, title := range titles {
		folded := a.folder.String(title)
		for _, token := range strings.FieldsFunc(folded, isSeparator) {
			if utf8.RuneCountInString(token) < a.minLength {
				continue
			}
			if _, stopped := a.stopWords[token]; stopped {
				continue
			}
			counts[token]++
		}
	}

	table := make([]model.WordCount, 0, len(counts))
	for word, count := range counts {
		table = append(table, model.WordCount{Word: word, Count: count})
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].Word < table[j].Word
	})

	return table
}

// isSeparator reports whether r splits tokens. Letters and digits
// belong to tokens; everything else separates them.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
