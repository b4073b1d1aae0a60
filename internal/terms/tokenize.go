package terms

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tokens are maximal runs of at least two word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// analyzer turns a document into its unigram and n-gram terms.
type analyzer struct {
	ngramMin  int
	ngramMax  int
	stopwords map[string]struct{}
}

func newAnalyzer(ngramMin, ngramMax int) *analyzer {
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	return &analyzer{ngramMin: ngramMin, ngramMax: ngramMax, stopwords: stopwords}
}

// tokenize lowercases text and returns its tokens with stop words removed.
func (a *analyzer) tokenize(text string) []string {
	lower := strings.ToLower(norm.NFC.String(text))
	raw := tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := a.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// analyze returns every n-gram of text for n in [ngramMin, ngramMax].
// N-grams span the stop-word-filtered token stream and are joined by a
// single space.
func (a *analyzer) analyze(text string) []string {
	tokens := a.tokenize(text)
	var out []string
	for n := a.ngramMin; n <= a.ngramMax && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
