// Package analysis scores words and finds entities and topics in source text.
package analysis

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"quizcraft/internal/preprocess"
)

// Keyword is a term with its summed TF-IDF weight.
type Keyword struct {
	Term  string
	Score float64
}

// documents splits text into sentences and keeps the indexable terms of each.
func documents(text string) [][]string {
	var docs [][]string
	for _, sentence := range preprocess.SplitSentences(preprocess.Clean(text)) {
		terms := lo.Filter(preprocess.Tokenize(sentence), func(tok string, _ int) bool {
			return isTerm(tok)
		})
		if len(terms) > 0 {
			docs = append(docs, terms)
		}
	}
	return docs
}

func isTerm(tok string) bool {
	if utf8.RuneCountInString(tok) < 3 || preprocess.IsStopWord(tok) {
		return false
	}
	return strings.IndexFunc(tok, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0
}

// ScoreKeywords ranks every term by the sum over sentences of tf*idf, where
// idf = ln((1+N)/(1+df)) + 1. Equal scores sort alphabetically.
func ScoreKeywords(text string) []Keyword {
	docs := documents(text)
	if len(docs) == 0 {
		return []Keyword{}
	}

	df := map[string]int{}
	for _, doc := range docs {
		for _, term := range lo.Uniq(doc) {
			df[term]++
		}
	}

	n := float64(len(docs))
	scores := map[string]float64{}
	for _, doc := range docs {
		counts := lo.CountValues(doc)
		for term, c := range counts {
			tf := float64(c) / float64(len(doc))
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			scores[term] += tf * idf
		}
	}

	out := make([]Keyword, 0, len(scores))
	for term, s := range scores {
		out = append(out, Keyword{Term: term, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// ExtractKeywords returns the topN highest scoring terms.
func ExtractKeywords(text string, topN int) []string {
	if topN <= 0 {
		return []string{}
	}
	ranked := ScoreKeywords(text)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return lo.Map(ranked, func(k Keyword, _ int) string { return k.Term })
}
