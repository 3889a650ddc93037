package preprocess

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	htmlTag        = regexp.MustCompile(`<[^>]+>`)
	horizontalRuns = regexp.MustCompile(`[ \t\f\v]+`)
	newlineRuns    = regexp.MustCompile(`\n{3,}`)
	spaceAroundNL  = regexp.MustCompile(` *\n *`)
)

// Tokenize lowercases a sentence and returns its words. Apostrophes are kept
// only between letters, so "don't" stays whole and "'quoted'" loses its quotes.
func Tokenize(sentence string) []string {
	runes := []rune(strings.ToLower(sentence))
	var tokens []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur = append(cur, r)
		case (r == '\'' || r == '’') && len(cur) > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			cur = append(cur, '\'')
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// RemoveStopWords drops stopwords, keeping order.
func RemoveStopWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !IsStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}

// ContentWords splits text into sentences and returns the non-stopword tokens of each.
func ContentWords(text string) [][]string {
	sentences := SplitSentences(text)
	out := make([][]string, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, RemoveStopWords(Tokenize(s)))
	}
	return out
}

// Normalize drops invalid UTF-8 and NUL bytes, collapses spaces and tabs,
// limits blank lines to one and trims the result.
func Normalize(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = horizontalRuns.ReplaceAllString(text, " ")
	text = spaceAroundNL.ReplaceAllString(text, "\n")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Clean strips HTML-like tags before normalizing.
func Clean(text string) string {
	return Normalize(htmlTag.ReplaceAllString(text, " "))
}
