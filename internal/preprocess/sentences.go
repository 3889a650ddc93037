// Package preprocess turns raw course material into sentences and tokens.
package preprocess

import (
	"regexp"
	"strings"
	"unicode"
)

var blankLine = regexp.MustCompile(`\n[ \t\r]*\n`)

// words that end in a dot without ending the sentence, stored without the final dot
var abbreviations = map[string]struct{}{
	"dr": {}, "mr": {}, "mrs": {}, "ms": {}, "prof": {}, "sr": {}, "jr": {}, "st": {},
	"vs": {}, "etc": {}, "e.g": {}, "i.e": {}, "inc": {}, "ltd": {}, "co": {}, "mt": {},
	"no": {},
}

func isTerminator(r rune) bool { return r == '.' || r == '!' || r == '?' }

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '”', '’':
		return true
	}
	return false
}

// SplitSentences breaks text at sentence punctuation followed by whitespace and
// at blank lines. Dots inside numbers, URLs and e-mail addresses never split.
func SplitSentences(text string) []string {
	out := []string{}
	if strings.TrimSpace(text) == "" {
		return out
	}
	for _, para := range blankLine.Split(text, -1) {
		out = append(out, splitParagraph(para)...)
	}
	return out
}

func splitParagraph(para string) []string {
	var out []string
	runes := []rune(para)
	start := 0
	emit := func(end int) {
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			out = append(out, s)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		term := i
		j := i
		for j < len(runes) && isTerminator(runes[j]) {
			j++
		}
		for j < len(runes) && isCloser(runes[j]) {
			j++
		}
		if j < len(runes) && !unicode.IsSpace(runes[j]) {
			i = j - 1
			continue
		}
		if j-term == 1 && runes[term] == '.' && isAbbreviation(runes[start:term]) {
			i = j - 1
			continue
		}
		emit(j)
		i = j - 1
	}
	emit(len(runes))
	return out
}

// isAbbreviation looks at the word right before a single dot.
func isAbbreviation(before []rune) bool {
	k := len(before)
	for k > 0 && !unicode.IsSpace(before[k-1]) {
		k--
	}
	word := strings.TrimLeft(string(before[k:]), "([{\"'“‘")
	_, ok := abbreviations[strings.ToLower(word)]
	return ok
}
