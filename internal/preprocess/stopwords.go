package preprocess

import "sync"

var (
	stopWordsOnce sync.Once
	stopWords     map[string]struct{}
)

var stopWordList = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your", "yours",
	"yourself", "yourselves", "he", "him", "his", "himself", "she", "her", "hers", "herself",
	"it", "its", "itself", "they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "is", "are", "was", "were", "be",
	"been", "being", "have", "has", "had", "having", "do", "does", "did", "doing", "a", "an",
	"the", "and", "but", "if", "or", "because", "as", "until", "while", "of", "at", "by",
	"for", "with", "about", "against", "between", "into", "through", "during", "before",
	"after", "above", "below", "to", "from", "up", "down", "in", "out", "on", "off", "over",
	"under", "again", "further", "then", "once", "here", "there", "when", "where", "why",
	"how", "all", "any", "both", "each", "few", "more", "most", "other", "some", "such", "no",
	"nor", "not", "only", "own", "same", "so", "than", "too", "very", "s", "t", "can", "will",
	"just", "don", "don't", "should", "should've", "now", "d", "ll", "m", "o", "re", "ve", "y",
	"ain", "aren", "aren't", "couldn", "couldn't", "didn", "didn't", "doesn", "doesn't",
	"hadn", "hadn't", "hasn", "hasn't", "haven", "haven't", "isn", "isn't", "ma", "mightn",
	"mightn't", "mustn", "mustn't", "needn", "needn't", "shan", "shan't", "shouldn",
	"shouldn't", "wasn", "wasn't", "weren", "weren't", "won", "won't", "wouldn", "wouldn't",
	"also", "may", "might", "must", "would", "could", "shall", "it's", "you're", "we're",
	"they're", "i'm", "that's", "there's", "one", "many", "much", "every", "within", "without",
	"upon", "via", "among", "however", "therefore", "thus", "use", "used", "using",
}

// StopWords returns the shared English stopword set. Callers must not modify it.
func StopWords() map[string]struct{} {
	stopWordsOnce.Do(func() {
		stopWords = make(map[string]struct{}, len(stopWordList))
		for _, w := range stopWordList {
			stopWords[w] = struct{}{}
		}
	})
	return stopWords
}

// IsStopWord reports whether the lowercase token is a stopword.
func IsStopWord(token string) bool {
	_, ok := StopWords()[token]
	return ok
}
