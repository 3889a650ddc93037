package analysis

import (
	"math/rand"
	"sort"
)

const (
	ldaAlpha      = 0.1
	ldaBeta       = 0.01
	ldaIterations = 200
	ldaSeed       = 42
	topicWords    = 5
)

// ExtractTopics fits an LDA model with collapsed Gibbs sampling, treating each
// sentence as a document, and returns the top words of every topic. The seed is
// fixed so the same text always yields the same topics.
func ExtractTopics(text string, nTopics int) [][]string {
	docs := documents(text)
	if nTopics <= 0 || len(docs) < 2 {
		return [][]string{}
	}

	vocab := map[string]int{}
	var words []string
	for _, doc := range docs {
		for _, term := range doc {
			if _, ok := vocab[term]; !ok {
				vocab[term] = 0
				words = append(words, term)
			}
		}
	}
	if len(words) == 0 {
		return [][]string{}
	}
	sort.Strings(words)
	for i, w := range words {
		vocab[w] = i
	}
	v := len(words)

	rng := rand.New(rand.NewSource(ldaSeed))
	docWords := make([][]int, len(docs))
	assign := make([][]int, len(docs))
	docTopic := make([][]int, len(docs))
	topicWord := make([][]int, nTopics)
	topicTotal := make([]int, nTopics)
	for k := range topicWord {
		topicWord[k] = make([]int, v)
	}

	for d, doc := range docs {
		docWords[d] = make([]int, len(doc))
		assign[d] = make([]int, len(doc))
		docTopic[d] = make([]int, nTopics)
		for i, term := range doc {
			w := vocab[term]
			k := rng.Intn(nTopics)
			docWords[d][i] = w
			assign[d][i] = k
			docTopic[d][k]++
			topicWord[k][w]++
			topicTotal[k]++
		}
	}

	probs := make([]float64, nTopics)
	vBeta := float64(v) * ldaBeta
	for iter := 0; iter < ldaIterations; iter++ {
		for d := range docWords {
			for i, w := range docWords[d] {
				k := assign[d][i]
				docTopic[d][k]--
				topicWord[k][w]--
				topicTotal[k]--

				var sum float64
				for t := 0; t < nTopics; t++ {
					p := (float64(docTopic[d][t]) + ldaAlpha) *
						(float64(topicWord[t][w]) + ldaBeta) /
						(float64(topicTotal[t]) + vBeta)
					sum += p
					probs[t] = sum
				}
				u := rng.Float64() * sum
				k = sort.SearchFloat64s(probs, u)
				if k >= nTopics {
					k = nTopics - 1
				}

				assign[d][i] = k
				docTopic[d][k]++
				topicWord[k][w]++
				topicTotal[k]++
			}
		}
	}

	topics := make([][]string, 0, nTopics)
	for k := 0; k < nTopics; k++ {
		idx := make([]int, 0, v)
		for w := 0; w < v; w++ {
			if topicWord[k][w] > 0 {
				idx = append(idx, w)
			}
		}
		if len(idx) == 0 {
			continue
		}
		sort.SliceStable(idx, func(i, j int) bool {
			return topicWord[k][idx[i]] > topicWord[k][idx[j]]
		})
		if len(idx) > topicWords {
			idx = idx[:topicWords]
		}
		top := make([]string, len(idx))
		for i, w := range idx {
			top[i] = words[w]
		}
		topics = append(topics, top)
	}
	return topics
}
