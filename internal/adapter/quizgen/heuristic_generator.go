package quizgen

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"quizcraft/internal/analysis"
	"quizcraft/internal/domain"
	"quizcraft/internal/preprocess"
	"quizcraft/internal/util"
)

const (
	blank           = "_____"
	keywordPoolSize = 30
	maxTagKeywords  = 3
	easyMaxWords    = 15
	hardMinWords    = 25
	multipleChoiceN = 4
	trueFalseTrue   = "True"
	trueFalseFalse  = "False"
)

var stockDistractors = []string{"None of the above", "All of the above", "Not stated in the text"}

// HeuristicGenerator builds questions from keyword-bearing sentences without any model.
type HeuristicGenerator struct {
	logger *zap.Logger
}

// NewHeuristicGenerator creates the offline generator.
func NewHeuristicGenerator(logger *zap.Logger) *HeuristicGenerator {
	return &HeuristicGenerator{logger: logger}
}

type candidate struct {
	sentence   string
	keyword    string
	rank       int
	difficulty domain.Difficulty
}

// Generate implements domain.QuestionGenerator.
func (g *HeuristicGenerator) Generate(ctx context.Context, req domain.GenerateRequest) ([]domain.Question, error) {
	text := preprocess.Clean(req.SourceText)
	if text == "" || req.NumQuestions <= 0 {
		return []domain.Question{}, nil
	}

	ranked := analysis.ScoreKeywords(text)
	if len(ranked) > keywordPoolSize {
		ranked = ranked[:keywordPoolSize]
	}
	keywords := lo.Map(ranked, func(k analysis.Keyword, _ int) string { return k.Term })
	if len(keywords) == 0 {
		return []domain.Question{}, nil
	}

	candidates := pickCandidates(preprocess.SplitSentences(text), keywords)
	if req.Difficulty != "" {
		candidates = lo.Filter(candidates, func(c candidate, _ int) bool { return c.difficulty == req.Difficulty })
	}
	if len(candidates) > req.NumQuestions {
		candidates = candidates[:req.NumQuestions]
	}

	types := req.QuestionTypes
	if len(types) == 0 {
		types = domain.DefaultQuestionTypes
	}

	entityTexts := lo.Map(analysis.ExtractEntities(text), func(e domain.Entity, _ int) string { return e.Text })
	topics := analysis.ExtractTopics(text, analysis.DefaultTopics)
	rng := rand.New(rand.NewSource(req.Seed))

	questions := make([]domain.Question, 0, len(candidates))
	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		qType := types[i%len(types)]
		q := g.build(qType, c, keywords, entityTexts, rng, (req.Seed+int64(i))%2 == 0)
		q.ID = util.NewULID()
		q.Difficulty = c.difficulty
		q.SourceSentence = c.sentence
		q.Tags = tagsFor(c, keywords, topics)
		questions = append(questions, q)
	}

	g.logger.Debug("generated heuristic questions",
		zap.Int("requested", req.NumQuestions),
		zap.Int("generated", len(questions)))
	return questions, nil
}

// pickCandidates keeps one sentence per keyword, preferring higher ranked
// keywords, and orders the result by keyword rank.
func pickCandidates(sentences []string, keywords []string) []candidate {
	rank := make(map[string]int, len(keywords))
	for i, k := range keywords {
		rank[k] = i
	}

	used := map[string]bool{}
	var out []candidate
	for _, s := range sentences {
		tokens := preprocess.Tokenize(s)
		best := -1
		for _, tok := range tokens {
			r, ok := rank[tok]
			if !ok || used[tok] {
				continue
			}
			if best == -1 || r < best {
				best = r
			}
		}
		if best == -1 {
			continue
		}
		kw := keywords[best]
		used[kw] = true
		out = append(out, candidate{
			sentence:   s,
			keyword:    kw,
			rank:       best,
			difficulty: difficultyFor(best, len(keywords), len(tokens)),
		})
	}

	// stable insertion sort by rank keeps sentence order for equal ranks
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].rank < out[j-1].rank; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func difficultyFor(rank, total, words int) domain.Difficulty {
	third := total / 3
	switch {
	case rank < third && words <= easyMaxWords:
		return domain.DifficultyEasy
	case rank >= total-third || words > hardMinWords:
		return domain.DifficultyHard
	default:
		return domain.DifficultyMedium
	}
}

func (g *HeuristicGenerator) build(qType domain.QuestionType, c candidate, keywords, entities []string, rng *rand.Rand, truth bool) domain.Question {
	switch qType {
	case domain.QuestionTypeFillBlank:
		return domain.Question{
			Type:     qType,
			Question: replaceWord(c.sentence, c.keyword, blank),
			Answer:   c.keyword,
		}
	case domain.QuestionTypeMultipleChoice, domain.QuestionTypeMCQ:
		options := append([]string{c.keyword}, distractors(c.keyword, keywords, entities, rng)...)
		rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
		return domain.Question{
			Type:         qType,
			Question:     replaceWord(c.sentence, c.keyword, blank),
			Answer:       c.keyword,
			Options:      options,
			CorrectIndex: domain.IntPtr(lo.IndexOf(options, c.keyword)),
		}
	case domain.QuestionTypeTrueFalse, domain.QuestionTypeTF:
		statement := c.sentence
		answer := trueFalseTrue
		if !truth {
			if swap, ok := swapKeyword(c, keywords); ok {
				statement = swap
				answer = trueFalseFalse
			}
		}
		idx := 0
		if answer == trueFalseFalse {
			idx = 1
		}
		return domain.Question{
			Type:         qType,
			Question:     "True or False: " + statement,
			Answer:       answer,
			Options:      []string{trueFalseTrue, trueFalseFalse},
			CorrectIndex: domain.IntPtr(idx),
		}
	case domain.QuestionTypeTopic:
		return domain.Question{
			Type:     qType,
			Question: "Which key term is this statement about? " + replaceWord(c.sentence, c.keyword, blank),
			Answer:   c.keyword,
		}
	default:
		return domain.Question{
			Type:     qType,
			Question: shortAnswerPrompt(c),
			Answer:   c.sentence,
		}
	}
}

func distractors(answer string, keywords, entities []string, rng *rand.Rand) []string {
	pool := lo.Filter(keywords, func(k string, _ int) bool { return k != answer })
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	need := multipleChoiceN - 1
	out := make([]string, 0, need)
	for _, src := range [][]string{pool, entities, stockDistractors} {
		for _, d := range src {
			if len(out) == need {
				return out
			}
			if strings.EqualFold(d, answer) || lo.Contains(out, d) {
				continue
			}
			out = append(out, d)
		}
	}
	return out
}

// swapKeyword replaces the candidate keyword with another keyword the sentence
// does not already contain.
func swapKeyword(c candidate, keywords []string) (string, bool) {
	present := lo.Uniq(preprocess.Tokenize(c.sentence))
	for _, k := range keywords {
		if k == c.keyword || lo.Contains(present, k) {
			continue
		}
		return replaceWord(c.sentence, c.keyword, k), true
	}
	return "", false
}

var definitional = regexp.MustCompile(`(?i)^(.+?)\s+(is|are|refers to|means)\s+(.+)$`)

func shortAnswerPrompt(c candidate) string {
	if m := definitional.FindStringSubmatch(c.sentence); m != nil {
		subject := strings.TrimSpace(m[1])
		if lo.Contains(preprocess.Tokenize(subject), c.keyword) {
			verb := "is"
			if strings.EqualFold(m[2], "are") {
				verb = "are"
			}
			return fmt.Sprintf("What %s %s?", verb, subject)
		}
	}
	return fmt.Sprintf("Explain the role of %q in: %s", c.keyword, c.sentence)
}

func tagsFor(c candidate, keywords []string, topics [][]string) []string {
	present := preprocess.Tokenize(c.sentence)
	var tags []string
	for _, k := range keywords {
		if len(tags) == maxTagKeywords {
			break
		}
		if lo.Contains(present, k) {
			tags = append(tags, k)
		}
	}
	for _, words := range topics {
		if lo.Contains(words, c.keyword) && len(words) > 0 {
			tags = append(tags, "topic:"+words[0])
			break
		}
	}
	return lo.Uniq(tags)
}

// replaceWord swaps the first whole-word, case-insensitive occurrence of word.
// Word boundaries are checked on runes so non-ASCII words are matched too.
func replaceWord(sentence, word, with string) string {
	if word == "" {
		return sentence
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
	for _, loc := range re.FindAllStringIndex(sentence, -1) {
		before, _ := utf8.DecodeLastRuneInString(sentence[:loc[0]])
		after, _ := utf8.DecodeRuneInString(sentence[loc[1]:])
		if isWordRune(before) || isWordRune(after) {
			continue
		}
		return sentence[:loc[0]] + with + sentence[loc[1]:]
	}
	return sentence
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}
