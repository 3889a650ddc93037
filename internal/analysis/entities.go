package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"quizcraft/internal/domain"
	"quizcraft/internal/preprocess"
)

// Entity labels
const (
	LabelDate    = "DATE"
	LabelMoney   = "MONEY"
	LabelPercent = "PERCENT"
	LabelEmail   = "EMAIL"
	LabelURL     = "URL"
	LabelPerson  = "PERSON"
	LabelOrg     = "ORG"
	LabelGPE     = "GPE"
	LabelProduct = "PRODUCT"
)

const months = `January|February|March|April|May|June|July|August|September|October|November|December`

type pattern struct {
	label string
	re    *regexp.Regexp
}

// earlier patterns win when matches overlap
var patterns = []pattern{
	{LabelEmail, regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)},
	{LabelURL, regexp.MustCompile(`(?:https?://|www\.)[^\s<>"]+[^\s<>".,;:!?)\]]`)},
	{LabelMoney, regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?(?:\s(?:thousand|million|billion|trillion))?`)},
	{LabelPercent, regexp.MustCompile(`\d+(?:\.\d+)?(?:\s?%|\spercent\b)`)},
	{LabelDate, regexp.MustCompile(`\b(?:` + months + `)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b|\b(?:` + months + `)\s+\d{4}\b|\b[12]\d{3}\b`)},
	{LabelPerson, regexp.MustCompile(`\b(?:Dr|Mr|Mrs|Ms|Prof)\.?[ \t]+\p{Lu}\p{L}+(?:[ \t]+\p{Lu}\p{L}+)*`)},
}

var capitalized = regexp.MustCompile(`\p{Lu}[\p{L}\p{N}&'-]*(?:[ \t]+(?:of[ \t]+)?\p{Lu}[\p{L}\p{N}&'-]*)*`)

var orgSuffixes = map[string]struct{}{
	"Inc": {}, "Corp": {}, "Corporation": {}, "University": {}, "Institute": {},
	"Company": {}, "Ltd": {}, "LLC": {}, "Foundation": {}, "Association": {},
}

var knownOrgs = map[string]struct{}{
	"Google": {}, "Microsoft": {}, "Apple": {}, "Amazon": {}, "IBM": {}, "NASA": {},
	"OpenAI": {}, "Meta": {}, "Facebook": {}, "Intel": {}, "Nvidia": {}, "NVIDIA": {},
	"Tesla": {}, "Oracle": {}, "Netflix": {}, "Samsung": {}, "Sony": {}, "MIT": {},
	"Stanford": {}, "Harvard": {}, "United Nations": {}, "UNESCO": {},
	"European Union": {}, "FBI": {}, "NATO": {},
}

var knownPlaces = map[string]struct{}{
	"United States": {}, "USA": {}, "America": {}, "Canada": {}, "Mexico": {}, "Brazil": {},
	"Argentina": {}, "United Kingdom": {}, "UK": {}, "England": {}, "France": {},
	"Germany": {}, "Italy": {}, "Spain": {}, "Portugal": {}, "Netherlands": {},
	"Sweden": {}, "Norway": {}, "Poland": {}, "Russia": {}, "China": {}, "Japan": {},
	"Korea": {}, "South Korea": {}, "India": {}, "Pakistan": {}, "Egypt": {}, "Nigeria": {},
	"Kenya": {}, "South Africa": {}, "Australia": {}, "New Zealand": {}, "Europe": {},
	"Asia": {}, "Africa": {}, "London": {}, "Paris": {}, "Berlin": {}, "Rome": {},
	"Madrid": {}, "Tokyo": {}, "Seoul": {}, "Beijing": {}, "Shanghai": {}, "Delhi": {},
	"Mumbai": {}, "New York": {}, "Los Angeles": {}, "San Francisco": {}, "Chicago": {},
	"Boston": {}, "Seattle": {}, "Toronto": {}, "Sydney": {}, "Moscow": {}, "Cairo": {},
	"Washington": {}, "California": {}, "Texas": {},
}

var calendarWords = map[string]struct{}{
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {}, "Friday": {},
	"Saturday": {}, "Sunday": {},
}

func init() {
	for _, m := range strings.Split(months, "|") {
		calendarWords[m] = struct{}{}
	}
}

type match struct {
	start, end int
	entity     domain.Entity
}

// ExtractEntities finds named entities with pattern and gazetteer rules.
// Results are unique by text and ordered by first appearance.
func ExtractEntities(text string) []domain.Entity {
	var found []match
	overlaps := func(s, e int) bool {
		for _, m := range found {
			if s < m.end && e > m.start {
				return true
			}
		}
		return false
	}

	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			if overlaps(loc[0], loc[1]) {
				continue
			}
			found = append(found, match{loc[0], loc[1], domain.Entity{Text: text[loc[0]:loc[1]], Label: p.label}})
		}
	}

	for _, loc := range capitalized.FindAllStringIndex(text, -1) {
		if overlaps(loc[0], loc[1]) {
			continue
		}
		start, phrase := trimLeadingNoise(text[loc[0]:loc[1]])
		if phrase == "" {
			continue
		}
		s := loc[0] + start
		label, ok := classify(phrase, atSentenceStart(text, s))
		if !ok {
			continue
		}
		found = append(found, match{s, loc[1], domain.Entity{Text: phrase, Label: label}})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })

	seen := map[string]struct{}{}
	out := []domain.Entity{}
	for _, m := range found {
		if _, dup := seen[m.entity.Text]; dup {
			continue
		}
		seen[m.entity.Text] = struct{}{}
		out = append(out, m.entity)
	}
	return out
}

// trimLeadingNoise drops capitalized stopwords and calendar words from the
// front of a phrase ("The", "In", "Monday") and returns the new byte offset.
func trimLeadingNoise(phrase string) (int, string) {
	offset := 0
	for {
		fields := strings.Fields(phrase)
		if len(fields) == 0 {
			return offset, ""
		}
		first := fields[0]
		_, cal := calendarWords[first]
		if !cal && !preprocess.IsStopWord(strings.ToLower(first)) {
			return offset, phrase
		}
		cut := strings.Index(phrase, first) + len(first)
		rest := strings.TrimLeft(phrase[cut:], " \t")
		offset += len(phrase) - len(rest)
		phrase = rest
		if strings.HasPrefix(phrase, "of ") {
			return offset, ""
		}
	}
}

func classify(phrase string, sentenceStart bool) (string, bool) {
	words := strings.Fields(phrase)
	if _, ok := knownOrgs[phrase]; ok {
		return LabelOrg, true
	}
	if _, ok := knownPlaces[phrase]; ok {
		return LabelGPE, true
	}
	if _, ok := orgSuffixes[words[len(words)-1]]; ok || words[0] == "University" {
		return LabelOrg, true
	}
	for _, w := range words {
		if _, ok := calendarWords[w]; ok {
			return "", false
		}
	}
	switch {
	case len(words) >= 2 && len(words) <= 3:
		for _, w := range words {
			if _, ok := knownPlaces[w]; ok {
				return "", false
			}
			if _, ok := knownOrgs[w]; ok {
				return "", false
			}
		}
		return LabelPerson, true
	case len(words) > 3:
		return LabelOrg, true
	}

	if sentenceStart {
		return "", false
	}
	word := []rune(words[0])
	if len(word) >= 2 && isUpper(word) {
		return LabelOrg, true
	}
	return LabelProduct, true
}

func isUpper(word []rune) bool {
	for _, r := range word {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// atSentenceStart reports whether only whitespace separates pos from the start
// of text or from a sentence terminator.
func atSentenceStart(text string, pos int) bool {
	prev := strings.TrimRightFunc(text[:pos], unicode.IsSpace)
	if prev == "" {
		return true
	}
	switch prev[len(prev)-1] {
	case '.', '!', '?', '\n', ':', '"':
		return true
	}
	return strings.HasSuffix(text[:pos], "\n")
}
