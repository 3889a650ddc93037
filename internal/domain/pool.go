package domain

import (
	"encoding/json"
	"io"
	"math/rand"
	"sort"
	"time"
)

// DefaultTemplateFile is where pool settings are saved when no name is given.
const DefaultTemplateFile = "quiz_template.json"

// Pool is a named group of interchangeable questions covering one topic
type Pool struct {
	ID           string    `json:"id"`
	InstructorID string    `json:"instructor_id,omitempty"`
	Topic        string    `json:"topic"`
	Questions    []string  `json:"questions"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Pools maps a topic to its question texts.
type Pools map[string][]string

// PoolSettings maps a topic to how many questions to draw from it.
type PoolSettings map[string]int

// PoolsFrom indexes a pool list by topic. An empty pool maps to an empty,
// non-nil slice.
func PoolsFrom(list []*Pool) Pools {
	out := make(Pools, len(list))
	for _, p := range list {
		if _, ok := out[p.Topic]; !ok {
			out[p.Topic] = []string{}
		}
		out[p.Topic] = append(out[p.Topic], p.Questions...)
	}
	return out
}

// GenerateFromPools draws settings[topic] questions from every pool without
// replacement. Topics are visited in sorted order so a seeded rng is reproducible.
// A topic missing from settings contributes nothing.
func GenerateFromPools(pools Pools, settings PoolSettings, rng *rand.Rand) ([]string, error) {
	topics := make([]string, 0, len(pools))
	for topic := range pools {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var quiz []string
	for _, topic := range topics {
		k := settings[topic]
		if k == 0 {
			continue
		}
		pool := pools[topic]
		if k < 0 {
			return nil, NewError(CodeOutOfRange, "question count must not be negative", nil).
				WithContext("topic", topic)
		}
		if k > len(pool) {
			return nil, NewPoolTooSmallError(topic, k, len(pool))
		}
		for _, idx := range rng.Perm(len(pool))[:k] {
			quiz = append(quiz, pool[idx])
		}
	}
	return quiz, nil
}

// SaveTemplate writes settings as JSON indented with four spaces.
func SaveTemplate(w io.Writer, settings PoolSettings) error {
	if settings == nil {
		settings = PoolSettings{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(settings)
}

// LoadTemplate reads settings written by SaveTemplate.
func LoadTemplate(r io.Reader) (PoolSettings, error) {
	var settings PoolSettings
	if err := json.NewDecoder(r).Decode(&settings); err != nil {
		return nil, err
	}
	return settings, nil
}
