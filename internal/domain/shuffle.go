package domain

import "math/rand"

// ShuffleQuestions returns the questions in a new random order. The input slice
// and its questions are left untouched.
func ShuffleQuestions(questions []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ShuffleAnswers returns a copy of q with its options permuted. The answer text
// is unchanged and CorrectIndex follows the correct option to its new slot.
func ShuffleAnswers(q Question, rng *rand.Rand) Question {
	c := q.Clone()
	if len(c.Options) < 2 {
		return c
	}
	correct := q.CorrectOption()
	perm := rng.Perm(len(c.Options))
	shuffled := make([]string, len(c.Options))
	for newPos, oldPos := range perm {
		shuffled[newPos] = q.Options[oldPos]
		if oldPos == correct {
			c.CorrectIndex = IntPtr(newPos)
		}
	}
	c.Options = shuffled
	return c
}

// ShuffleQuiz shuffles question order and, independently, every question's options.
func ShuffleQuiz(questions []Question, rng *rand.Rand) []Question {
	out := ShuffleQuestions(questions, rng)
	for i := range out {
		out[i] = ShuffleAnswers(out[i], rng)
	}
	return out
}
