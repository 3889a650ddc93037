package domain

// FilterByDifficulty returns at most n questions whose difficulty equals level,
// in their original order. n <= 0 means no limit.
func FilterByDifficulty(questions []Question, level string, n int) ([]Question, error) {
	d, err := ParseDifficulty(level)
	if err != nil {
		return nil, err
	}
	out := []Question{}
	for _, q := range questions {
		if n > 0 && len(out) == n {
			break
		}
		if q.Difficulty == d {
			out = append(out, q.Clone())
		}
	}
	return out, nil
}
