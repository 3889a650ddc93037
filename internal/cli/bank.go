package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"quizcraft/internal/domain"
)

func loadBank(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	var bank []domain.Question
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	return bank, nil
}
