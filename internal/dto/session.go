package dto

import "quizcraft/internal/domain"

// SessionResponse is the current quiz of a session.
// @Description Session state and rendered quiz
type SessionResponse struct {
	ID       string           `json:"id"`
	State    domain.QuizState `json:"state"`
	Markdown string           `json:"markdown"`
}

// GenerateQuizRequest selects the input and the shape of the quiz.
// @Description Request body for quiz generation
type GenerateQuizRequest struct {
	Format        string   `json:"format" example:"text"`
	Input         string   `json:"input,omitempty"`
	MaterialID    string   `json:"material_id,omitempty"`
	NumQuestions  int      `json:"num_questions" example:"5"`
	QuestionTypes []string `json:"question_types,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

// MarkdownResponse carries the rendered quiz view.
// @Description Rendered quiz markdown
type MarkdownResponse struct {
	Markdown string `json:"markdown"`
}

// ShuffleRequest optionally pins the shuffle seed.
type ShuffleRequest struct {
	Seed *int64 `json:"seed,omitempty"`
}

// QuestionsResponse lists questions.
// @Description A list of quiz questions
type QuestionsResponse struct {
	Questions []domain.Question `json:"questions"`
}
