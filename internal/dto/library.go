package dto

import "quizcraft/internal/domain"

// SavePoolRequest stores the questions of one topic.
// @Description Request body for saving a question pool
type SavePoolRequest struct {
	Topic     string   `json:"topic"`
	Questions []string `json:"questions"`
}

// PoolQuizRequest draws a quiz from stored pools.
// @Description Request body for drawing a quiz from pools
type PoolQuizRequest struct {
	Settings domain.PoolSettings `json:"settings"`
	Seed     *int64              `json:"seed,omitempty"`
}

// PoolQuizResponse lists drawn questions.
type PoolQuizResponse struct {
	Questions []string `json:"questions"`
}

// PoolTemplateRequest stores pool settings as a reusable template.
type PoolTemplateRequest struct {
	Name     string              `json:"name,omitempty"`
	Settings domain.PoolSettings `json:"settings"`
}

// TagFilterRequest filters a question bank by tags.
// @Description Request body for tag filtering
type TagFilterRequest struct {
	Questions []domain.Question `json:"questions"`
	Tags      []string          `json:"tags"`
}

// TagScoresRequest scores answers per tag.
// @Description Request body for tag scoring
type TagScoresRequest struct {
	Questions []domain.Question `json:"questions"`
	Answers   []int             `json:"answers"`
}

// TagScoresResponse has the per-tag scores and the printable report.
type TagScoresResponse struct {
	Scores map[string]domain.TagScore `json:"scores"`
	Report string                     `json:"report"`
}

// TagTemplateRequest saves a tag selection.
type TagTemplateRequest struct {
	Name         string   `json:"name,omitempty"`
	SelectedTags []string `json:"selected_tags"`
}

// SaveQuizRequest persists the quiz of a session under a title.
// @Description Request body for saving a session quiz
type SaveQuizRequest struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
}
