package service

import (
	"context"

	"github.com/samber/lo"

	"quizcraft/internal/domain"
)

// TagService filters and scores questions by tag and keeps tag templates.
type TagService interface {
	Filter(questions []domain.Question, tags []string) []domain.Question
	Scores(questions []domain.Question, answers []int) (map[string]domain.TagScore, string)
	SaveTemplate(ctx context.Context, instructorID, name string, tags []string) (*domain.TagTemplate, error)
	ListTemplates(ctx context.Context, instructorID string) ([]*domain.TagTemplate, error)
}

type tagService struct {
	repo domain.TagTemplateRepository
}

func NewTagService(repo domain.TagTemplateRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) Filter(questions []domain.Question, tags []string) []domain.Question {
	return domain.FilterByTag(questions, tags)
}

// Scores returns the per-tag scores together with the printable report.
func (s *tagService) Scores(questions []domain.Question, answers []int) (map[string]domain.TagScore, string) {
	scores := domain.CalculateTagScores(questions, answers)
	return scores, domain.TagReport(scores)
}

func (s *tagService) SaveTemplate(ctx context.Context, instructorID, name string, tags []string) (*domain.TagTemplate, error) {
	t := &domain.TagTemplate{
		InstructorID: instructorID,
		Name:         name,
		SelectedTags: lo.Uniq(tags),
	}
	if err := s.repo.SaveTagTemplate(ctx, t); err != nil {
		return nil, domain.NewInternalError("failed to save tag template", err)
	}
	return t, nil
}

func (s *tagService) ListTemplates(ctx context.Context, instructorID string) ([]*domain.TagTemplate, error) {
	templates, err := s.repo.ListTagTemplates(ctx, instructorID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list tag templates", err)
	}
	if templates == nil {
		templates = []*domain.TagTemplate{}
	}
	return templates, nil
}
