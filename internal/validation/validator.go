package validation

import (
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/util"
)

const (
	MaxQuestions   = 50
	maxTitleLength = 255
	maxTopicLength = 255
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID requires a ULID.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}
	return errors
}

// ValidateGenerateRequest checks the request shape. Empty text is not an error
// here; generation answers it with a prompt for input.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	switch domain.SourceFormat(req.Format) {
	case domain.SourceText, domain.SourceFile:
	case domain.SourceMaterial:
		if strings.TrimSpace(req.MaterialID) == "" {
			errors = append(errors, domain.NewMissingFieldError("material_id"))
		} else if !util.IsULID(req.MaterialID) {
			errors = append(errors, domain.NewInvalidFormatError("material_id", req.MaterialID))
		}
	case "":
		errors = append(errors, domain.NewMissingFieldError("format"))
	default:
		errors = append(errors, domain.NewInvalidFormatError("format", req.Format))
	}

	if req.NumQuestions < 1 || req.NumQuestions > MaxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", req.NumQuestions, 1, MaxQuestions))
	}

	for _, t := range req.QuestionTypes {
		if _, ok := domain.ParseQuestionType(t); !ok {
			errors = append(errors, domain.NewInvalidFormatError("question_types", t))
		}
	}

	if req.Difficulty != "" {
		if _, err := domain.ParseDifficulty(req.Difficulty); err != nil {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
		}
	}

	return errors
}

func (v *Validator) ValidateSavePoolRequest(req *dto.SavePoolRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(req.Topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if len(req.Topic) > maxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", len(req.Topic), 1, maxTopicLength))
	}
	if len(req.Questions) == 0 {
		errors = append(errors, domain.NewMissingFieldError("questions"))
	}
	return errors
}

func (v *Validator) ValidatePoolSettings(settings domain.PoolSettings) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(settings) == 0 {
		errors = append(errors, domain.NewMissingFieldError("settings"))
	}
	for topic, n := range settings {
		if n < 0 {
			errors = append(errors, domain.NewOutOfRangeError("settings."+topic, n, 0, MaxQuestions))
		}
	}
	return errors
}

func (v *Validator) ValidateSaveQuizRequest(req *dto.SaveQuizRequest) domain.ValidationErrors {
	errors := v.ValidateSessionID(req.SessionID)
	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(req.Title) > maxTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("title", len(req.Title), 1, maxTitleLength))
	}
	return errors
}

func (v *Validator) ValidateTagTemplateRequest(req *dto.TagTemplateRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(req.SelectedTags) == 0 {
		errors = append(errors, domain.NewMissingFieldError("selected_tags"))
	}
	return errors
}
