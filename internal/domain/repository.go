package domain

import "context"

// MaterialRepository persists extracted study materials
type MaterialRepository interface {
	SaveMaterial(ctx context.Context, m *Material) error
	GetMaterialByID(ctx context.Context, id string) (*Material, error)
	ListMaterials(ctx context.Context, instructorID string, limit, offset int) ([]*Material, error)
}

// PoolRepository persists topic question pools
type PoolRepository interface {
	SavePool(ctx context.Context, p *Pool) error
	GetPoolByTopic(ctx context.Context, instructorID, topic string) (*Pool, error)
	ListPools(ctx context.Context, instructorID string) ([]*Pool, error)
	DeletePool(ctx context.Context, instructorID, id string) error
}

// TagTemplateRepository persists saved tag selections
type TagTemplateRepository interface {
	SaveTagTemplate(ctx context.Context, t *TagTemplate) error
	ListTagTemplates(ctx context.Context, instructorID string) ([]*TagTemplate, error)
}

// QuizRepository persists saved quizzes
type QuizRepository interface {
	SaveQuiz(ctx context.Context, q *SavedQuiz) error
	GetQuizByID(ctx context.Context, id string) (*SavedQuiz, error)
	ListQuizzes(ctx context.Context, instructorID string, limit, offset int) ([]*SavedQuiz, error)
}

// InstructorRepository persists instructor accounts
type InstructorRepository interface {
	GetInstructorByID(ctx context.Context, id string) (*Instructor, error)
	GetInstructorByGoogleID(ctx context.Context, googleID string) (*Instructor, error)
	CreateInstructor(ctx context.Context, i *Instructor) error
	UpdateInstructor(ctx context.Context, i *Instructor) error
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
