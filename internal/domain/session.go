package domain

import "time"

// Messages shown to users instead of errors. They are part of the UI contract.
const (
	MsgEmptyInput       = "Please provide text to generate questions from."
	MsgShuffleBeforeGen = "Please generate a quiz first before shuffling!"
	MsgNothingToExport  = "No quiz to download"
)

// QuizState is the current quiz of a session
type QuizState struct {
	Questions     []Question     `json:"questions"`
	NumQuestions  int            `json:"num_questions"`
	QuestionTypes []QuestionType `json:"question_types"`
}

// NewQuizState returns the empty state {[], 0, []}.
func NewQuizState() QuizState {
	return QuizState{
		Questions:     []Question{},
		NumQuestions:  0,
		QuestionTypes: []QuestionType{},
	}
}

// IsEmpty reports whether a quiz has been generated yet.
func (s QuizState) IsEmpty() bool {
	return len(s.Questions) == 0
}

// Session holds one user's working quiz between requests.
type Session struct {
	ID        string    `json:"id"`
	InputText string    `json:"input_text"`
	State     QuizState `json:"state"`
	Markdown  string    `json:"markdown"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates an empty session with the given id.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		State:     NewQuizState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SourceFormat selects where Generate reads its input from.
type SourceFormat string

const (
	SourceText     SourceFormat = "text"
	SourceFile     SourceFormat = "file"
	SourceMaterial SourceFormat = "material"
)

// SavedQuiz is a session quiz persisted under a title.
type SavedQuiz struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	InstructorID string    `json:"instructor_id,omitempty"`
	State        QuizState `json:"state"`
	Markdown     string    `json:"markdown"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
