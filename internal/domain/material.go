package domain

import "time"

// MaterialKind is the detected format of an uploaded file
type MaterialKind string

const (
	MaterialText    MaterialKind = "text"
	MaterialPDF     MaterialKind = "pdf"
	MaterialImage   MaterialKind = "image"
	MaterialUnknown MaterialKind = "unknown"
)

// Segment is a chunk of extracted text, usually one page.
type Segment struct {
	Text string `json:"text"`
	Page int    `json:"page,omitempty"`
}

// Material is an uploaded study document after extraction
type Material struct {
	ID           string       `json:"id"`
	InstructorID string       `json:"instructor_id,omitempty"`
	Filename     string       `json:"filename"`
	Kind         MaterialKind `json:"kind"`
	MimeType     string       `json:"mime_type"`
	Text         string       `json:"text"`
	Segments     []Segment    `json:"segments,omitempty"`
	StorageKey   string       `json:"storage_key,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Upload is one raw file received from a client.
type Upload struct {
	Filename string
	MimeType string
	Data     []byte
}

// Entity is a named entity found in source text
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Analysis is the word-importance summary of a text
type Analysis struct {
	Keywords []string   `json:"keywords"`
	Entities []Entity   `json:"entities"`
	Topics   [][]string `json:"topics"`
}

// Instructor is an authenticated author of pools, templates and saved quizzes
type Instructor struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	GoogleID  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
