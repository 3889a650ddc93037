package models

import (
	"database/sql"
	"time"
)

type Instructor struct {
	ID        string         `db:"id"`
	GoogleID  string         `db:"google_id"`
	Email     string         `db:"email"`
	Name      sql.NullString `db:"name"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Material is a row of the materials table; Segments is a JSON array.
type Material struct {
	ID           string         `db:"id"`
	InstructorID sql.NullString `db:"instructor_id"`
	Filename     string         `db:"filename"`
	Kind         string         `db:"kind"`
	MimeType     string         `db:"mime_type"`
	Content      string         `db:"content"`
	Segments     JSONText       `db:"segments"`
	StorageKey   sql.NullString `db:"storage_key"`
	CreatedAt    time.Time      `db:"created_at"`
}

type Pool struct {
	ID           string         `db:"id"`
	InstructorID sql.NullString `db:"instructor_id"`
	Topic        string         `db:"topic"`
	Questions    StringSlice    `db:"questions"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type TagTemplate struct {
	ID           string         `db:"id"`
	InstructorID sql.NullString `db:"instructor_id"`
	Name         sql.NullString `db:"name"`
	SelectedTags StringSlice    `db:"selected_tags"`
	CreatedAt    time.Time      `db:"created_at"`
}

// SavedQuiz keeps the quiz state as a JSON document.
type SavedQuiz struct {
	ID           string         `db:"id"`
	InstructorID sql.NullString `db:"instructor_id"`
	Title        string         `db:"title"`
	State        JSONText       `db:"state"`
	Markdown     string         `db:"markdown"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
