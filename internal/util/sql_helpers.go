package util

import "database/sql"

// StringToNullString maps optional columns such as instructor_id and
// storage_key: "" is stored as NULL so anonymous rows match IS NULL lookups.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
