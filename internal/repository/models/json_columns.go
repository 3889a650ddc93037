package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a []string as a JSON array in a text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	b, err := scanBytes(value)
	if err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if len(b) == 0 || string(b) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// JSONText holds a raw JSON document; an empty value is stored as "{}".
type JSONText []byte

func (j JSONText) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return string(j), nil
}

func (j *JSONText) Scan(value interface{}) error {
	b, err := scanBytes(value)
	if err != nil {
		return fmt.Errorf("JSONText Scan: %w", err)
	}
	*j = append((*j)[:0], b...)
	return nil
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", value)
	}
}
