package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB is a thin helper for storing arbitrary JSON with GORM. It backs the
// identity metadata bag and the audit log detail column.
type JSONB []byte

// JSONBFrom marshals a map into a JSONB value. A nil map becomes "{}".
func JSONBFrom(m map[string]any) JSONB {
	if m == nil {
		return JSONB("{}")
	}
	b, err := json.Marshal(m)
	if err != nil {
		return JSONB("{}")
	}
	return JSONB(b)
}

// GetString returns the string value stored under key, or "" if the key is
// absent or not a string.
func (j JSONB) GetString(key string) string {
	var m map[string]any
	if err := json.Unmarshal(j, &m); err != nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// MarshalJSON emits the stored document verbatim instead of base64.
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return j, nil
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	*j = JSONB(data)
	return nil
}

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return []byte(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = JSONB("{}")
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONB(v)
		return nil
	case string:
		*j = JSONB([]byte(v))
		return nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("jsonb scan: %w", err)
		}
		*j = JSONB(b)
		return nil
	}
}
