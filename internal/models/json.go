package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON is a free-form jsonb column.
type JSON map[string]interface{}

// Value implements driver.Valuer for jsonb storage
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner for jsonb storage
func (j *JSON) Scan(value interface{}) error {
	return scanJSONB(value, j)
}

// scanJSONB decodes a jsonb column into dest, accepting both []byte and string
// representations from the driver.
func scanJSONB(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
