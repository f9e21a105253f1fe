package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// JSONMap maps a schema-less key/value blob onto a jsonb column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	return json.Unmarshal(raw, m)
}
