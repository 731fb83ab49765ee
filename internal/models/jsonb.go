package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Values stored as postgres jsonb columns implement sql.Scanner and driver.Valuer
// through these two helpers.

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("type assertion to []byte failed: %T", value)
	}
}

func jsonValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

type StringList []string

func (s *StringList) Scan(value interface{}) error {
	return scanJSON(value, s)
}

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return jsonValue([]string{})
	}
	return jsonValue([]string(s))
}

type Metadata map[string]interface{}

func (m *Metadata) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return jsonValue(map[string]interface{}{})
	}
	return jsonValue(map[string]interface{}(m))
}
