package tables

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MapStructure is a json object stored in a single text column, used for audit payloads
type MapStructure map[string]interface{}

// Value returns the json encoded map
func (m MapStructure) Value() (driver.Value, error) {
	if m == nil {
		return driver.Value("{}"), nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return driver.Value(string(data)), nil
}

// Scan decodes a json column into the map
func (m *MapStructure) Scan(src interface{}) error {
	var source []byte
	switch v := src.(type) {
	case string:
		source = []byte(v)
	case []byte:
		source = v
	case nil:
	default:
		return fmt.Errorf("error scanning json value: %+v", src)
	}
	if len(source) == 0 {
		source = []byte("{}")
	}
	return json.Unmarshal(source, m)
}
