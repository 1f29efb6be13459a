package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// OdooString is a string that accepts Odoo's `false` for empty text fields.
type OdooString string

// UnmarshalJSON accepts a string or a boolean
func (os *OdooString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*os = OdooString(s)
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*os = "true"
		} else {
			*os = ""
		}
		return nil
	}

	return errors.New("OdooString: cannot unmarshal value into string")
}

// Value implements driver.Valuer interface for database storage
func (os OdooString) Value() (driver.Value, error) {
	return string(os), nil
}

// Scan implements sql.Scanner interface for database retrieval
func (os *OdooString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*os = ""
	case string:
		*os = OdooString(v)
	case []byte:
		*os = OdooString(string(v))
	default:
		return fmt.Errorf("failed to scan OdooString: %v", value)
	}
	return nil
}

// String returns native string value
func (os OdooString) String() string {
	return string(os)
}

// OdooMany2One decodes a many2one value as returned by search_read:
// either `[id, "display name"]` or `false`.
type OdooMany2One struct {
	ID   int64
	Name string
}

// UnmarshalJSON accepts a two-element array or false
func (m *OdooMany2One) UnmarshalJSON(data []byte) error {
	var pair []interface{}
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) == 0 {
			*m = OdooMany2One{}
			return nil
		}
		id, ok := pair[0].(float64)
		if !ok {
			return fmt.Errorf("OdooMany2One: unexpected id %v", pair[0])
		}
		m.ID = int64(id)
		if len(pair) > 1 {
			m.Name, _ = pair[1].(string)
		}
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil && !b {
		*m = OdooMany2One{}
		return nil
	}

	return errors.New("OdooMany2One: cannot unmarshal value")
}

// Ptr returns the id as pointer, nil when unset
func (m OdooMany2One) Ptr() *int64 {
	if m.ID == 0 {
		return nil
	}
	id := m.ID
	return &id
}
