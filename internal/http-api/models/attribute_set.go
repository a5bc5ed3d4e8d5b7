package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// AttributeSet is a set of release attribute codes stored as a single
// integer-array column ("{4,5,102}" in postgres array-literal form).
type AttributeSet []int

// Value implements driver.Valuer.
func (s AttributeSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	parts := make([]string, len(s))
	for i, code := range s {
		parts[i] = strconv.Itoa(code)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Scan implements sql.Scanner.
func (s *AttributeSet) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("attribute set: cannot scan %T", src)
	}

	raw = strings.Trim(strings.TrimSpace(raw), "{}")
	if raw == "" {
		*s = AttributeSet{}
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make(AttributeSet, 0, len(parts))
	for _, p := range parts {
		code, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("attribute set: bad element %q: %w", p, err)
		}
		out = append(out, code)
	}
	*s = out
	return nil
}

// GormDataType keeps AutoMigrate happy on drivers without a native array type.
func (AttributeSet) GormDataType() string {
	return "text"
}

// GormDBDataType picks the native integer-array column on postgres, where
// the Value/Scan literal form is the real array syntax. Everything else
// stores the literal as text.
func (AttributeSet) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "integer[]"
	}
	return "text"
}

// Contains reports whether code is in the set.
func (s AttributeSet) Contains(code int) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}
