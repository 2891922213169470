// Package id provides the opaque identifiers used for tasks and reports.
package id

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// ID is an opaque, lexicographically comparable, stable identifier.
// It wraps a UUIDv7 so that two IDs minted later always sort after
// (or equal to) IDs minted earlier, without a separate sequence.
type ID uuid.UUID

// Nil is the zero value, used to represent "no id" where a pointer
// would otherwise be needed.
var Nil = ID(uuid.Nil)

// New mints a fresh, time-ordered identifier.
func New() ID {
	u, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the system entropy source is broken;
		// fall back to a random v4 rather than panic in the caller.
		u = uuid.New()
	}
	return ID(u)
}

// Parse decodes the canonical hyphenated string form of an ID.
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: invalid identifier %q: %w", s, err)
	}
	return ID(u), nil
}

// MustParse is like Parse but panics on error; used for test fixtures.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical string form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether id is the zero value.
func (id ID) IsNil() bool {
	return id == Nil
}

// Less reports whether id sorts before other. Combined with UUIDv7's
// time-ordering this gives a stable, monotonic ordering by creation time.
func (id ID) Less(other ID) bool {
	for i := range id {
		if id[i] != other[i] {
			return id[i] < other[i]
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler for JSON wire encoding.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer so gorm can store the id as text.
func (id ID) Value() (driver.Value, error) {
	if id.IsNil() {
		return nil, nil
	}
	return id.String(), nil
}

// Scan implements sql.Scanner.
func (id *ID) Scan(src any) error {
	if src == nil {
		*id = Nil
		return nil
	}
	switch v := src.(type) {
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("id: unsupported scan type %T", src)
	}
}
