// Package uuid wraps google/uuid so that IDs can be bound from
// URI and query parameters.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// IsNil reports if the UUID is the nil UUID.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}

// UnmarshalParam parses a parameter string into the UUID.
// An empty string results in the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
