// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/google/uuid"

	domainerrors "tasknest/internal/domain/errors"
)

// NewID generates a fresh random identifier. Generation never fails and is
// collision-improbable; every entity receives its identifier at construction
// and keeps it for life.
func NewID() uuid.UUID {
	return uuid.New()
}

// ParseID validates that raw is a well-formed UUID and returns it. A malformed
// value is a validation failure on the named field, not a lookup miss.
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   field,
			Message: "must be a valid UUID",
		})
	}

	return id, nil
}
