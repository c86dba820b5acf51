package store

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every store operation. Handlers translate these
// into status codes with errors.Is / errors.As.
var (
	// ErrNotFound: the target id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a unique field collides with an existing row.
	ErrConflict = errors.New("conflict")
	// ErrValidation: the payload is missing a required field or references a
	// foreign key that does not exist.
	ErrValidation = errors.New("validation failed")
)

// ReferencedError blocks a classification delete while live expenses still
// point at the target. It matches ErrConflict under errors.Is.
type ReferencedError struct {
	Entity string
	Count  int64
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("cannot delete %s: still referenced by %d expense(s)", e.Entity, e.Count)
}

func (e *ReferencedError) Is(target error) bool {
	return target == ErrConflict
}
