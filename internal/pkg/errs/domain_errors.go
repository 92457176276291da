package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

// Error kinds raised by the usecase layer. Always test with errs.Is,
// the kinds are attached as cockroachdb marks.
var (
	ErrNotFound     = cr.New("not found")
	ErrValidation   = cr.New("validation failed")
	ErrConflict     = cr.New("conflict")
	ErrInvalidState = cr.New("invalid state")
	ErrStore        = cr.New("store failure")
	ErrForbidden    = cr.New("forbidden")
)

var kinds = []error{ErrNotFound, ErrValidation, ErrConflict, ErrInvalidState, ErrStore, ErrForbidden}

func NotFound(what string) error {
	return cr.Mark(cr.Newf("%s not found", what), ErrNotFound)
}

func Validation(msg string) error {
	return cr.Mark(cr.New(msg), ErrValidation)
}

func Validationf(format string, args ...any) error {
	return cr.Mark(cr.New(fmt.Sprintf(format, args...)), ErrValidation)
}

func Conflict(msg string) error {
	return cr.Mark(cr.New(msg), ErrConflict)
}

func InvalidStatef(format string, args ...any) error {
	return cr.Mark(cr.New(fmt.Sprintf(format, args...)), ErrInvalidState)
}

// Forbidden is for shop-management operations attempted by someone who
// does not manage the shop. Reservation access by a non-owner is NotFound.
func Forbidden(msg string) error {
	return cr.Mark(cr.New(msg), ErrForbidden)
}

// Store marks an opaque persistence failure. Nil stays nil.
func Store(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Mark(cr.Wrap(err, msg), ErrStore)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

// KindOf returns the kind marker carried by err, or nil for unclassified errors.
func KindOf(err error) error {
	for _, k := range kinds {
		if cr.Is(err, k) {
			return k
		}
	}
	return nil
}

// Message is the human readable part of a classified error, without the
// wrapping prefixes added on the way up.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return cr.UnwrapAll(err).Error()
}
