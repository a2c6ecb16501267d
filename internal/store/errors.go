package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies a persistence failure so callers never inspect driver codes.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDuplicate
	KindForeignKey
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindForeignKey:
		return "foreign_key"
	default:
		return "internal"
	}
}

var (
	ErrNotFound   = errors.New("store: record not found")
	ErrDuplicate  = errors.New("store: duplicate key")
	ErrForeignKey = errors.New("store: foreign key violation")
	ErrInternal   = errors.New("store: internal error")
)

// Error pairs a Kind with the original driver error.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (cause: %v)", e.sentinel(), e.Cause)
}

func (e *Error) Is(target error) bool { return e.sentinel() == target }
func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindDuplicate:
		return ErrDuplicate
	case KindForeignKey:
		return ErrForeignKey
	default:
		return ErrInternal
	}
}

// KindOf returns the Kind of err. Errors that did not come through Translate
// are reported as KindInternal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }

// Translate maps gorm and driver errors onto the store's kinds. Postgres
// (pgx) errors are matched by SQLSTATE, SQLite by message text.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Cause: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindDuplicate, Cause: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindForeignKey, Cause: err}
	}

	type sqlStater interface{ SQLState() string }
	var pge sqlStater
	if errors.As(err, &pge) {
		switch pge.SQLState() {
		case "23505": // unique_violation
			return &Error{Kind: KindDuplicate, Cause: err}
		case "23503": // foreign_key_violation
			return &Error{Kind: KindForeignKey, Cause: err}
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &Error{Kind: KindDuplicate, Cause: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &Error{Kind: KindForeignKey, Cause: err}
	}

	return &Error{Kind: KindInternal, Cause: err}
}
