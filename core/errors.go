package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNoData       = errors.New("no data")
)

// ErrorKind discriminates the failures returned by the services.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotFound
	KindDuplicateKey
	KindNoData
	KindValidation
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindNoData:
		return "no_data"
	case KindValidation:
		return "validation"
	default:
		return "store"
	}
}

// KindOf reports which kind of failure err is. Anything unrecognised is a store failure.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateKey):
		return KindDuplicateKey
	case errors.Is(err, ErrNoData):
		return KindNoData
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return KindValidation
	}
	var fErrs validator.ValidationErrors
	if errors.As(err, &fErrs) {
		return KindValidation
	}
	return KindStore
}

// NotFoundError is returned when a natural key does not resolve to a record.
type NotFoundError struct {
	Entity string
	Key    string
}

func NewNotFoundError(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", err.Entity, err.Key)
}

func (err *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateKeyError is returned when an insert or update violates a unique natural key.
type DuplicateKeyError struct {
	Entity string
	Key    string
}

func NewDuplicateKeyError(entity, key string) error {
	return &DuplicateKeyError{Entity: entity, Key: key}
}

func (err *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q already exists", err.Entity, err.Key)
}

func (err *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// StoreError wraps any other persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(err error, op string) error {
	return &StoreError{Op: op, Err: errors.WithStack(err)}
}

func (err *StoreError) Error() string {
	if err.Err == nil {
		return err.Op
	}
	return err.Op + ": " + err.Err.Error()
}

func (err *StoreError) Unwrap() error { return err.Err }
func (err *StoreError) Cause() error  { return err.Err }

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return "validation failed"
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }
