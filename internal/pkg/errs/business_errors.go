package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel for a status change the lifecycle table forbids.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict is the sentinel for a write that lost a race with a concurrent writer.
	ErrConflict = errors.New("concurrent modification")

	// ErrAlreadyExists is the sentinel for uniqueness violations.
	ErrAlreadyExists = errors.New("already exists")

	// ErrPreconditionFailed is the sentinel for operations whose entry condition does not hold.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrExternalFailure is the sentinel for failures of a remote collaborator.
	ErrExternalFailure = errors.New("external call failed")
)

// InvalidTransitionError reports a rejected move of Entity from status From to status To.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		From:   from,
		To:     to,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError reports that the stored version of Entity changed after it was read.
type ConflictError struct {
	Entity string
	ID     any
}

// NewConflictError creates a ConflictError.
func NewConflictError(entity string, id any) *ConflictError {
	return &ConflictError{
		Entity: entity,
		ID:     id,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was changed by another request", ErrConflict, e.Entity, sanitize(e.ID))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// AlreadyExistsError reports that an Entity identified by Key is already stored.
type AlreadyExistsError struct {
	Entity string
	Key    any
	Cause  error
}

// NewAlreadyExistsError creates an AlreadyExistsError.
func NewAlreadyExistsError(entity string, key any) *AlreadyExistsError {
	return &AlreadyExistsError{
		Entity: entity,
		Key:    key,
	}
}

// NewAlreadyExistsErrorWithCause creates an AlreadyExistsError carrying the storage failure.
func NewAlreadyExistsErrorWithCause(entity string, key any, cause error) *AlreadyExistsError {
	return &AlreadyExistsError{
		Entity: entity,
		Key:    key,
		Cause:  cause,
	}
}

func (e *AlreadyExistsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrAlreadyExists, e.Entity, sanitize(e.Key), e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrAlreadyExists, e.Entity, sanitize(e.Key))
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// PreconditionFailedError reports an operation attempted in a state that does not allow it.
type PreconditionFailedError struct {
	Reason string
}

// NewPreconditionFailedError creates a PreconditionFailedError.
func NewPreconditionFailedError(reason string) *PreconditionFailedError {
	return &PreconditionFailedError{Reason: reason}
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.Reason)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// ExternalFailureError reports that Service failed or could not be reached.
type ExternalFailureError struct {
	Service string
	Cause   error
}

// NewExternalFailureError creates an ExternalFailureError.
func NewExternalFailureError(service string, cause error) *ExternalFailureError {
	return &ExternalFailureError{
		Service: service,
		Cause:   cause,
	}
}

func (e *ExternalFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrExternalFailure, e.Service, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrExternalFailure, e.Service)
}

func (e *ExternalFailureError) Unwrap() error {
	return ErrExternalFailure
}
