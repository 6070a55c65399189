// Package pgerr translates Postgres and gorm failures into domain error kinds.
package pgerr

import (
	"errors"

	"fooddelivery/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err carries Postgres error 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err carries Postgres error 23503.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// OnInsert maps insert failures: unique violations become AlreadyExistsError.
func OnInsert(err error, entity string, key any) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return errs.NewAlreadyExistsErrorWithCause(entity, key, err)
	}
	return err
}

// OnGet maps lookup failures: a missing row becomes ObjectNotFoundError.
func OnGet(err error, entity string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundErrorWithCause(entity, id, err)
	}
	return err
}
