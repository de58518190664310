// Package store is the query layer over the relational data model.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
)

// ErrDuplicateMapping is returned when a (patient, doctor) pair already has
// an active assignment, whether caught by the pre-check or the unique index.
var ErrDuplicateMapping = errors.New("doctor already assigned to patient")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the connection for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(what + " not found")
	}
	return err
}

func constraint(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, apperrors.Conflict("Referenced record does not exist"))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, apperrors.Conflict("Record already exists"))
	}
	return fmt.Errorf("%s: %w", op, err)
}
