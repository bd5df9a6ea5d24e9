// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousMatch is returned when a single-result lookup matches more
	// than one row. Callers fold this into not-found, ambiguity is defined to
	// behave identically to absence.
	ErrAmbiguousMatch = errors.New("more than one match")
)

func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func WrapDuplicateKeyError(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func WrapForeignKeyError(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}
