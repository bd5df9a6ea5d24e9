// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package db

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

type DBClientInterface interface {
	Statement(ctx context.Context) sq.StatementBuilderType
	BeginTx(ctx context.Context) (*sql.Tx, error)
	Close() error
}
