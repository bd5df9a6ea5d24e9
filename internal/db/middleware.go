// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package db

import (
	"context"
	"database/sql"
	"net/http"

	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mpassid/authdata-service/internal/logging"
)

type txContextKey struct{}

func TxFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txContextKey{}).(*sql.Tx)
	return tx
}

// TransactionMiddleware opens a transaction per request and commits it unless
// the handler wrote a 5xx status or panicked.
func TransactionMiddleware(client DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := client.BeginTx(r.Context())
			if err != nil {
				logger.Errorf("failed to begin transaction: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := context.WithValue(r.Context(), txContextKey{}, tx)

			defer func() {
				if p := recover(); p != nil {
					_ = tx.Rollback()
					panic(p)
				}

				if ww.Status() >= http.StatusInternalServerError {
					if err := tx.Rollback(); err != nil {
						logger.Errorf("failed to roll back transaction: %v", err)
					}
					return
				}

				if err := tx.Commit(); err != nil {
					logger.Errorf("failed to commit transaction: %v", err)
				}
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}
