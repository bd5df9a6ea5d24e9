// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mpassid/authdata-service/internal/db"
	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring"
	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/tracing"
	"github.com/mpassid/authdata-service/pkg/attributes"
	"github.com/mpassid/authdata-service/pkg/authentication"
	"github.com/mpassid/authdata-service/pkg/datasources"
	"github.com/mpassid/authdata-service/pkg/metrics"
	"github.com/mpassid/authdata-service/pkg/query"
	"github.com/mpassid/authdata-service/pkg/status"
)

func NewRouter(
	token string,
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	registry datasources.RegistryInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	if dbClient != nil {
		middlewares = append(middlewares, db.TransactionMiddleware(dbClient, logger))
	}

	middlewares = append(
		middlewares,
		middleware.RequestLogger(logging.NewLogFormatter(logger)), // LogFormatter will only work if logger is set to DEBUG level
	)

	router.Use(middlewares...)

	apiRouter := router
	if token != "" {
		apiRouter = router.With(authentication.NewMiddleware(token, tracer, logger).Authenticate()).(*chi.Mux)
	}

	queryService := query.NewService(s, registry, tracer, monitor, logger)
	attributeService := attributes.NewService(s, tracer, monitor, logger)

	query.NewAPI(queryService, logger).RegisterEndpoints(apiRouter)
	attributes.NewAPI(attributeService, logger).RegisterEndpoints(apiRouter)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
