// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package storage

import (
	"github.com/mpassid/authdata-service/internal/db"
	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring"
	"github.com/mpassid/authdata-service/internal/tracing"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}
