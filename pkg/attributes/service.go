// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package attributes

import (
	"context"

	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring"
	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/tracing"
	"github.com/mpassid/authdata-service/internal/types"
)

// Service is the administrative surface over attribute overlays. Deletion is
// always a soft delete, disabled rows stay in place and drop out of reads.
type Service struct {
	store StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) ListAttributes(ctx context.Context, filter *storage.AttributeFilter) ([]*types.UserAttribute, error) {
	ctx, span := s.tracer.Start(ctx, "attributes.Service.ListAttributes")
	defer span.End()

	return s.store.ListUserAttributeRows(ctx, filter)
}

func (s *Service) CreateAttribute(ctx context.Context, username, name, value, dataSource string) error {
	ctx, span := s.tracer.Start(ctx, "attributes.Service.CreateAttribute")
	defer span.End()

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	return s.store.UpsertUserAttribute(ctx, user.ID, name, value, dataSource)
}

func (s *Service) DisableAttribute(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "attributes.Service.DisableAttribute")
	defer span.End()

	return s.store.DisableUserAttribute(ctx, id)
}

func NewService(store StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
