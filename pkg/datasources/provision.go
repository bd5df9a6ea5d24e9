// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"fmt"

	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring"
	"github.com/mpassid/authdata-service/internal/tracing"
)

// Provisioner materializes shadow records for users seen in external systems.
type Provisioner struct {
	store StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Provision upserts the shadow user for (source, external id) and records the
// binding as a locally owned attribute row named after the source tag.
// Repeated calls with the same inputs converge on the same single record.
func (p *Provisioner) Provision(ctx context.Context, source, oid, externalID string) error {
	ctx, span := p.tracer.Start(ctx, "datasources.Provisioner.Provision")
	defer span.End()

	user, created, err := p.store.GetOrCreateUser(ctx, oid, source, externalID)
	if err != nil {
		return fmt.Errorf("failed to provision user %s: %v", oid, err)
	}

	if created {
		p.logger.Debugf("provisioned shadow user %s for source %s", oid, source)
	}

	if err := p.store.UpsertUserAttribute(ctx, user.ID, source, externalID, "local"); err != nil {
		return fmt.Errorf("failed to record source binding for %s: %v", oid, err)
	}

	return nil
}

func NewProvisioner(store StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Provisioner {
	p := new(Provisioner)

	p.store = store

	p.tracer = tracer
	p.monitor = monitor
	p.logger = logger

	return p
}
