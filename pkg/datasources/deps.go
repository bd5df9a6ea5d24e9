// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"io"
	"net/http"

	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring"
	"github.com/mpassid/authdata-service/internal/tracing"
)

// connectorDeps bundles the cross-cutting dependencies handed to every
// connector by the registry.
type connectorDeps struct {
	provisioner ProvisionerInterface
	tracer      tracing.TracingInterface
	monitor     monitoring.MonitorInterface
	logger      logging.LoggerInterface
}

func (d *connectorDeps) setAvailability(source string, value float64) {
	err := d.monitor.SetDependencyAvailability(map[string]string{"component": source}, value)
	if err != nil {
		d.logger.Warnf("failed to set availability metric for %s: %v", source, err)
	}
}

func readBody(response *http.Response) ([]byte, error) {
	return io.ReadAll(response.Body)
}

func newConnectorDeps(r *Registry) *connectorDeps {
	d := new(connectorDeps)

	d.provisioner = r.provisioner
	d.tracer = r.tracer
	d.monitor = r.monitor
	d.logger = r.logger

	return d
}
