// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"fmt"

	"github.com/mpassid/authdata-service/internal/config"
	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring"
	"github.com/mpassid/authdata-service/internal/tracing"
)

type connectorFactory func(r *Registry, source string, params map[string]interface{}) (DataSourceInterface, error)

// Registry maps configured source names to connector constructors. Resolve
// builds a fresh connector per call so that no connection or credential state
// leaks across requests.
type Registry struct {
	bindings  *config.SourceBindings
	factories map[string]connectorFactory

	provisioner ProvisionerInterface
	tracer      tracing.TracingInterface
	monitor     monitoring.MonitorInterface
	logger      logging.LoggerInterface
}

func (r *Registry) Resolve(source string) (DataSourceInterface, error) {
	spec, ok := r.bindings.Sources[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	factory, ok := r.factories[spec.Connector]
	if !ok {
		return nil, fmt.Errorf("%w: no connector %q for source %s", ErrConnectorLoad, spec.Connector, source)
	}

	connector, err := factory(r, source, spec.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %v", ErrConnectorLoad, source, err)
	}

	return connector, nil
}

func (r *Registry) SourceForAttribute(name string) (string, bool) {
	return r.bindings.SourceForAttribute(name)
}

func (r *Registry) SourceForMunicipality(name string) (string, bool) {
	return r.bindings.SourceForMunicipality(name)
}

func NewRegistry(bindings *config.SourceBindings, provisioner ProvisionerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Registry {
	r := new(Registry)

	r.bindings = bindings
	r.factories = map[string]connectorFactory{
		"ldap":        newLDAPConnector,
		"ad":          newADConnector,
		"rest":        newRESTConnector,
		"signed-rest": newSignedConnector,
		"google":      newGoogleConnector,
	}

	r.provisioner = provisioner
	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
