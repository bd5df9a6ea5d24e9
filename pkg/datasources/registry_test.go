// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/mpassid/authdata-service/internal/config"
)

func testBindings() *config.SourceBindings {
	return &config.SourceBindings{
		Sources: map[string]config.SourceSpec{
			"dreamschool": {
				Connector: "rest",
				Params: map[string]interface{}{
					"api_url":  "https://api.example.invalid/user/",
					"username": "api",
					"password": "secret",
				},
			},
			"wilma": {
				Connector: "signed-rest",
				Params: map[string]interface{}{
					"hostname":      "wilma.example.invalid",
					"shared_secret": "secret",
					"municipality":  "City",
				},
			},
			"broken": {
				Connector: "no-such-connector",
			},
		},
		AttributeBinding:    map[string]string{"dreamschool": "dreamschool"},
		MunicipalityBinding: map[string]string{"City": "dreamschool"},
	}
}

func TestRegistryResolve(t *testing.T) {
	tests := []struct {
		name   string
		source string

		expectedError error
	}{
		{name: "REST connector", source: "dreamschool"},
		{name: "Signed connector", source: "wilma"},
		{name: "Unknown source", source: "nope", expectedError: ErrUnknownSource},
		{name: "Unknown connector kind", source: "broken", expectedError: ErrConnectorLoad},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockProvisioner := NewMockProvisionerInterface(ctrl)

			r := NewRegistry(testBindings(), mockProvisioner, mockTracer, mockMonitor, mockLogger)

			connector, err := r.Resolve(test.source)

			if test.expectedError != nil {
				if !errors.Is(err, test.expectedError) {
					t.Fatalf("expected error %v, got %v", test.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if connector == nil {
				t.Fatal("expected a connector instance")
			}
		})
	}
}

// Every Resolve call constructs a fresh connector, no state is shared across
// requests.
func TestRegistryResolveFreshInstance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockProvisioner := NewMockProvisionerInterface(ctrl)

	r := NewRegistry(testBindings(), mockProvisioner, mockTracer, mockMonitor, mockLogger)

	first, err := r.Resolve("dreamschool")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := r.Resolve("dreamschool")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Fatal("expected distinct connector instances")
	}
}

func TestRegistrySourceForMunicipality(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := NewRegistry(
		testBindings(),
		NewMockProvisionerInterface(ctrl),
		NewMockTracingInterface(ctrl),
		NewMockMonitorInterface(ctrl),
		NewMockLoggerInterface(ctrl),
	)

	for _, name := range []string{"City", "city", "CITY"} {
		source, ok := r.SourceForMunicipality(name)
		if !ok || source != "dreamschool" {
			t.Fatalf("expected %q to resolve to dreamschool, got %q (%v)", name, source, ok)
		}
	}

	if _, ok := r.SourceForMunicipality("Elsewhere"); ok {
		t.Fatal("expected unbound municipality to not resolve")
	}

	if _, ok := r.SourceForAttribute("unknown"); ok {
		t.Fatal("expected unbound attribute to not resolve")
	}
}
