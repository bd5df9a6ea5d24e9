// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	trace "go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/mpassid/authdata-service/internal/config"
)

func newTestGoogleConnector(t *testing.T, ctrl *gomock.Controller, srv *httptest.Server, provisioner ProvisionerInterface) *GoogleConnector {
	t.Helper()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), "datasources.GoogleConnector.GetData").Times(1).Return(context.TODO(), trace.SpanFromContext(context.TODO()))
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockMonitor.EXPECT().SetDependencyAvailability(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)

	bindings := &config.SourceBindings{
		Sources: map[string]config.SourceSpec{
			"gsuite": {
				Connector: "google",
				Params: map[string]interface{}{
					"key_file":        "/nonexistent/key.json",
					"admin_principal": "admin@example.invalid",
					"municipality":    "City",
				},
			},
		},
	}

	r := NewRegistry(bindings, provisioner, mockTracer, mockMonitor, mockLogger)
	connector, err := r.Resolve("gsuite")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	c := connector.(*GoogleConnector)
	c.baseURL = srv.URL
	c.newClient = func(ctx context.Context) (*http.Client, error) {
		return srv.Client(), nil
	}
	return c
}

func TestGoogleConnectorGetData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/user@example.invalid" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("projection") != "full" {
			t.Errorf("unexpected projection %q", r.URL.Query().Get("projection"))
		}
		w.Write([]byte(`{
			"primaryEmail": "user@example.invalid",
			"name": {"givenName": "Foo", "familyName": "Bar"},
			"customSchemas": {
				"PrimusV2": {"SchoolID": "School A", "Role": "Opettaja", "Class": "7A", "PrimusID": "primus-1"}
			}
		}`))
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expectedOID := DeriveOID("gsuite", "user@example.invalid")

	mockProvisioner := NewMockProvisionerInterface(ctrl)
	mockProvisioner.EXPECT().
		Provision(gomock.Any(), "gsuite", expectedOID, "user@example.invalid").
		Return(nil)

	c := newTestGoogleConnector(t, ctrl, srv, mockProvisioner)

	user, err := c.GetData(context.TODO(), "user@example.invalid")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user == nil {
		t.Fatal("expected a user")
	}

	if user.Username != expectedOID || user.FirstName != "Foo" || user.LastName != "Bar" {
		t.Fatalf("unexpected user %+v", user)
	}
	if len(user.Roles) != 1 {
		t.Fatalf("expected one role, got %+v", user.Roles)
	}
	role := user.Roles[0]
	if role.School != "School A" || role.Role != "teacher" || role.Group != "7A" || role.Municipality != "City" {
		t.Fatalf("unexpected role %+v", role)
	}
	if len(user.Attributes) != 1 || user.Attributes[0].Name != "legacyId" || user.Attributes[0].Value != "primus-1" {
		t.Fatalf("unexpected attributes %+v", user.Attributes)
	}
}

func TestGoogleConnectorGetDataWithoutSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"primaryEmail": "user@example.invalid", "name": {"givenName": "Foo", "familyName": "Bar"}}`))
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvisioner := NewMockProvisionerInterface(ctrl)
	mockProvisioner.EXPECT().
		Provision(gomock.Any(), "gsuite", gomock.Any(), "user@example.invalid").
		Return(nil)

	c := newTestGoogleConnector(t, ctrl, srv, mockProvisioner)

	user, err := c.GetData(context.TODO(), "user@example.invalid")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// No role schema means a user with no attendances, not a failure.
	if len(user.Roles) != 0 || len(user.Attributes) != 0 {
		t.Fatalf("expected empty roles and attributes, got %+v", user)
	}
}

func TestGoogleConnectorGetDataAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := newTestGoogleConnector(t, ctrl, srv, NewMockProvisionerInterface(ctrl))

	user, err := c.GetData(context.TODO(), "nobody@example.invalid")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected absence, got %+v", user)
	}
}

func TestGoogleConnectorGetDataFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := newTestGoogleConnector(t, ctrl, srv, NewMockProvisionerInterface(ctrl))

	_, err := c.GetData(context.TODO(), "user@example.invalid")
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("expected error %v, got %v", ErrRemoteUnavailable, err)
	}
}
