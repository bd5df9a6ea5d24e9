// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	ldap "github.com/go-ldap/ldap/v3"
	trace "go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/mpassid/authdata-service/internal/config"
)

func newTestADConnector(t *testing.T, ctrl *gomock.Controller, dir *fakeDirectory, provisioner ProvisionerInterface, span string, spans int) *ADConnector {
	t.Helper()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), span).Times(spans).Return(context.TODO(), trace.SpanFromContext(context.TODO()))
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockMonitor.EXPECT().SetDependencyAvailability(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)

	bindings := &config.SourceBindings{
		Sources: map[string]config.SourceSpec{
			"ad_city": {
				Connector: "ad",
				Params: map[string]interface{}{
					"host":         "ldaps://ad.example.invalid",
					"username":     "CN=reader,DC=example,DC=org",
					"password":     "secret",
					"base_dn":      "DC=example,DC=org",
					"municipality": "City",
				},
			},
		},
	}

	r := NewRegistry(bindings, provisioner, mockTracer, mockMonitor, mockLogger)
	connector, err := r.Resolve("ad_city")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	c := connector.(*ADConnector)
	c.dial = func(host string) (ldapConn, error) {
		return dir, nil
	}
	return c
}

func TestADConnectorGetData(t *testing.T) {
	guid := []byte{0x01, 0xab, 0xff, 0x00}
	externalID := base64.StdEncoding.EncodeToString(guid)

	dir := &fakeDirectory{
		entries: []*ldap.Entry{
			{
				DN: "CN=user1,OU=Users,DC=example,DC=org",
				Attributes: []*ldap.EntryAttribute{
					ldap.NewEntryAttribute("objectGUID", []string{string(guid)}),
					ldap.NewEntryAttribute("givenName", []string{"Foo"}),
					ldap.NewEntryAttribute("sn", []string{"Bar"}),
					ldap.NewEntryAttribute("title", []string{"Oppilas"}),
					ldap.NewEntryAttribute("department", []string{"7A"}),
					ldap.NewEntryAttribute("physicalDeliveryOfficeName", []string{"School A"}),
				},
			},
		},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expectedOID := DeriveOID("ad_city", string(guid))

	mockProvisioner := NewMockProvisionerInterface(ctrl)
	mockProvisioner.EXPECT().
		Provision(gomock.Any(), "ad_city", expectedOID, externalID).
		Return(nil)

	c := newTestADConnector(t, ctrl, dir, mockProvisioner, "datasources.ADConnector.GetData", 1)

	user, err := c.GetData(context.TODO(), externalID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user == nil {
		t.Fatal("expected a user")
	}

	// The GUID bytes go into the filter backslash-escaped, not base64.
	if dir.requests[0].Filter != `(objectGUID=\01\ab\ff\00)` {
		t.Fatalf("unexpected filter %q", dir.requests[0].Filter)
	}

	if user.Username != expectedOID {
		t.Fatalf("unexpected username %q", user.Username)
	}
	role := user.Roles[0]
	if role.School != "School A" || role.Role != "student" || role.Group != "7A" || role.Municipality != "City" {
		t.Fatalf("unexpected role %+v", role)
	}
}

func TestADConnectorGetDataInvalidGUID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := newTestADConnector(t, ctrl, &fakeDirectory{}, NewMockProvisionerInterface(ctrl), "datasources.ADConnector.GetData", 1)

	_, err := c.GetData(context.TODO(), "not-base64!!!")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected error %v, got %v", ErrMalformedResponse, err)
	}
}

func TestADConnectorGetUserData(t *testing.T) {
	dir := &fakeDirectory{
		entries: []*ldap.Entry{
			{
				DN: "CN=user1,OU=Users,DC=example,DC=org",
				Attributes: []*ldap.EntryAttribute{
					ldap.NewEntryAttribute("objectGUID", []string{"guid-1"}),
					ldap.NewEntryAttribute("uid", []string{"user1"}),
					ldap.NewEntryAttribute("givenName", []string{"Foo"}),
					ldap.NewEntryAttribute("sn", []string{"Bar"}),
					ldap.NewEntryAttribute("title", []string{"Opettaja"}),
					ldap.NewEntryAttribute("department", []string{"7A"}),
					ldap.NewEntryAttribute("physicalDeliveryOfficeName", []string{"School A"}),
				},
			},
		},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvisioner := NewMockProvisionerInterface(ctrl)
	mockProvisioner.EXPECT().
		Provision(gomock.Any(), "ad_city", DeriveOID("ad_city", "guid-1"), "user1").
		Return(nil)

	c := newTestADConnector(t, ctrl, dir, mockProvisioner, "datasources.ADConnector.GetUserData", 1)

	list, err := c.GetUserData(context.TODO(), &Query{Municipality: "City", School: "School A", Group: "7A"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if dir.requests[0].Filter != "(&(department=7A)(&(physicalDeliveryOfficeName=School A)(&(objectCategory=person)(objectClass=user))))" {
		t.Fatalf("unexpected filter %q", dir.requests[0].Filter)
	}

	if list.Count != 1 || list.Results[0].Roles[0].Role != "teacher" {
		t.Fatalf("unexpected listing %+v", list)
	}
}

func TestEscapeBinaryFilter(t *testing.T) {
	if got := escapeBinaryFilter([]byte{0x00, 0x10, 0xff}); got != `\00\10\ff` {
		t.Fatalf("unexpected escape %q", got)
	}
	if got := escapeBinaryFilter(nil); got != "" {
		t.Fatalf("expected empty escape, got %q", got)
	}
}
