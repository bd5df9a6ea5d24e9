// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	trace "go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/mpassid/authdata-service/internal/config"
)

const restListingFixture = `{
  "meta": {"limit": 0, "offset": 0, "total_count": 1},
  "objects": [
    {
      "id": "123",
      "username": "user",
      "first_name": "Foo",
      "last_name": "Bar",
      "roles": [
        {
          "organisation": {"id": 1, "title": "School A"},
          "permissions": [{"code": "dreamdiary.diary.supervisor"}]
        }
      ],
      "user_groups": [
        {
          "organisation": {"id": 1, "title": "School A"},
          "title": "Group1"
        },
        {
          "organisation": {"id": 2, "title": "School B"},
          "title": "Group2"
        }
      ]
    }
  ]
}`

func newTestRESTConnector(t *testing.T, ctrl *gomock.Controller, srv *httptest.Server, provisioner ProvisionerInterface, spans int) *RESTConnector {
	t.Helper()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Times(spans).Return(context.TODO(), trace.SpanFromContext(context.TODO()))
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockMonitor.EXPECT().SetDependencyAvailability(gomock.Any(), gomock.Any()).AnyTimes().Return(nil)

	bindings := &config.SourceBindings{
		Sources: map[string]config.SourceSpec{
			"dreamschool": {
				Connector: "rest",
				Params: map[string]interface{}{
					"api_url":  srv.URL,
					"username": "api",
					"password": "secret",
					"org_map": map[string]interface{}{
						"city": map[string]interface{}{"school a": 1},
					},
				},
			},
		},
	}

	r := NewRegistry(bindings, provisioner, mockTracer, mockMonitor, mockLogger)
	connector, err := r.Resolve("dreamschool")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	c := connector.(*RESTConnector)
	c.client = srv.Client()
	return c
}

func TestRESTConnectorGetUserData(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(restListingFixture))
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvisioner := NewMockProvisionerInterface(ctrl)
	mockProvisioner.EXPECT().
		Provision(gomock.Any(), "dreamschool", "MPASSOID.ea5f9ca03f6edf5a0409d", "123").
		Return(nil)

	c := newTestRESTConnector(t, ctrl, srv, mockProvisioner, 1)

	list, err := c.GetUserData(context.TODO(), &Query{Municipality: "City", School: "School A", Group: ""})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotQuery != "organisations__id=1" {
		t.Fatalf("expected organisation filter, got query %q", gotQuery)
	}
	if list.Count != 1 || len(list.Results) != 1 {
		t.Fatalf("expected one result, got %+v", list)
	}
	if list.Next != nil || list.Previous != nil {
		t.Fatal("expected next and previous to stay null")
	}

	user := list.Results[0]
	if user.Username != "MPASSOID.ea5f9ca03f6edf5a0409d" {
		t.Fatalf("unexpected username %q", user.Username)
	}
	if len(user.Roles) != 2 {
		t.Fatalf("expected two roles, got %+v", user.Roles)
	}
	if user.Roles[0].Role != "teacher" || user.Roles[0].School != "School A" || user.Roles[0].Group != "Group1" || user.Roles[0].Municipality != "City" {
		t.Fatalf("unexpected teacher role %+v", user.Roles[0])
	}
	// No teacher permission for organisation 2, membership defaults to
	// student and its organisation is not in the municipality map.
	if user.Roles[1].Role != "student" || user.Roles[1].School != "School B" || user.Roles[1].Municipality != "" {
		t.Fatalf("unexpected student role %+v", user.Roles[1])
	}
}

func TestRESTConnectorGetUserDataUnmappedSchool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected unfiltered fallback fetch, got query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"meta": {}, "objects": []}`))
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := newTestRESTConnector(t, ctrl, srv, NewMockProvisionerInterface(ctrl), 1)

	list, err := c.GetUserData(context.TODO(), &Query{Municipality: "City", School: "Unknown School"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if list.Count != 0 {
		t.Fatalf("expected empty listing, got %+v", list)
	}
}

// Upstream failures degrade to an empty listing, never to an error.
func TestRESTConnectorGetUserDataDegrades(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Status not OK",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "Unparsable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv := httptest.NewServer(test.handler)
			defer srv.Close()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			c := newTestRESTConnector(t, ctrl, srv, NewMockProvisionerInterface(ctrl), 1)

			list, err := c.GetUserData(context.TODO(), &Query{Municipality: "City"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if list.Count != 0 || len(list.Results) != 0 {
				t.Fatalf("expected empty listing, got %+v", list)
			}
			if list.Next != nil || list.Previous != nil {
				t.Fatal("expected next and previous to stay null")
			}
		})
	}
}

func TestRESTConnectorGetData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/123/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{
			"id": "123",
			"username": "user",
			"first_name": "Foo",
			"last_name": "Bar",
			"roles": [],
			"user_groups": [{"organisation": {"id": 1, "title": "School A"}, "title": "1a"}]
		}`))
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvisioner := NewMockProvisionerInterface(ctrl)
	mockProvisioner.EXPECT().
		Provision(gomock.Any(), "dreamschool", "MPASSOID.ea5f9ca03f6edf5a0409d", "123").
		Return(nil)

	c := newTestRESTConnector(t, ctrl, srv, mockProvisioner, 1)

	user, err := c.GetData(context.TODO(), "123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user == nil {
		t.Fatal("expected a user")
	}
	if user.FirstName != "Foo" || user.LastName != "Bar" {
		t.Fatalf("unexpected names %q %q", user.FirstName, user.LastName)
	}
	if len(user.Roles) != 1 || user.Roles[0].Role != "student" {
		t.Fatalf("unexpected roles %+v", user.Roles)
	}
}

func TestRESTConnectorGetDataAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := newTestRESTConnector(t, ctrl, srv, NewMockProvisionerInterface(ctrl), 1)

	user, err := c.GetData(context.TODO(), "999")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected absence, got %+v", user)
	}
}
