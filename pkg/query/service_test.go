// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package query

import (
	"context"
	"errors"
	"reflect"
	"testing"

	trace "go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/types"
	"github.com/mpassid/authdata-service/pkg/datasources"
)

//go:generate mockgen -build_flags=--mod=mod -package query -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package query -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package query -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package query -destination ./mock_query.go -source=./interfaces.go

func newTestService(ctrl *gomock.Controller, store StorageInterface, registry datasources.RegistryInterface) *Service {
	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().Return(context.TODO(), trace.SpanFromContext(context.TODO()))
	mockMonitor := NewMockMonitorInterface(ctrl)

	return NewService(store, registry, mockTracer, mockMonitor, mockLogger)
}

func TestServiceResolveUser(t *testing.T) {
	someErr := errors.New("some error")

	tests := []struct {
		name     string
		username string
		params   []Param

		mockedStore    func(*gomock.Controller) StorageInterface
		mockedRegistry func(*gomock.Controller) datasources.RegistryInterface

		expectedUser  *types.User
		expectedError error
	}{
		{
			name:     "Bound user resolved from its external source",
			username: "MPASSOID.bound",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetUserByUsername(gomock.Any(), "MPASSOID.bound").
					Return(&types.LocalUser{ID: 5, Username: "MPASSOID.bound", ExternalSource: "wilma", ExternalID: "user1"}, nil)
				mockStore.EXPECT().
					ListUserAttributes(gomock.Any(), int64(5)).
					Return([]types.Attribute{{Name: "wilma", Value: "user1"}}, nil)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockConnector := datasources.NewMockDataSourceInterface(ctrl)
				mockConnector.EXPECT().
					GetData(gomock.Any(), "user1").
					Return(&types.User{
						Username:   "MPASSOID.bound",
						FirstName:  "Foo",
						LastName:   "Bar",
						Roles:      []types.Role{{School: "School A", Role: types.RoleTeacher, Municipality: "City"}},
						Attributes: []types.Attribute{{Name: "legacyId", Value: "crypt-1"}},
					}, nil)
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().Resolve("wilma").Return(mockConnector, nil)
				return mockRegistry
			},
			expectedUser: &types.User{
				Username:  "MPASSOID.bound",
				FirstName: "Foo",
				LastName:  "Bar",
				Roles:     []types.Role{{School: "School A", Role: types.RoleTeacher, Municipality: "City"}},
				Attributes: []types.Attribute{
					{Name: "legacyId", Value: "crypt-1"},
					{Name: "wilma", Value: "user1"},
				},
			},
		},
		{
			name:     "Unbound user rendered from the local store",
			username: "localuser",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetUserByUsername(gomock.Any(), "localuser").
					Return(&types.LocalUser{ID: 9, Username: "localuser", FirstName: "Local", LastName: "User"}, nil)
				mockStore.EXPECT().
					GetUserRoles(gomock.Any(), int64(9)).
					Return([]types.Role{{School: "School B", Role: types.RoleStudent, Group: "8B", Municipality: "Town"}}, nil)
				mockStore.EXPECT().
					ListUserAttributes(gomock.Any(), int64(9)).
					Return([]types.Attribute{}, nil)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				return datasources.NewMockRegistryInterface(ctrl)
			},
			expectedUser: &types.User{
				Username:   "localuser",
				FirstName:  "Local",
				LastName:   "User",
				Roles:      []types.Role{{School: "School B", Role: types.RoleStudent, Group: "8B", Municipality: "Town"}},
				Attributes: []types.Attribute{},
			},
		},
		{
			name:   "Bound attribute parameter creates and merges the shadow record",
			params: []Param{{Name: "dreamschool", Value: "user1"}},
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				// Provisioning during the fetch leaves a shadow record behind,
				// found here by the returned username.
				mockStore.EXPECT().
					GetUserByUsername(gomock.Any(), "MPASSOID.fresh").
					Return(&types.LocalUser{ID: 11, Username: "MPASSOID.fresh"}, nil)
				mockStore.EXPECT().
					ListUserAttributes(gomock.Any(), int64(11)).
					Return([]types.Attribute{{Name: "dreamschool", Value: "user1"}}, nil)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockConnector := datasources.NewMockDataSourceInterface(ctrl)
				mockConnector.EXPECT().
					GetData(gomock.Any(), "user1").
					Return(&types.User{Username: "MPASSOID.fresh", Roles: []types.Role{}, Attributes: []types.Attribute{}}, nil)
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().SourceForAttribute("dreamschool").Return("dreamschool", true)
				mockRegistry.EXPECT().Resolve("dreamschool").Return(mockConnector, nil)
				return mockRegistry
			},
			expectedUser: &types.User{
				Username:   "MPASSOID.fresh",
				Roles:      []types.Role{},
				Attributes: []types.Attribute{{Name: "dreamschool", Value: "user1"}},
			},
		},
		{
			name:   "Only the first parameter is honored",
			params: []Param{{Name: "facebook", Value: "fb1"}, {Name: "dreamschool", Value: "user1"}},
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetUserByAttribute(gomock.Any(), "facebook", "fb1").
					Return(nil, storage.ErrNotFound)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().SourceForAttribute("facebook").Return("", false)
				return mockRegistry
			},
			expectedError: ErrNoData,
		},
		{
			name:   "Local attribute match",
			params: []Param{{Name: "facebook", Value: "fb1"}},
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetUserByAttribute(gomock.Any(), "facebook", "fb1").
					Return(&types.LocalUser{ID: 2, Username: "someone"}, nil)
				mockStore.EXPECT().
					GetUserRoles(gomock.Any(), int64(2)).
					Return([]types.Role{}, nil)
				mockStore.EXPECT().
					ListUserAttributes(gomock.Any(), int64(2)).
					Return([]types.Attribute{{Name: "facebook", Value: "fb1"}}, nil)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().SourceForAttribute("facebook").Return("", false)
				return mockRegistry
			},
			expectedUser: &types.User{
				Username:   "someone",
				Roles:      []types.Role{},
				Attributes: []types.Attribute{{Name: "facebook", Value: "fb1"}},
			},
		},
		{
			name:   "Ambiguous attribute match behaves like no match",
			params: []Param{{Name: "facebook", Value: "shared"}},
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetUserByAttribute(gomock.Any(), "facebook", "shared").
					Return(nil, storage.ErrAmbiguousMatch)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().SourceForAttribute("facebook").Return("", false)
				return mockRegistry
			},
			expectedError: ErrNoData,
		},
		{
			name:     "Connector failure folds into not found",
			username: "MPASSOID.bound",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetUserByUsername(gomock.Any(), "MPASSOID.bound").
					Return(&types.LocalUser{ID: 5, Username: "MPASSOID.bound", ExternalSource: "wilma", ExternalID: "user1"}, nil)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockConnector := datasources.NewMockDataSourceInterface(ctrl)
				mockConnector.EXPECT().
					GetData(gomock.Any(), "user1").
					Return(nil, datasources.ErrRemoteUnavailable)
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().Resolve("wilma").Return(mockConnector, nil)
				return mockRegistry
			},
			expectedError: ErrNoData,
		},
		{
			name:     "External absence folds into not found",
			username: "MPASSOID.bound",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetUserByUsername(gomock.Any(), "MPASSOID.bound").
					Return(&types.LocalUser{ID: 5, Username: "MPASSOID.bound", ExternalSource: "wilma", ExternalID: "user1"}, nil)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockConnector := datasources.NewMockDataSourceInterface(ctrl)
				mockConnector.EXPECT().
					GetData(gomock.Any(), "user1").
					Return(nil, nil)
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().Resolve("wilma").Return(mockConnector, nil)
				return mockRegistry
			},
			expectedError: ErrNoData,
		},
		{
			name: "No username and no parameters",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				return NewMockStorageInterface(ctrl)
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				return datasources.NewMockRegistryInterface(ctrl)
			},
			expectedError: ErrNoData,
		},
		{
			name:     "Storage failure surfaces",
			username: "localuser",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetUserByUsername(gomock.Any(), "localuser").
					Return(nil, someErr)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				return datasources.NewMockRegistryInterface(ctrl)
			},
			expectedError: someErr,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newTestService(ctrl, test.mockedStore(ctrl), test.mockedRegistry(ctrl))

			user, err := s.ResolveUser(context.TODO(), test.username, test.params)

			if test.expectedError != nil {
				if !errors.Is(err, test.expectedError) {
					t.Fatalf("expected error %v, got %v", test.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !reflect.DeepEqual(user, test.expectedUser) {
				t.Fatalf("expected user %+v, got %+v", test.expectedUser, user)
			}
		})
	}
}

func TestServiceListUsers(t *testing.T) {
	external := types.NewUserList([]*types.User{{Username: "MPASSOID.one", Roles: []types.Role{}, Attributes: []types.Attribute{}}})

	tests := []struct {
		name   string
		filter *storage.UserFilter

		mockedStore    func(*gomock.Controller) StorageInterface
		mockedRegistry func(*gomock.Controller) datasources.RegistryInterface

		expectedCount   int
		expectedResults int
	}{
		{
			name:   "Bound municipality listed from its source",
			filter: &storage.UserFilter{Municipality: "City", School: "School A", Group: "7A"},
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				return NewMockStorageInterface(ctrl)
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockConnector := datasources.NewMockDataSourceInterface(ctrl)
				mockConnector.EXPECT().
					GetUserData(gomock.Any(), &datasources.Query{Municipality: "City", School: "School A", Group: "7A"}).
					Return(external, nil)
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().SourceForMunicipality("City").Return("dreamschool", true)
				mockRegistry.EXPECT().Resolve("dreamschool").Return(mockConnector, nil)
				return mockRegistry
			},
			expectedCount:   1,
			expectedResults: 1,
		},
		{
			name:   "Source resolution failure falls back to the local store",
			filter: &storage.UserFilter{Municipality: "City"},
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					ListUsers(gomock.Any(), gomock.Any()).
					Return([]*types.LocalUser{}, 0, nil)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().SourceForMunicipality("City").Return("dreamschool", true)
				mockRegistry.EXPECT().Resolve("dreamschool").Return(nil, datasources.ErrConnectorLoad)
				return mockRegistry
			},
		},
		{
			name:   "Listing failure yields an empty listing",
			filter: &storage.UserFilter{Municipality: "Wilmatown"},
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				return NewMockStorageInterface(ctrl)
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockConnector := datasources.NewMockDataSourceInterface(ctrl)
				mockConnector.EXPECT().
					GetUserData(gomock.Any(), gomock.Any()).
					Return(nil, datasources.ErrNotSupported)
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().SourceForMunicipality("Wilmatown").Return("wilma", true)
				mockRegistry.EXPECT().Resolve("wilma").Return(mockConnector, nil)
				return mockRegistry
			},
		},
		{
			name:   "Unbound municipality listed locally",
			filter: &storage.UserFilter{Municipality: "Elsewhere"},
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					ListUsers(gomock.Any(), gomock.Any()).
					Return([]*types.LocalUser{{ID: 1, Username: "localuser"}}, 42, nil)
				mockStore.EXPECT().
					GetUserRoles(gomock.Any(), int64(1)).
					Return([]types.Role{}, nil)
				mockStore.EXPECT().
					ListUserAttributes(gomock.Any(), int64(1)).
					Return([]types.Attribute{}, nil)
				return mockStore
			},
			mockedRegistry: func(ctrl *gomock.Controller) datasources.RegistryInterface {
				mockRegistry := datasources.NewMockRegistryInterface(ctrl)
				mockRegistry.EXPECT().SourceForMunicipality("Elsewhere").Return("", false)
				return mockRegistry
			},
			expectedCount:   42,
			expectedResults: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := newTestService(ctrl, test.mockedStore(ctrl), test.mockedRegistry(ctrl))

			list, err := s.ListUsers(context.TODO(), test.filter)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if list.Count != test.expectedCount {
				t.Fatalf("expected count %d, got %d", test.expectedCount, list.Count)
			}
			if len(list.Results) != test.expectedResults {
				t.Fatalf("expected %d results, got %d", test.expectedResults, len(list.Results))
			}
			if list.Next != nil || list.Previous != nil {
				t.Fatal("expected next and previous to stay null")
			}
		})
	}
}
