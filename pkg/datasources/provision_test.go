// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"
	"errors"
	"testing"

	trace "go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/mpassid/authdata-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package datasources -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package datasources -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package datasources -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package datasources -destination ./mock_datasources.go -source=./interfaces.go

func TestProvisionerProvision(t *testing.T) {
	err := errors.New("some error")
	tests := []struct {
		name string

		mockedStore func(*gomock.Controller) StorageInterface

		expectedError bool
	}{
		{
			name: "New user",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetOrCreateUser(gomock.Any(), "MPASSOID.abc", "dreamschool", "123").
					Return(&types.LocalUser{ID: 7, Username: "MPASSOID.abc"}, true, nil)
				mockStore.EXPECT().
					UpsertUserAttribute(gomock.Any(), int64(7), "dreamschool", "123", "local").
					Return(nil)
				return mockStore
			},
		},
		{
			name: "Existing user",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetOrCreateUser(gomock.Any(), "MPASSOID.abc", "dreamschool", "123").
					Return(&types.LocalUser{ID: 7, Username: "MPASSOID.abc"}, false, nil)
				mockStore.EXPECT().
					UpsertUserAttribute(gomock.Any(), int64(7), "dreamschool", "123", "local").
					Return(nil)
				return mockStore
			},
		},
		{
			name: "Upsert failure",
			mockedStore: func(ctrl *gomock.Controller) StorageInterface {
				mockStore := NewMockStorageInterface(ctrl)
				mockStore.EXPECT().
					GetOrCreateUser(gomock.Any(), "MPASSOID.abc", "dreamschool", "123").
					Return(nil, false, err)
				return mockStore
			},
			expectedError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLogger := NewMockLoggerInterface(ctrl)
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "datasources.Provisioner.Provision").Times(1).Return(context.TODO(), trace.SpanFromContext(context.TODO()))

			p := NewProvisioner(test.mockedStore(ctrl), mockTracer, mockMonitor, mockLogger)

			err := p.Provision(context.TODO(), "dreamschool", "MPASSOID.abc", "123")

			if test.expectedError && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !test.expectedError && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

// Two identical provisioning calls converge on the same single user record
// and the same single attribute row.
func TestProvisionerProvisionIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "datasources.Provisioner.Provision").Times(2).Return(context.TODO(), trace.SpanFromContext(context.TODO()))

	mockStore := NewMockStorageInterface(ctrl)
	gomock.InOrder(
		mockStore.EXPECT().
			GetOrCreateUser(gomock.Any(), "MPASSOID.abc", "wilma", "user1").
			Return(&types.LocalUser{ID: 3, Username: "MPASSOID.abc"}, true, nil),
		mockStore.EXPECT().
			GetOrCreateUser(gomock.Any(), "MPASSOID.abc", "wilma", "user1").
			Return(&types.LocalUser{ID: 3, Username: "MPASSOID.abc"}, false, nil),
	)
	mockStore.EXPECT().
		UpsertUserAttribute(gomock.Any(), int64(3), "wilma", "user1", "local").
		Times(2).
		Return(nil)

	p := NewProvisioner(mockStore, mockTracer, mockMonitor, mockLogger)

	for i := 0; i < 2; i++ {
		if err := p.Provision(context.TODO(), "wilma", "MPASSOID.abc", "user1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
}
