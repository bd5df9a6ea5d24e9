// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package importer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package importer -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package importer -destination ./mock_driver.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package importer -destination ./mock_storage.go -source=./importer.go

func newQuietLogger(ctrl *gomock.Controller) *MockLoggerInterface {
	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	return mockLogger
}

func TestImporterRun(t *testing.T) {
	records := []*RosterRecord{
		{
			Username:  "teacher1",
			School:    "School A",
			Group:     "7A",
			Role:      "Opettaja",
			FirstName: "Foo",
			LastName:  "Bar",
			Attributes: []types.Attribute{
				{Name: "legacyId", Value: "crypt-1"},
			},
		},
		{
			Username:  "visitor1",
			School:    "School A",
			Group:     "7A",
			Role:      "Janitor",
			FirstName: "Skip",
			LastName:  "Me",
		},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDriver := NewMockDriverInterface(ctrl)
	mockDriver.EXPECT().FetchAllRecords(gomock.Any()).Return(records, nil)

	mockStore := NewMockStorageInterface(ctrl)
	// Only the teacher row reaches storage, the unrecognized role is skipped.
	mockStore.EXPECT().
		AddAttendance(gomock.Any(), &storage.RosterEntry{
			Username:     "teacher1",
			FirstName:    "Foo",
			LastName:     "Bar",
			School:       "School A",
			SchoolID:     "School A",
			Municipality: "City",
			Group:        "7A",
			Role:         "teacher",
			Source:       "manual",
		}).
		Return(nil)
	mockStore.EXPECT().
		GetUserByUsername(gomock.Any(), "teacher1").
		Return(&types.LocalUser{ID: 8, Username: "teacher1"}, nil)
	mockStore.EXPECT().
		UpsertUserAttribute(gomock.Any(), int64(8), "legacyId", "crypt-1", "manual").
		Return(nil)

	i := NewImporter(mockDriver, mockStore, "manual", "City", false, newQuietLogger(ctrl))

	if err := i.Run(context.TODO()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestImporterRunDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDriver := NewMockDriverInterface(ctrl)
	mockDriver.EXPECT().FetchAllRecords(gomock.Any()).Return([]*RosterRecord{
		{Username: "student1", School: "School A", Group: "7A", Role: "Oppilas"},
	}, nil)

	// Dry run must not touch storage at all.
	mockStore := NewMockStorageInterface(ctrl)

	i := NewImporter(mockDriver, mockStore, "manual", "City", true, newQuietLogger(ctrl))

	if err := i.Run(context.TODO()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestImporterRunDriverFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDriver := NewMockDriverInterface(ctrl)
	mockDriver.EXPECT().FetchAllRecords(gomock.Any()).Return(nil, errors.New("some error"))

	i := NewImporter(mockDriver, NewMockStorageInterface(ctrl), "manual", "City", false, newQuietLogger(ctrl))

	if err := i.Run(context.TODO()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestImporterRunContinuesPastStorageFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDriver := NewMockDriverInterface(ctrl)
	mockDriver.EXPECT().FetchAllRecords(gomock.Any()).Return([]*RosterRecord{
		{Username: "student1", School: "School A", Group: "7A", Role: "student"},
		{Username: "student2", School: "School A", Group: "7A", Role: "student"},
	}, nil)

	mockStore := NewMockStorageInterface(ctrl)
	mockStore.EXPECT().
		AddAttendance(gomock.Any(), gomock.Any()).
		Return(errors.New("some error"))
	mockStore.EXPECT().
		AddAttendance(gomock.Any(), gomock.Any()).
		Return(nil)
	mockStore.EXPECT().
		GetUserByUsername(gomock.Any(), "student2").
		Return(&types.LocalUser{ID: 2, Username: "student2"}, nil)

	i := NewImporter(mockDriver, mockStore, "manual", "City", false, newQuietLogger(ctrl))

	if err := i.Run(context.TODO()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
