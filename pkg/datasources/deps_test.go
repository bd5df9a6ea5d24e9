// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestSetAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	// The gauge is registered with a component label, anything else is
	// rejected by the monitor.
	mockMonitor.EXPECT().
		SetDependencyAvailability(map[string]string{"component": "wilma"}, 1.0).
		Return(nil)

	d := &connectorDeps{monitor: mockMonitor, logger: mockLogger}
	d.setAvailability("wilma", 1)
}

func TestSetAvailabilityMonitorFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).Times(1)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockMonitor.EXPECT().
		SetDependencyAvailability(map[string]string{"component": "wilma"}, 0.0).
		Return(errors.New("gauge error"))

	d := &connectorDeps{monitor: mockMonitor, logger: mockLogger}
	d.setAvailability("wilma", 0)
}
