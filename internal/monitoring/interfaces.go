// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package monitoring

import "net/http"

type MonitorInterface interface {
	GetService() string
	SetResponseTimeMetric(labels map[string]string, value float64) error
	SetDependencyAvailability(labels map[string]string, value float64) error
}

type MiddlewareInterface interface {
	ResponseTime() func(http.Handler) http.Handler
}
