// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package config

import "time"

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"false"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	ApiToken string `envconfig:"api_token" default:""`

	// SourcesFile points at the source binding configuration, see
	// config.LoadSourceBindings. The process refuses to start without a
	// parseable bindings file.
	SourcesFile string `envconfig:"sources_file" default:"sources.json"`

	DSN               string        `envconfig:"DSN" default:""`
	DBMaxConns        int32         `envconfig:"db_max_conns" default:"10"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"1"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`
}
