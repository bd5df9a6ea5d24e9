// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import "errors"

var (
	// ErrRemoteUnavailable signals a transport failure or a non-success
	// status from the external system.
	ErrRemoteUnavailable = errors.New("external source unavailable")

	// ErrMalformedResponse signals a body that cannot be parsed into the
	// expected schema.
	ErrMalformedResponse = errors.New("malformed response from external source")

	// ErrNotSupported signals a capability a given source does not implement.
	ErrNotSupported = errors.New("operation not supported by this source")

	// ErrUnknownSource signals a source name absent from the binding
	// configuration.
	ErrUnknownSource = errors.New("unknown external source")

	// ErrConnectorLoad signals a configured connector that cannot be
	// constructed.
	ErrConnectorLoad = errors.New("failed to construct connector")
)
