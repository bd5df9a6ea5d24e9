// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package types

// Response is the generic envelope for administrative endpoints. The query
// and listing endpoints use the canonical payload shapes from internal/types
// instead, those are part of the wire contract with the auth proxy.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
