// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package importer

import (
	"context"

	"github.com/mpassid/authdata-service/internal/types"
)

// RosterRecord is one imported user with its school attendance and its
// queryable attributes.
type RosterRecord struct {
	Username   string
	School     string
	Group      string
	Role       string
	FirstName  string
	LastName   string
	Attributes []types.Attribute
}

// DriverInterface produces roster records from an external bulk source.
type DriverInterface interface {
	FetchAllRecords(ctx context.Context) ([]*RosterRecord, error)
}
