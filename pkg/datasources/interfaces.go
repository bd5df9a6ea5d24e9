// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package datasources

import (
	"context"

	"github.com/mpassid/authdata-service/internal/types"
)

// Query carries the source-specific filter parameters of a listing query.
type Query struct {
	Municipality string
	School       string
	Group        string
}

// DataSourceInterface is the capability set every external data source
// implements.
//
// GetData returns (nil, nil) when the external system reports no such user,
// absence is not a failure. GetUserData returns ErrNotSupported on sources
// that cannot list. Both provision a local shadow record for every user they
// return, before returning it.
type DataSourceInterface interface {
	GetOID(externalID string) string
	GetData(ctx context.Context, externalID string) (*types.User, error)
	GetUserData(ctx context.Context, query *Query) (*types.UserList, error)
}

// ProvisionerInterface is the shared provisioning routine. Provision upserts
// the local shadow user and ensures exactly one attribute row recording the
// (source, external id) binding. It is idempotent.
type ProvisionerInterface interface {
	Provision(ctx context.Context, source, oid, externalID string) error
}

// RegistryInterface resolves a configured source name into a freshly
// constructed connector. No connector state is shared across requests.
type RegistryInterface interface {
	Resolve(source string) (DataSourceInterface, error)
	SourceForAttribute(name string) (string, bool)
	SourceForMunicipality(name string) (string, bool)
}

// StorageInterface is the slice of the record store the provisioner needs.
type StorageInterface interface {
	GetOrCreateUser(ctx context.Context, username, externalSource, externalID string) (*types.LocalUser, bool, error)
	UpsertUserAttribute(ctx context.Context, userID int64, name, value, dataSource string) error
}
