// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package query

import (
	"context"

	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/types"
)

// Param is one GET parameter of a single-user query, in request order.
type Param struct {
	Name  string
	Value string
}

// ServiceInterface resolves identity queries against the local record store
// and the configured external sources.
type ServiceInterface interface {
	ResolveUser(ctx context.Context, username string, params []Param) (*types.User, error)
	ListUsers(ctx context.Context, filter *storage.UserFilter) (*types.UserList, error)
}

// StorageInterface is the slice of the record store the resolution engine
// reads from.
type StorageInterface interface {
	GetUserByUsername(ctx context.Context, username string) (*types.LocalUser, error)
	GetUserByAttribute(ctx context.Context, name, value string) (*types.LocalUser, error)
	ListUsers(ctx context.Context, filter *storage.UserFilter) ([]*types.LocalUser, int, error)
	GetUserRoles(ctx context.Context, userID int64) ([]types.Role, error)
	ListUserAttributes(ctx context.Context, userID int64) ([]types.Attribute, error)
}
