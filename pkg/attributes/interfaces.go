// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package attributes

import (
	"context"

	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/types"
)

// ServiceInterface manages locally stored attribute overlays.
type ServiceInterface interface {
	ListAttributes(ctx context.Context, filter *storage.AttributeFilter) ([]*types.UserAttribute, error)
	CreateAttribute(ctx context.Context, username, name, value, dataSource string) error
	DisableAttribute(ctx context.Context, id int64) error
}

// StorageInterface is the slice of the record store the attribute service
// writes through.
type StorageInterface interface {
	GetUserByUsername(ctx context.Context, username string) (*types.LocalUser, error)
	ListUserAttributeRows(ctx context.Context, filter *storage.AttributeFilter) ([]*types.UserAttribute, error)
	UpsertUserAttribute(ctx context.Context, userID int64, name, value, dataSource string) error
	DisableUserAttribute(ctx context.Context, id int64) error
}
