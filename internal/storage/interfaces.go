// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package storage

import (
	"context"

	"github.com/mpassid/authdata-service/internal/types"
)

// UserFilter narrows a local user listing. String filters are
// case-insensitive exact matches against the attendance joins.
type UserFilter struct {
	Username     string
	Municipality string
	School       string
	Group        string
	Page         int64
	PageSize     int64
}

// AttributeFilter narrows a user attribute listing.
type AttributeFilter struct {
	Username  string
	Attribute string
}

// RosterEntry is one provisioned attendance row, used by the CSV importer.
type RosterEntry struct {
	Username     string
	FirstName    string
	LastName     string
	School       string
	SchoolID     string
	Municipality string
	Group        string
	Role         string
	Source       string
}

type StorageInterface interface {
	// User lookups
	GetUserByUsername(ctx context.Context, username string) (*types.LocalUser, error)
	GetUserByAttribute(ctx context.Context, name, value string) (*types.LocalUser, error)
	GetOrCreateUser(ctx context.Context, username, externalSource, externalID string) (*types.LocalUser, bool, error)
	EnsureUser(ctx context.Context, username, firstName, lastName string) (*types.LocalUser, error)
	ListUsers(ctx context.Context, filter *UserFilter) ([]*types.LocalUser, int, error)
	GetUserRoles(ctx context.Context, userID int64) ([]types.Role, error)

	// Attribute overlays
	ListUserAttributes(ctx context.Context, userID int64) ([]types.Attribute, error)
	ListUserAttributeRows(ctx context.Context, filter *AttributeFilter) ([]*types.UserAttribute, error)
	UpsertUserAttribute(ctx context.Context, userID int64, name, value, dataSource string) error
	DisableUserAttribute(ctx context.Context, id int64) error

	// Roster provisioning
	AddAttendance(ctx context.Context, entry *RosterEntry) error
}
