// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mpassid/authdata-service/internal/db"
	"github.com/mpassid/authdata-service/internal/types"
)

const userColumns = "id, username, first_name, last_name, external_source, external_id, created_at, updated_at"

// GetUserByUsername retrieves a single user by its canonical username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*types.LocalUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetUserByUsername")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns).
		From("users").
		Where(sq.Eq{"username": username}).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %v", err)
	}

	return user, nil
}

// GetUserByAttribute retrieves the single user holding a non-disabled
// attribute with the given name and value. Zero matches yield ErrNotFound,
// more than one yields ErrAmbiguousMatch.
func (s *Storage) GetUserByAttribute(ctx context.Context, name, value string) (*types.LocalUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetUserByAttribute")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("DISTINCT u.id, u.username, u.first_name, u.last_name, u.external_source, u.external_id, u.created_at, u.updated_at").
		From("users u").
		Join("user_attributes ua ON ua.user_id = u.id").
		Join("attributes a ON a.id = ua.attribute_id").
		Where(sq.Eq{"a.name": name, "ua.value": value}).
		Where("ua.disabled_at IS NULL").
		Limit(2).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by attribute: %v", err)
	}
	defer rows.Close()

	users := make([]*types.LocalUser, 0, 2)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %v", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %v", err)
	}

	switch len(users) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return users[0], nil
	default:
		return nil, ErrAmbiguousMatch
	}
}

// GetOrCreateUser upserts a shadow user record keyed by username, recording
// its external binding. The upsert is idempotent under concurrent identical
// calls, uniqueness is enforced on the username key.
func (s *Storage) GetOrCreateUser(ctx context.Context, username, externalSource, externalID string) (*types.LocalUser, bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetOrCreateUser")
	defer span.End()

	now := time.Now().UTC()

	row := s.db.Statement(ctx).
		Insert("users").
		Columns("username", "external_source", "external_id", "created_at", "updated_at").
		Values(username, externalSource, externalID, now, now).
		Suffix("ON CONFLICT (username) DO UPDATE SET external_source = EXCLUDED.external_source, external_id = EXCLUDED.external_id, updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING " + userColumns + ", (xmax = 0) AS created").
		QueryRowContext(ctx)

	user := &types.LocalUser{}
	var created bool
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.ExternalSource,
		&user.ExternalID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&created,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert user: %v", err)
	}

	return user, created, nil
}

// EnsureUser upserts a plain local user without touching its external
// binding. Used by administrative imports.
func (s *Storage) EnsureUser(ctx context.Context, username, firstName, lastName string) (*types.LocalUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.EnsureUser")
	defer span.End()

	now := time.Now().UTC()

	row := s.db.Statement(ctx).
		Insert("users").
		Columns("username", "first_name", "last_name", "created_at", "updated_at").
		Values(username, firstName, lastName, now, now).
		Suffix("ON CONFLICT (username) DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING " + userColumns).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %v", err)
	}

	return user, nil
}

// ListUsers retrieves a filtered, paginated page of local users together with
// the unpaginated match count.
func (s *Storage) ListUsers(ctx context.Context, filter *UserFilter) ([]*types.LocalUser, int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListUsers")
	defer span.End()

	if filter == nil {
		filter = &UserFilter{}
	}

	base := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Municipality != "" || filter.School != "" || filter.Group != "" {
			b = b.Join("attendances at ON at.user_id = u.id").
				Join("schools sc ON sc.id = at.school_id").
				Join("municipalities m ON m.id = sc.municipality_id")
		}
		if filter.Username != "" {
			b = b.Where(sq.Eq{"u.username": filter.Username})
		}
		if filter.Municipality != "" {
			b = b.Where("lower(m.name) = lower(?)", filter.Municipality)
		}
		if filter.School != "" {
			b = b.Where("lower(sc.name) = lower(?)", filter.School)
		}
		if filter.Group != "" {
			b = b.Where("lower(at.group_name) = lower(?)", filter.Group)
		}
		return b
	}

	var count int
	err := base(s.db.Statement(ctx).Select("COUNT(DISTINCT u.id)").From("users u")).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %v", err)
	}

	pageSize := db.PageSize(filter.PageSize)
	rows, err := base(s.db.Statement(ctx).
		Select("DISTINCT u.id, u.username, u.first_name, u.last_name, u.external_source, u.external_id, u.created_at, u.updated_at").
		From("users u")).
		OrderBy("u.username ASC").
		Offset(db.Offset(filter.Page, pageSize)).
		Limit(pageSize).
		QueryContext(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %v", err)
	}
	defer rows.Close()

	users := make([]*types.LocalUser, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %v", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %v", err)
	}

	return users, count, nil
}

// GetUserRoles retrieves the attendance rows of a local user in the canonical
// role shape. School and municipality are reported by their registry codes.
func (s *Storage) GetUserRoles(ctx context.Context, userID int64) ([]types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetUserRoles")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("sc.school_id", "r.name", "at.group_name", "m.municipality_id").
		From("attendances at").
		Join("schools sc ON sc.id = at.school_id").
		Join("municipalities m ON m.id = sc.municipality_id").
		Join("roles r ON r.id = at.role_id").
		Where(sq.Eq{"at.user_id": userID}).
		OrderBy("at.id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %v", err)
	}
	defer rows.Close()

	roles := make([]types.Role, 0)
	for rows.Next() {
		var role types.Role
		var roleName string
		if err := rows.Scan(&role.School, &roleName, &role.Group, &role.Municipality); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %v", err)
		}
		if parsed, ok := types.ParseRoleType(roleName); ok {
			role.Role = parsed
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendances: %v", err)
	}

	return roles, nil
}

// AddAttendance records a user's membership in a school, creating the
// municipality, school and role rows on demand.
func (s *Storage) AddAttendance(ctx context.Context, entry *RosterEntry) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.AddAttendance")
	defer span.End()

	user, err := s.EnsureUser(ctx, entry.Username, entry.FirstName, entry.LastName)
	if err != nil {
		return err
	}

	sourceID, err := s.getOrCreateByName(ctx, "sources", entry.Source)
	if err != nil {
		return err
	}

	var municipalityID int64
	err = s.db.Statement(ctx).
		Insert("municipalities").
		Columns("name", "source_id").
		Values(entry.Municipality, sourceID).
		Suffix("ON CONFLICT (name) DO UPDATE SET updated_at = now()").
		Suffix("RETURNING id").
		QueryRowContext(ctx).
		Scan(&municipalityID)
	if err != nil {
		return fmt.Errorf("failed to upsert municipality: %v", err)
	}

	var schoolID int64
	err = s.db.Statement(ctx).
		Insert("schools").
		Columns("name", "school_id", "municipality_id", "source_id").
		Values(entry.School, entry.SchoolID, municipalityID, sourceID).
		Suffix("ON CONFLICT (name, municipality_id) DO UPDATE SET updated_at = now()").
		Suffix("RETURNING id").
		QueryRowContext(ctx).
		Scan(&schoolID)
	if err != nil {
		return fmt.Errorf("failed to upsert school: %v", err)
	}

	roleID, err := s.getOrCreateByName(ctx, "roles", entry.Role)
	if err != nil {
		return err
	}

	_, err = s.db.Statement(ctx).
		Insert("attendances").
		Columns("user_id", "school_id", "role_id", "group_name", "source_id").
		Values(user.ID, schoolID, roleID, entry.Group, sourceID).
		Suffix("ON CONFLICT (user_id, school_id, role_id, group_name) DO NOTHING").
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert attendance: %v", err)
	}

	return nil
}

// getOrCreateByName upserts a row in one of the (id, name) registry tables
// and returns its id.
func (s *Storage) getOrCreateByName(ctx context.Context, table, name string) (int64, error) {
	var id int64
	err := s.db.Statement(ctx).
		Insert(table).
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET updated_at = now()").
		Suffix("RETURNING id").
		QueryRowContext(ctx).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert %s row: %v", table, err)
	}
	return id, nil
}

func scanUser(row interface{ Scan(...interface{}) error }) (*types.LocalUser, error) {
	user := &types.LocalUser{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.ExternalSource,
		&user.ExternalID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
