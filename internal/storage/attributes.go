// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mpassid/authdata-service/internal/types"
)

// ListUserAttributes retrieves the non-disabled attribute overlays of a user
// in the canonical attribute shape.
func (s *Storage) ListUserAttributes(ctx context.Context, userID int64) ([]types.Attribute, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListUserAttributes")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("a.name", "ua.value").
		From("user_attributes ua").
		Join("attributes a ON a.id = ua.attribute_id").
		Where(sq.Eq{"ua.user_id": userID}).
		Where("ua.disabled_at IS NULL").
		OrderBy("ua.id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query user attributes: %v", err)
	}
	defer rows.Close()

	attributes := make([]types.Attribute, 0)
	for rows.Next() {
		var attr types.Attribute
		if err := rows.Scan(&attr.Name, &attr.Value); err != nil {
			return nil, fmt.Errorf("failed to scan user attribute: %v", err)
		}
		attributes = append(attributes, attr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user attributes: %v", err)
	}

	return attributes, nil
}

// ListUserAttributeRows retrieves full non-disabled attribute rows for the
// administrative API.
func (s *Storage) ListUserAttributeRows(ctx context.Context, filter *AttributeFilter) ([]*types.UserAttribute, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListUserAttributeRows")
	defer span.End()

	if filter == nil {
		filter = &AttributeFilter{}
	}

	builder := s.db.Statement(ctx).
		Select("ua.id", "ua.user_id", "a.name", "ua.value", "src.name", "ua.disabled_at", "ua.created_at", "ua.updated_at").
		From("user_attributes ua").
		Join("attributes a ON a.id = ua.attribute_id").
		Join("sources src ON src.id = ua.source_id").
		Where("ua.disabled_at IS NULL").
		OrderBy("ua.id ASC")

	if filter.Username != "" {
		builder = builder.
			Join("users u ON u.id = ua.user_id").
			Where(sq.Eq{"u.username": filter.Username})
	}
	if filter.Attribute != "" {
		builder = builder.Where(sq.Eq{"a.name": filter.Attribute})
	}

	rows, err := builder.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query user attribute rows: %v", err)
	}
	defer rows.Close()

	attributes := make([]*types.UserAttribute, 0)
	for rows.Next() {
		attr := &types.UserAttribute{}
		err := rows.Scan(
			&attr.ID,
			&attr.UserID,
			&attr.Name,
			&attr.Value,
			&attr.DataSource,
			&attr.DisabledAt,
			&attr.CreatedAt,
			&attr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user attribute row: %v", err)
		}
		attributes = append(attributes, attr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user attribute rows: %v", err)
	}

	return attributes, nil
}

// UpsertUserAttribute ensures exactly one attribute row exists for the
// (user, attribute, data source) triple, creating the attribute and source
// registry rows on demand.
func (s *Storage) UpsertUserAttribute(ctx context.Context, userID int64, name, value, dataSource string) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.UpsertUserAttribute")
	defer span.End()

	attributeID, err := s.getOrCreateByName(ctx, "attributes", name)
	if err != nil {
		return err
	}

	sourceID, err := s.getOrCreateByName(ctx, "sources", dataSource)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.db.Statement(ctx).
		Insert("user_attributes").
		Columns("user_id", "attribute_id", "value", "source_id", "created_at", "updated_at").
		Values(userID, attributeID, value, sourceID, now, now).
		Suffix("ON CONFLICT (user_id, attribute_id, source_id) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ExecContext(ctx)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return WrapForeignKeyError(err, "user does not exist")
		}
		return fmt.Errorf("failed to upsert user attribute: %v", err)
	}

	return nil
}

// DisableUserAttribute soft deletes an attribute row. The row stays in place
// with disabled_at set, hard deletes are an administrative operation outside
// this service.
func (s *Storage) DisableUserAttribute(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.DisableUserAttribute")
	defer span.End()

	result, err := s.db.Statement(ctx).
		Update("user_attributes").
		Set("disabled_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Where("disabled_at IS NULL").
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to disable user attribute: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
