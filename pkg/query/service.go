// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package query

import (
	"context"
	"errors"

	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring"
	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/tracing"
	"github.com/mpassid/authdata-service/internal/types"
	"github.com/mpassid/authdata-service/pkg/datasources"
)

// ErrNoData is the single user-visible failure of a query. Absence, ambiguity
// and every connector-level error all fold into it, callers depend on the
// resulting not-found status and must never see a raw transport error.
var ErrNoData = errors.New("no data for query")

// Service is the query resolution engine. It decides local-vs-external lookup
// order, merges locally stored attribute overlays onto external payloads and
// enforces at-most-one-result semantics.
type Service struct {
	store    StorageInterface
	registry datasources.RegistryInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ResolveUser answers a single-user query. The username path parameter is
// consulted first, then exactly one GET parameter. Of multiple GET parameters
// only the first is honored.
func (s *Service) ResolveUser(ctx context.Context, username string, params []Param) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "query.Service.ResolveUser")
	defer span.End()

	if username != "" {
		user, err := s.store.GetUserByUsername(ctx, username)
		if err != nil && err != storage.ErrNotFound {
			return nil, err
		}
		if user != nil {
			if user.Bound() {
				return s.resolveExternal(ctx, user.ExternalSource, user.ExternalID, user.ID)
			}
			return s.renderLocal(ctx, user)
		}
	}

	if len(params) == 0 {
		return nil, ErrNoData
	}
	param := params[0]

	if source, ok := s.registry.SourceForAttribute(param.Name); ok {
		return s.resolveExternal(ctx, source, param.Value, 0)
	}

	user, err := s.store.GetUserByAttribute(ctx, param.Name, param.Value)
	if err == storage.ErrNotFound || err == storage.ErrAmbiguousMatch {
		// More than one match behaves exactly like no match.
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}

	return s.renderLocal(ctx, user)
}

// resolveExternal fetches a user live from an external source and merges the
// shadow record's attribute overlays into the payload. Every connector-level
// failure is logged and converted to ErrNoData. When userID is zero the
// shadow record is looked up by the returned username after the fetch, so
// overlays stored on it, including the binding row written by provisioning,
// are part of the response.
func (s *Service) resolveExternal(ctx context.Context, source, externalID string, userID int64) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "query.Service.resolveExternal")
	defer span.End()

	connector, err := s.registry.Resolve(source)
	if err != nil {
		s.logger.Errorf("failed to resolve source %s: %v", source, err)
		return nil, ErrNoData
	}

	user, err := connector.GetData(ctx, externalID)
	if err != nil {
		s.logger.Errorf("failed to fetch user from source %s: %v", source, err)
		return nil, ErrNoData
	}
	if user == nil {
		return nil, ErrNoData
	}

	if userID == 0 {
		shadow, err := s.store.GetUserByUsername(ctx, user.Username)
		if err != nil {
			s.logger.Errorf("shadow record missing after fetch from %s: %v", source, err)
			return nil, ErrNoData
		}
		userID = shadow.ID
	}

	overlays, err := s.store.ListUserAttributes(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Attributes = append(user.Attributes, overlays...)

	return user, nil
}

// renderLocal serializes a user whose data of record is the local store.
func (s *Service) renderLocal(ctx context.Context, user *types.LocalUser) (*types.User, error) {
	roles, err := s.store.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	attributes, err := s.store.ListUserAttributes(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &types.User{
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Roles:      roles,
		Attributes: attributes,
	}, nil
}

// ListUsers answers a roster query. A municipality bound to an external
// source is listed live from that source, everything else is a filtered local
// listing.
func (s *Service) ListUsers(ctx context.Context, filter *storage.UserFilter) (*types.UserList, error) {
	ctx, span := s.tracer.Start(ctx, "query.Service.ListUsers")
	defer span.End()

	if filter == nil {
		filter = &storage.UserFilter{}
	}

	if filter.Municipality != "" {
		if source, ok := s.registry.SourceForMunicipality(filter.Municipality); ok {
			connector, err := s.registry.Resolve(source)
			if err != nil {
				s.logger.Errorf("failed to resolve source %s: %v", source, err)
				return s.listLocal(ctx, filter)
			}

			list, err := connector.GetUserData(ctx, &datasources.Query{
				Municipality: filter.Municipality,
				School:       filter.School,
				Group:        filter.Group,
			})
			if err != nil {
				s.logger.Errorf("failed to list users from source %s: %v", source, err)
				return types.NewUserList(nil), nil
			}
			return list, nil
		}
	}

	return s.listLocal(ctx, filter)
}

func (s *Service) listLocal(ctx context.Context, filter *storage.UserFilter) (*types.UserList, error) {
	users, count, err := s.store.ListUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]*types.User, 0, len(users))
	for _, user := range users {
		rendered, err := s.renderLocal(ctx, user)
		if err != nil {
			return nil, err
		}
		results = append(results, rendered)
	}

	list := types.NewUserList(results)
	list.Count = count
	return list, nil
}

func NewService(store StorageInterface, registry datasources.RegistryInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store
	s.registry = registry

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
