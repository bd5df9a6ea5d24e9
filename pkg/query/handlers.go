// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package query

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mpassid/authdata-service/internal/http/types"
	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/storage"
)

// API serves the query endpoints consumed by the authentication proxy: a
// single-user resolution endpoint and a roster listing endpoint.
type API struct {
	service ServiceInterface

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v1/query", a.handleQuery)
	mux.Get("/api/v1/query/{username}", a.handleQuery)
	mux.Get("/api/v1/user", a.handleListUsers)
}

func (a *API) handleQuery(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	// Parameter order matters, only the first one is honored. The parsed
	// url.Values map loses ordering so the raw query is walked instead.
	params := parseOrderedParams(r.URL.RawQuery)

	user, err := a.service.ResolveUser(r.Context(), username, params)
	if err == ErrNoData {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusNotFound,
				Message: "user not found",
			},
		)
		return
	}
	if err != nil {
		a.logger.Errorf("failed to resolve user: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: "failed to resolve user",
			},
		)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	filter := &storage.UserFilter{
		Username:     r.URL.Query().Get("username"),
		Municipality: r.URL.Query().Get("municipality"),
		School:       r.URL.Query().Get("school"),
		Group:        r.URL.Query().Get("group"),
	}
	if page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil {
		filter.Page = page
	}
	if size, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 64); err == nil {
		filter.PageSize = size
	}

	list, err := a.service.ListUsers(r.Context(), filter)
	if err != nil {
		a.logger.Errorf("failed to list users: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: "failed to list users",
			},
		)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(list)
}

// parseOrderedParams decodes a raw query string preserving parameter order.
func parseOrderedParams(rawQuery string) []Param {
	params := make([]Param, 0)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		decodedName, err := url.QueryUnescape(name)
		if err != nil {
			continue
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		params = append(params, Param{Name: decodedName, Value: decodedValue})
	}
	return params
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service

	a.logger = logger

	return a
}
