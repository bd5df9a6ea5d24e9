// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package attributes

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mpassid/authdata-service/internal/http/types"
	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/storage"
)

type createRequest struct {
	User       string `json:"user" validate:"required"`
	Attribute  string `json:"attribute" validate:"required"`
	Value      string `json:"value" validate:"required"`
	DataSource string `json:"data_source" validate:"required"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v1/userattribute", a.handleList)
	mux.Post("/api/v1/userattribute", a.handleCreate)
	mux.Delete("/api/v1/userattribute/{id:[0-9]+}", a.handleDelete)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	filter := &storage.AttributeFilter{
		Username:  r.URL.Query().Get("user"),
		Attribute: r.URL.Query().Get("attribute"),
	}

	attributes, err := a.service.ListAttributes(r.Context(), filter)
	if err != nil {
		a.logger.Errorf("failed to list user attributes: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: "failed to list user attributes",
			},
		)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(
		types.Response{
			Status:  http.StatusOK,
			Message: "List of user attributes",
			Data:    attributes,
		},
	)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusBadRequest,
				Message: "failed to read request body",
			},
		)
		return
	}

	request := new(createRequest)
	if err := json.Unmarshal(body, request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusBadRequest,
				Message: "invalid request body",
			},
		)
		return
	}

	if err := a.validate.Struct(request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			},
		)
		return
	}

	err = a.service.CreateAttribute(r.Context(), request.User, request.Attribute, request.Value, request.DataSource)
	if err == storage.ErrNotFound {
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
		a.logger.Errorf("failed to create user attribute: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: "failed to create user attribute",
			},
		)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(
		types.Response{
			Status:  http.StatusCreated,
			Message: "Created user attribute",
		},
	)
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusBadRequest,
				Message: "invalid attribute id",
			},
		)
		return
	}

	err = a.service.DisableAttribute(r.Context(), id)
	if err == storage.ErrNotFound {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusNotFound,
				Message: "user attribute not found",
			},
		)
		return
	}
	if err != nil {
		a.logger.Errorf("failed to disable user attribute: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(
			types.Response{
				Status:  http.StatusInternalServerError,
				Message: "failed to disable user attribute",
			},
		)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.validate = validator.New()

	a.logger = logger

	return a
}
