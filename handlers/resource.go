// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/folio/middleware"
)

type validatable[T any] interface {
	*T
	Validate() error
}

// Resource serves admin CRUD for one record type. The store functions are
// injected so every content module shares the same request handling.
type Resource[T any, P validatable[T]] struct {
	name   string
	list   func(ctx context.Context) ([]T, error)
	get    func(ctx context.Context, id int64) (T, error)
	create func(ctx context.Context, item *T) error
	update func(ctx context.Context, item *T) error
	delete func(ctx context.Context, id int64) error
	setID  func(item *T, id int64)
}

// List handles GET /admin/{resource}
func (h *Resource[T, P]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.list(r.Context())
	if err != nil {
		writeError(w, r, err, "list "+h.name)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, items)
}

// Get handles GET /admin/{resource}/{id}
func (h *Resource[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "load "+h.name)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, item)
}

// Create handles POST /admin/{resource}
func (h *Resource[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := middleware.ParseJSONBody(r, &item); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.setID(&item, 0)
	if err := P(&item).Validate(); err != nil {
		writeError(w, r, err, "create "+h.name)
		return
	}
	if err := h.create(r.Context(), &item); err != nil {
		writeError(w, r, err, "create "+h.name)
		return
	}

	slog.Info("record created", "resource", h.name, "request_id", middleware.RequestID(r.Context()))
	middleware.JSONResponse(w, http.StatusCreated, item)
}

// Update handles PUT /admin/{resource}/{id}. The body replaces the record.
func (h *Resource[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var item T
	if err := middleware.ParseJSONBody(r, &item); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.setID(&item, id)
	if err := P(&item).Validate(); err != nil {
		writeError(w, r, err, "update "+h.name)
		return
	}
	if err := h.update(r.Context(), &item); err != nil {
		writeError(w, r, err, "update "+h.name)
		return
	}
	fresh, err := h.get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "load "+h.name)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, fresh)
}

// Delete handles DELETE /admin/{resource}/{id}
func (h *Resource[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.delete(r.Context(), id); err != nil {
		writeError(w, r, err, "delete "+h.name)
		return
	}

	slog.Info("record deleted", "resource", h.name, "id", id)
	w.WriteHeader(http.StatusNoContent)
}
