// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/middleware"
	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/store"
	"github.com/danielhkuo/folio/templates"
)

// writeError maps domain errors to HTTP responses. Anything unrecognized
// is logged and reported as a 500 with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var (
		modelErr    *models.ValidationError
		templateErr *templates.ValidationError
		paramErr    *capability.ValidationError
	)
	switch {
	case errors.As(err, &modelErr):
		middleware.ValidationResponse(w, "Validation failed", modelErr.Fields)
	case errors.As(err, &templateErr):
		middleware.ValidationResponse(w, "Section data does not match template "+templateErr.Template, prefixFields("data.", templateErr.Fields))
	case errors.As(err, &paramErr):
		middleware.ValidationResponse(w, "Invalid capability parameters", problemFields(paramErr.Problems))
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, templates.ErrTemplateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Template not found")
	case errors.Is(err, capability.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Capability not found")
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Conflicts with an existing record")
	default:
		slog.Error("request failed",
			"request_id", middleware.RequestID(r.Context()),
			"action", action,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

func prefixFields(prefix string, fields map[string][]string) map[string][]string {
	out := make(map[string][]string, len(fields))
	for k, v := range fields {
		out[prefix+k] = v
	}
	return out
}

// problemFields turns "name: message" problems into a field map.
func problemFields(problems []string) map[string][]string {
	out := make(map[string][]string)
	for _, p := range problems {
		name, msg, ok := strings.Cut(p, ": ")
		if !ok {
			name, msg = "params", p
		}
		out[name] = append(out[name], msg)
	}
	return out
}

// pathID parses the {name} path parameter as a positive int64.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
