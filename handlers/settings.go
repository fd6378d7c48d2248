// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/folio/middleware"
	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/store"
)

type SettingsHandler struct {
	store *store.Store
}

func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// GetSettings handles GET /admin/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err, "load settings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ws)
}

// SaveSettings handles PUT /admin/settings
func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var ws models.WebsiteSettings
	if err := middleware.ParseJSONBody(r, &ws); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := ws.Validate(); err != nil {
		writeError(w, r, err, "save settings")
		return
	}
	if err := h.store.SaveSettings(r.Context(), &ws); err != nil {
		writeError(w, r, err, "save settings")
		return
	}

	slog.Info("settings saved", "site_name", ws.SiteName)
	middleware.JSONResponse(w, http.StatusOK, ws)
}
