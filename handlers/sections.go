// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/folio/middleware"
	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/store"
	"github.com/danielhkuo/folio/templates"
)

// SectionHandler manages the sections placed on pages. Every write is
// checked against the section's template before it reaches the store.
type SectionHandler struct {
	store    *store.Store
	registry *templates.Registry
}

func NewSectionHandler(s *store.Store, registry *templates.Registry) *SectionHandler {
	return &SectionHandler{store: s, registry: registry}
}

// SectionRequest is the body of section create and update requests.
// Active defaults to true when omitted.
type SectionRequest struct {
	TemplateKey string         `json:"template_key"`
	Slot        string         `json:"slot"`
	Position    int            `json:"position"`
	Active      *bool          `json:"active"`
	Data        map[string]any `json:"data"`
}

// check validates the request against its template and returns the
// normalized section data.
func (h *SectionHandler) check(req SectionRequest) (map[string]any, error) {
	var v models.ValidationError
	def, err := h.registry.Get(req.TemplateKey)
	if err != nil {
		v.Add("template_key", "unknown template %q", req.TemplateKey)
		return nil, &v
	}
	if !def.AllowsSlot(req.Slot) {
		v.Add("slot", "template %s cannot be placed in slot %q", def.Key, req.Slot)
	}
	if req.Position < 0 {
		v.Add("position", "must not be negative")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return def.Validate(req.Data)
}

func (req SectionRequest) active() bool {
	return req.Active == nil || *req.Active
}

// ListSections handles GET /admin/pages/{id}/sections
func (h *SectionHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.store.GetPage(r.Context(), pageID); err != nil {
		writeError(w, r, err, "load page")
		return
	}
	sections, err := h.store.ListSections(r.Context(), pageID)
	if err != nil {
		writeError(w, r, err, "list sections")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sections)
}

// CreateSection handles POST /admin/pages/{id}/sections
func (h *SectionHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req SectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if _, err := h.store.GetPage(r.Context(), pageID); err != nil {
		writeError(w, r, err, "load page")
		return
	}
	data, err := h.check(req)
	if err != nil {
		writeError(w, r, err, "create section")
		return
	}

	sec := models.PageSection{
		PageID:      pageID,
		TemplateKey: req.TemplateKey,
		Slot:        req.Slot,
		Position:    req.Position,
		Active:      req.active(),
		Data:        data,
	}
	if err := h.store.CreateSection(r.Context(), &sec); err != nil {
		writeError(w, r, err, "create section")
		return
	}

	slog.Info("section created", "page_id", pageID, "section_id", sec.ID, "template", sec.TemplateKey)
	middleware.JSONResponse(w, http.StatusCreated, sec)
}

// UpdateSection handles PUT /admin/sections/{id}. A zero position keeps
// the current one.
func (h *SectionHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req SectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	sec, err := h.store.GetSection(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "load section")
		return
	}
	data, err := h.check(req)
	if err != nil {
		writeError(w, r, err, "update section")
		return
	}

	sec.TemplateKey = req.TemplateKey
	sec.Slot = req.Slot
	sec.Active = req.active()
	sec.Data = data
	if req.Position > 0 {
		sec.Position = req.Position
	}
	if err := h.store.UpdateSection(r.Context(), &sec); err != nil {
		writeError(w, r, err, "update section")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sec)
}

// DeleteSection handles DELETE /admin/sections/{id}
func (h *SectionHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteSection(r.Context(), id); err != nil {
		writeError(w, r, err, "delete section")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderSections handles POST /admin/pages/{id}/sections/reorder. The ids
// must be distinct sections of the page; unlisted sections follow them in
// their current order.
func (h *SectionHandler) ReorderSections(w http.ResponseWriter, r *http.Request) {
	pageID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.ReorderSectionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if _, err := h.store.GetPage(r.Context(), pageID); err != nil {
		writeError(w, r, err, "load page")
		return
	}

	var v models.ValidationError
	if len(req.SectionIDs) == 0 {
		v.Add("section_ids", "must not be empty")
	}
	seen := make(map[int64]bool, len(req.SectionIDs))
	for _, id := range req.SectionIDs {
		if seen[id] {
			v.Add("section_ids", "duplicate section %d", id)
		}
		seen[id] = true
	}
	if err := v.OrNil(); err != nil {
		writeError(w, r, err, "reorder sections")
		return
	}

	if err := h.store.ReorderSections(r.Context(), pageID, req.SectionIDs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			v.Add("section_ids", "must all belong to page %d", pageID)
			writeError(w, r, &v, "reorder sections")
			return
		}
		writeError(w, r, err, "reorder sections")
		return
	}

	sections, err := h.store.ListSections(r.Context(), pageID)
	if err != nil {
		writeError(w, r, err, "list sections")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sections)
}
