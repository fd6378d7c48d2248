// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/i18n"
	"github.com/danielhkuo/folio/middleware"
	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/templates"
)

// CatalogHandler exposes the template registry and capability catalog to
// the admin UI.
type CatalogHandler struct {
	registry *templates.Registry
	resolver *capability.Resolver
}

func NewCatalogHandler(registry *templates.Registry, resolver *capability.Resolver) *CatalogHandler {
	return &CatalogHandler{registry: registry, resolver: resolver}
}

// ListTemplates handles GET /admin/templates. ?slot= narrows the list to
// templates allowed in that slot.
func (h *CatalogHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.All()
	if slot := r.URL.Query().Get("slot"); slot != "" {
		defs = h.registry.ForSlot(slot)
	}
	if defs == nil {
		defs = []templates.Definition{}
	}
	middleware.JSONResponse(w, http.StatusOK, defs)
}

// GetTemplate handles GET /admin/templates/{key}
func (h *CatalogHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	def, err := h.registry.Get(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, r, err, "load template")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, def)
}

// ListCapabilities handles GET /admin/capabilities
func (h *CatalogHandler) ListCapabilities(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.resolver.Catalog().Definitions())
}

type capabilityPreview struct {
	Capability capability.Key `json:"capability"`
	Locale     string         `json:"locale"`
	Data       any            `json:"data"`
}

// PreviewCapability handles POST /admin/capabilities/{key}/preview. The
// capability runs in preview mode so hidden records are included.
func (h *CatalogHandler) PreviewCapability(w http.ResponseWriter, r *http.Request) {
	key := capability.Key(chi.URLParam(r, "key"))

	var req models.PreviewCapabilityRequest
	if r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	tag := i18n.FromContext(r.Context())
	if req.Locale != "" {
		parsed, ok := i18n.ParseTag(req.Locale)
		if !ok {
			var v models.ValidationError
			v.Add("locale", "unsupported locale %q", req.Locale)
			writeError(w, r, &v, "preview capability")
			return
		}
		tag = parsed
	}

	data, err := h.resolver.Resolve(r.Context(), key, req.Params, capability.ExecutionContext{Locale: tag, Preview: true})
	if err != nil {
		writeError(w, r, err, "preview capability")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, capabilityPreview{Capability: key, Locale: tag.String(), Data: data})
}
