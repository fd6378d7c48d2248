// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/folio/cliparse"
	"github.com/danielhkuo/folio/cms"
	"github.com/danielhkuo/folio/handlers"
	"github.com/danielhkuo/folio/middleware"
	"github.com/danielhkuo/folio/store"
)

type crud interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func mountCRUD(r chi.Router, path string, h crud) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func NewRouter(s *store.Store, renderer *cms.Renderer, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithLogging(cfg.AdminKeySalt))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Locale(cfg.Locale()))

	// Initialize handlers
	content := handlers.NewContentHandler(s)
	settings := handlers.NewSettingsHandler(s)
	sections := handlers.NewSectionHandler(s, renderer.Registry())
	catalog := handlers.NewCatalogHandler(renderer.Registry(), renderer.Resolver())
	pages := handlers.NewPageHandler(s, renderer, renderer.Resolver(), cfg.AdminKeySalt)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.DB().PingContext(r.Context()); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public pages
	r.Get("/", pages.Home)
	r.Get("/p/{slug}", pages.Show)

	// Admin operations (require X-Admin-Key)
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(cfg.AdminKeySalt))

		mountCRUD(r, "/projects", content.Projects)
		mountCRUD(r, "/technologies", content.Technologies)
		mountCRUD(r, "/images", content.Images)
		mountCRUD(r, "/skills", content.Skills)
		mountCRUD(r, "/courses", content.Courses)
		mountCRUD(r, "/experiences", content.Experiences)
		mountCRUD(r, "/initiatives", content.Initiatives)
		mountCRUD(r, "/contacts", content.Contacts)
		mountCRUD(r, "/pages", content.Pages)

		r.Get("/settings", settings.GetSettings)
		r.Put("/settings", settings.SaveSettings)

		r.Get("/pages/{id}/sections", sections.ListSections)
		r.Post("/pages/{id}/sections", sections.CreateSection)
		r.Post("/pages/{id}/sections/reorder", sections.ReorderSections)
		r.Put("/sections/{id}", sections.UpdateSection)
		r.Delete("/sections/{id}", sections.DeleteSection)

		r.Get("/pages/{id}/preview", pages.PreviewPage)
		r.Post("/pages/{id}/preview-link", pages.PreviewLink)

		r.Get("/templates", catalog.ListTemplates)
		r.Get("/templates/{key}", catalog.GetTemplate)
		r.Get("/capabilities", catalog.ListCapabilities)
		r.Post("/capabilities/{key}/preview", catalog.PreviewCapability)
	})

	return r
}
