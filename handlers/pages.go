// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/danielhkuo/folio/auth"
	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/cms"
	"github.com/danielhkuo/folio/i18n"
	"github.com/danielhkuo/folio/middleware"
	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/providers"
	"github.com/danielhkuo/folio/store"
)

const (
	InertiaHeader         = "X-Inertia"
	InertiaVersionHeader  = "X-Inertia-Version"
	InertiaLocationHeader = "X-Inertia-Location"

	// PageComponent is the front-end component that renders a CMS page.
	PageComponent = "Page"
	// PreviewParam carries a page preview token on public URLs.
	PreviewParam = "preview"
)

// InertiaPage is the page object handed to the front-end.
type InertiaPage struct {
	Component string    `json:"component"`
	Props     PageProps `json:"props"`
	URL       string    `json:"url"`
	Version   string    `json:"version"`
}

type PageProps struct {
	Site    any          `json:"site"`
	Page    cms.PageView `json:"page"`
	Preview bool         `json:"preview"`
}

var shell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<div id="app" data-page="{{.Data}}"></div>
</body>
</html>
`))

type shellData struct {
	Locale string
	Title  string
	Data   string
}

// PageHandler renders pages for visitors and admin previews.
type PageHandler struct {
	store    *store.Store
	renderer *cms.Renderer
	resolver *capability.Resolver
	salt     string
}

func NewPageHandler(s *store.Store, renderer *cms.Renderer, resolver *capability.Resolver, salt string) *PageHandler {
	return &PageHandler{store: s, renderer: renderer, resolver: resolver, salt: salt}
}

func (h *PageHandler) render(ctx context.Context, slug string, id int64, ec capability.ExecutionContext) (cms.PageView, error) {
	var (
		page models.Page
		err  error
	)
	if slug != "" {
		page, err = h.store.GetPageBySlug(ctx, slug)
	} else {
		page, err = h.store.GetPage(ctx, id)
	}
	if err != nil {
		return cms.PageView{}, err
	}
	if !page.Published && !ec.Preview {
		return cms.PageView{}, store.ErrNotFound
	}
	sections, err := h.store.ListSections(ctx, page.ID)
	if err != nil {
		return cms.PageView{}, err
	}
	return h.renderer.RenderPage(ctx, page, sections, ec)
}

// PreviewPage handles GET /admin/pages/{id}/preview. Unpublished pages and
// hidden records are included.
func (h *PageHandler) PreviewPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ec := capability.ExecutionContext{Locale: i18n.FromContext(r.Context()), Preview: true}
	view, err := h.render(r.Context(), "", id, ec)
	if err != nil {
		writeError(w, r, err, "render page")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

type previewLink struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// PreviewLink handles POST /admin/pages/{id}/preview-link. The returned URL
// shows the page to anyone holding it, published or not.
func (h *PageHandler) PreviewLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	page, err := h.store.GetPage(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "load page")
		return
	}
	token := auth.GeneratePreviewToken(page.Slug, h.salt)
	link := "/p/" + url.PathEscape(page.Slug) + "?" + url.Values{PreviewParam: {token}}.Encode()
	middleware.JSONResponse(w, http.StatusOK, previewLink{Token: token, URL: link})
}

// Home handles GET /. It renders the page named by the site settings.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	ws, err := h.store.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err, "load settings")
		return
	}
	h.serve(w, r, ws.HomePageSlug)
}

// Show handles GET /p/{slug}
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, chi.URLParam(r, "slug"))
}

func (h *PageHandler) serve(w http.ResponseWriter, r *http.Request, slug string) {
	version := h.renderer.Registry().Version()
	inertia := r.Header.Get(InertiaHeader) == "true"
	if inertia && r.Method == http.MethodGet {
		if v := r.Header.Get(InertiaVersionHeader); v != "" && v != version {
			w.Header().Set(InertiaLocationHeader, r.URL.String())
			w.WriteHeader(http.StatusConflict)
			return
		}
	}

	preview := false
	if token := r.URL.Query().Get(PreviewParam); token != "" {
		if err := auth.ValidatePreviewToken(slug, token, h.salt); err != nil {
			middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
			return
		}
		preview = true
	}

	tag := i18n.FromContext(r.Context())
	ec := capability.ExecutionContext{Locale: tag, Preview: preview}
	view, err := h.render(r.Context(), slug, 0, ec)
	if err != nil {
		h.pageError(w, r, err)
		return
	}

	site, err := h.resolver.Resolve(r.Context(), providers.SettingsWebsite, nil, ec)
	if err != nil {
		writeError(w, r, err, "load site")
		return
	}

	page := InertiaPage{
		Component: PageComponent,
		Props:     PageProps{Site: site, Page: view, Preview: preview},
		URL:       r.URL.RequestURI(),
		Version:   version,
	}

	w.Header().Add("Vary", InertiaHeader)
	if inertia {
		w.Header().Set(InertiaHeader, "true")
		middleware.JSONResponse(w, http.StatusOK, page)
		return
	}
	writeShell(w, r, tag, page)
}

// pageError hides the cause of render failures from visitors. Missing
// pages are 404s; anything else is logged and reported as a 500.
func (h *PageHandler) pageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) && !isSectionError(err) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
		return
	}
	slog.Error("page render failed",
		"request_id", middleware.RequestID(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render page")
}

func isSectionError(err error) bool {
	var serr *cms.SectionError
	return errors.As(err, &serr)
}

func writeShell(w http.ResponseWriter, r *http.Request, tag language.Tag, page InertiaPage) {
	data, err := json.Marshal(page)
	if err != nil {
		slog.Error("encode page object", "request_id", middleware.RequestID(r.Context()), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	err = shell.Execute(w, shellData{Locale: tag.String(), Title: page.Props.Page.Title, Data: string(data)})
	if err != nil {
		slog.Error("write page shell", "request_id", middleware.RequestID(r.Context()), "error", err)
	}
}
