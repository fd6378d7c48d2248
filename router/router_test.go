// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/cms"
	"github.com/danielhkuo/folio/providers"
	"github.com/danielhkuo/folio/templates"
	"github.com/danielhkuo/folio/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	s := testutil.SetupTestStore(t)
	catalog := capability.NewCatalog()
	if err := providers.Register(catalog, s); err != nil {
		t.Fatalf("Failed to register providers: %v", err)
	}
	defs, err := templates.Builtin()
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}
	registry, err := templates.NewRegistryFrom(defs)
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}
	renderer := cms.NewRenderer(registry, capability.NewResolver(catalog))
	return NewRouter(s, renderer, testutil.GetTestConfig())
}

func serve(h http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, nil, headers)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := serve(mux, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)
	admin := testutil.AdminHeaders(testutil.GetTestConfig())

	// 400, 404 and 422 are all valid; only unmatched routes fail
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/p/home"},

		{"GET", "/admin/projects"},
		{"POST", "/admin/technologies"},
		{"GET", "/admin/images/1"},
		{"PUT", "/admin/skills/1"},
		{"DELETE", "/admin/courses/1"},
		{"GET", "/admin/experiences"},
		{"GET", "/admin/initiatives"},
		{"GET", "/admin/contacts"},
		{"GET", "/admin/pages"},
		{"GET", "/admin/settings"},
		{"PUT", "/admin/settings"},
		{"GET", "/admin/pages/1/sections"},
		{"POST", "/admin/pages/1/sections"},
		{"POST", "/admin/pages/1/sections/reorder"},
		{"PUT", "/admin/sections/1"},
		{"DELETE", "/admin/sections/1"},
		{"GET", "/admin/pages/1/preview"},
		{"POST", "/admin/pages/1/preview-link"},
		{"GET", "/admin/templates"},
		{"GET", "/admin/templates/hero"},
		{"GET", "/admin/capabilities"},
		{"POST", "/admin/capabilities/projects.visible.v1/preview"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, tc.method, tc.path, admin)
			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
			if w.Code == http.StatusUnauthorized {
				t.Errorf("Route %s %s rejected a valid admin key", tc.method, tc.path)
			}
		})
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	mux := newTestRouter(t)

	for _, path := range []string{"/admin/projects", "/admin/settings", "/admin/templates"} {
		w := serve(mux, "GET", path, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for %s without key, got %d", path, w.Code)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)
	admin := testutil.AdminHeaders(testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/admin/settings"},
		{"PATCH", "/admin/projects/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, tc.method, tc.path, admin)
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	mux := newTestRouter(t)

	w := serve(mux, "OPTIONS", "/admin/projects", map[string]string{
		"Origin":                        "https://example.com",
		"Access-Control-Request-Method": "GET",
	})
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Errorf("Expected CORS headers on preflight, got %v", w.Header())
	}
}
