// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/folio/handlers"
	"github.com/danielhkuo/folio/testutil"
)

type pageObject struct {
	Component string `json:"component"`
	URL       string `json:"url"`
	Version   string `json:"version"`
	Props     struct {
		Preview bool `json:"preview"`
		Site    struct {
			SiteName string `json:"site_name"`
			Locale   string `json:"locale"`
		} `json:"site"`
		Page struct {
			Slug   string `json:"slug"`
			Title  string `json:"title"`
			Locale string `json:"locale"`
			Slots  map[string][]struct {
				Template string         `json:"template"`
				Data     map[string]any `json:"data"`
			} `json:"slots"`
		} `json:"page"`
	} `json:"props"`
}

var inertia = map[string]string{handlers.InertiaHeader: "true"}

func seedHome(t *testing.T, ts *testServer) {
	t.Helper()
	page := testutil.CreateTestPage(t, ts.store, "home", true)
	testutil.CreateTestProject(t, ts.store, "folio", true)
	testutil.CreateTestSection(t, ts.store, page.ID, "hero", "header", map[string]any{
		"title": map[string]any{"en": "Hello", "es": "Hola"},
	})
	testutil.CreateTestSection(t, ts.store, page.ID, "projects_showcase", "main", map[string]any{"limit": 3})
}

func TestHomeInertia(t *testing.T) {
	ts := setupServer(t)
	seedHome(t, ts)

	w := ts.do("GET", "/?lang=es", nil, inertia)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "true", w.Header().Get(handlers.InertiaHeader))

	var page pageObject
	testutil.AssertJSON(t, w, &page)
	assert.Equal(t, handlers.PageComponent, page.Component)
	assert.Equal(t, "/?lang=es", page.URL)
	assert.NotEmpty(t, page.Version)
	assert.False(t, page.Props.Preview)
	assert.Equal(t, "es", page.Props.Page.Locale)
	assert.Equal(t, "es", page.Props.Site.Locale)

	require.Len(t, page.Props.Page.Slots["header"], 1)
	assert.Equal(t, "Hola", page.Props.Page.Slots["header"][0].Data["title"])

	require.Len(t, page.Props.Page.Slots["main"], 1)
	showcase := page.Props.Page.Slots["main"][0]
	assert.Equal(t, "projects_showcase", showcase.Template)
	projects, ok := showcase.Data["projects"].([]any)
	require.True(t, ok)
	assert.Len(t, projects, 1)
}

func TestPageHTMLShell(t *testing.T) {
	ts := setupServer(t)
	seedHome(t, ts)

	w := ts.do("GET", "/p/home", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	m := regexp.MustCompile(`data-page="([^"]*)"`).FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2)
	var page pageObject
	require.NoError(t, json.Unmarshal([]byte(html.UnescapeString(m[1])), &page))
	assert.Equal(t, "home", page.Props.Page.Slug)
}

func TestPageVaryKeepsOrigin(t *testing.T) {
	ts := setupServer(t)
	seedHome(t, ts)

	w := ts.do("GET", "/p/home", nil, map[string]string{"Origin": "https://example.com"})
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.ElementsMatch(t, []string{"Origin", handlers.InertiaHeader}, w.Header().Values("Vary"))
}

func TestInertiaVersionMismatch(t *testing.T) {
	ts := setupServer(t)
	seedHome(t, ts)

	w := ts.do("GET", "/p/home", nil, map[string]string{
		handlers.InertiaHeader:        "true",
		handlers.InertiaVersionHeader: "stale",
	})
	testutil.AssertStatus(t, w, http.StatusConflict)
	assert.Equal(t, "/p/home", w.Header().Get(handlers.InertiaLocationHeader))
}

func TestUnpublishedPages(t *testing.T) {
	ts := setupServer(t)
	draft := testutil.CreateTestPage(t, ts.store, "draft", false)
	testutil.CreateTestSection(t, ts.store, draft.ID, "hero", "main", map[string]any{"title": "Soon"})

	w := ts.do("GET", "/p/draft", nil, inertia)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = ts.do("GET", "/p/draft?preview=forged", nil, inertia)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = ts.adminDo("POST", fmt.Sprintf("/admin/pages/%d/preview-link", draft.ID), nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var link struct {
		URL string `json:"url"`
	}
	testutil.AssertJSON(t, w, &link)

	w = ts.do("GET", link.URL, nil, inertia)
	testutil.AssertStatus(t, w, http.StatusOK)
	var page pageObject
	testutil.AssertJSON(t, w, &page)
	assert.True(t, page.Props.Preview)
	assert.Equal(t, "draft", page.Props.Page.Slug)

	w = ts.do("GET", "/p/missing", nil, inertia)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAdminPagePreview(t *testing.T) {
	ts := setupServer(t)
	draft := testutil.CreateTestPage(t, ts.store, "draft", false)
	testutil.CreateTestSection(t, ts.store, draft.ID, "hero", "main", map[string]any{"title": "Soon"})

	w := ts.adminDo("GET", fmt.Sprintf("/admin/pages/%d/preview", draft.ID), nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view struct {
		Slug  string                       `json:"slug"`
		Slots map[string][]json.RawMessage `json:"slots"`
	}
	testutil.AssertJSON(t, w, &view)
	assert.Equal(t, "draft", view.Slug)
	assert.Len(t, view.Slots["main"], 1)
}

func TestPageRenderFailureIs500(t *testing.T) {
	ts := setupServer(t)
	page := testutil.CreateTestPage(t, ts.store, "home", true)
	testutil.CreateTestSection(t, ts.store, page.ID, "retired_template", "main", nil)

	w := ts.do("GET", "/", nil, inertia)
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.NotContains(t, w.Body.String(), "retired_template")
}

func TestHealth(t *testing.T) {
	ts := setupServer(t)

	w := ts.do("GET", "/health", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "OK", w.Body.String())
}
