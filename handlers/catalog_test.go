// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/templates"
	"github.com/danielhkuo/folio/testutil"
)

func TestListTemplates(t *testing.T) {
	ts := setupServer(t)

	w := ts.adminDo("GET", "/admin/templates", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var all []templates.Definition
	testutil.AssertJSON(t, w, &all)
	assert.NotEmpty(t, all)

	w = ts.adminDo("GET", "/admin/templates?slot=footer", nil)
	var footer []templates.Definition
	testutil.AssertJSON(t, w, &footer)
	require.NotEmpty(t, footer)
	assert.Less(t, len(footer), len(all))
	for _, def := range footer {
		assert.True(t, def.AllowsSlot("footer"), def.Key)
	}

	w = ts.adminDo("GET", "/admin/templates?slot=nowhere", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetTemplate(t *testing.T) {
	ts := setupServer(t)

	w := ts.adminDo("GET", "/admin/templates/projects_showcase", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var def templates.Definition
	testutil.AssertJSON(t, w, &def)
	require.NotNil(t, def.DataSource)
	assert.Equal(t, "projects", def.DataSource.TargetField)

	w = ts.adminDo("GET", "/admin/templates/carousel", nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListCapabilities(t *testing.T) {
	ts := setupServer(t)

	w := ts.adminDo("GET", "/admin/capabilities", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var defs []struct {
		Key string `json:"key"`
	}
	testutil.AssertJSON(t, w, &defs)
	keys := make([]string, 0, len(defs))
	for _, d := range defs {
		keys = append(keys, d.Key)
	}
	assert.Contains(t, keys, "projects.visible.v1")
	assert.Contains(t, keys, "settings.website.v1")
}

func TestPreviewCapability(t *testing.T) {
	ts := setupServer(t)
	testutil.CreateTestProject(t, ts.store, "alpha", true)
	hidden := testutil.CreateTestProject(t, ts.store, "beta", false)
	hidden.Visible = false
	require.NoError(t, ts.store.UpdateProject(t.Context(), &hidden))

	w := ts.adminDo("POST", "/admin/capabilities/projects.visible.v1/preview", models.PreviewCapabilityRequest{
		Params: map[string]any{"limit": 10},
		Locale: "pt-BR",
	})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Locale string `json:"locale"`
		Data   []struct {
			Slug  string `json:"slug"`
			Title string `json:"title"`
		} `json:"data"`
	}
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "pt-BR", resp.Locale)
	require.Len(t, resp.Data, 2, "preview includes hidden projects")

	titles := []string{resp.Data[0].Title, resp.Data[1].Title}
	assert.Contains(t, titles, "Projeto alpha")
}

func TestPreviewCapabilityErrors(t *testing.T) {
	ts := setupServer(t)

	w := ts.adminDo("POST", "/admin/capabilities/missing.thing.v1/preview", models.PreviewCapabilityRequest{})
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = ts.adminDo("POST", "/admin/capabilities/projects.visible.v1/preview", models.PreviewCapabilityRequest{
		Params: map[string]any{"limit": "lots", "colour": "red"},
	})
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Contains(t, resp.Fields, "limit")
	assert.Contains(t, resp.Fields, "colour")

	w = ts.adminDo("POST", "/admin/capabilities/projects.visible.v1/preview", models.PreviewCapabilityRequest{
		Params: map[string]any{"limit": 1e19},
	})
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	resp = models.ErrorResponse{}
	testutil.AssertJSON(t, w, &resp)
	assert.Contains(t, resp.Fields, "limit")

	w = ts.adminDo("POST", "/admin/capabilities/projects.by_slug.v1/preview", models.PreviewCapabilityRequest{
		Params: map[string]any{"slug": "nope"},
	})
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = ts.adminDo("POST", "/admin/capabilities/projects.visible.v1/preview", models.PreviewCapabilityRequest{Locale: "ja"})
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
}
