// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/testutil"
)

func TestCreateSection(t *testing.T) {
	ts := setupServer(t)
	page := testutil.CreateTestPage(t, ts.store, "home", true)
	path := fmt.Sprintf("/admin/pages/%d/sections", page.ID)

	w := ts.adminDo("POST", path, map[string]any{
		"template_key": "projects_showcase",
		"slot":         "main",
		"data":         map[string]any{"limit": 3},
	})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var sec models.PageSection
	testutil.AssertJSON(t, w, &sec)
	assert.True(t, sec.Active, "active by default")
	assert.Equal(t, 1, sec.Position)
	assert.EqualValues(t, 3, sec.Data["limit"])
	assert.Equal(t, "Projects", sec.Data["heading"], "defaults stored")

	w = ts.adminDo("GET", path, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var sections []models.PageSection
	testutil.AssertJSON(t, w, &sections)
	assert.Len(t, sections, 1)
}

func TestCreateSectionRejections(t *testing.T) {
	ts := setupServer(t)
	page := testutil.CreateTestPage(t, ts.store, "home", true)
	path := fmt.Sprintf("/admin/pages/%d/sections", page.ID)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"unknown template", map[string]any{"template_key": "carousel", "slot": "main"}, "template_key"},
		{"slot not allowed", map[string]any{"template_key": "projects_showcase", "slot": "footer"}, "slot"},
		{"missing required field", map[string]any{"template_key": "hero", "slot": "main", "data": map[string]any{}}, "data.title"},
		{"out of range", map[string]any{"template_key": "projects_showcase", "slot": "main", "data": map[string]any{"limit": 100}}, "data.limit"},
		{"undeclared field", map[string]any{"template_key": "hero", "slot": "main", "data": map[string]any{"title": "Hi", "colour": "red"}}, "data.colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.adminDo("POST", path, tt.body)
			testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Contains(t, resp.Fields, tt.field)
		})
	}

	w := ts.adminDo("POST", "/admin/pages/999/sections", map[string]any{"template_key": "hero", "slot": "main"})
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpdateAndDeleteSection(t *testing.T) {
	ts := setupServer(t)
	page := testutil.CreateTestPage(t, ts.store, "home", true)
	sec := testutil.CreateTestSection(t, ts.store, page.ID, "hero", "main", map[string]any{"title": "Hello"})
	path := fmt.Sprintf("/admin/sections/%d", sec.ID)

	inactive := false
	w := ts.adminDo("PUT", path, map[string]any{
		"template_key": "hero",
		"slot":         "header",
		"active":       inactive,
		"data":         map[string]any{"title": map[string]string{"en": "Hi", "es": "Hola"}},
	})
	testutil.AssertStatus(t, w, http.StatusOK)

	var updated models.PageSection
	testutil.AssertJSON(t, w, &updated)
	assert.Equal(t, "header", updated.Slot)
	assert.False(t, updated.Active)
	assert.Equal(t, sec.Position, updated.Position)

	w = ts.adminDo("PUT", path, map[string]any{"template_key": "hero", "slot": "main", "data": map[string]any{"cta_url": "javascript:x", "title": "x"}})
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	w = ts.adminDo("DELETE", path, nil)
	testutil.AssertStatus(t, w, http.StatusNoContent)
	w = ts.adminDo("DELETE", path, nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestReorderSections(t *testing.T) {
	ts := setupServer(t)
	page := testutil.CreateTestPage(t, ts.store, "home", true)
	other := testutil.CreateTestPage(t, ts.store, "about", true)
	a := testutil.CreateTestSection(t, ts.store, page.ID, "hero", "main", map[string]any{"title": "A"})
	b := testutil.CreateTestSection(t, ts.store, page.ID, "hero", "main", map[string]any{"title": "B"})
	foreign := testutil.CreateTestSection(t, ts.store, other.ID, "hero", "main", map[string]any{"title": "C"})
	path := fmt.Sprintf("/admin/pages/%d/sections/reorder", page.ID)

	w := ts.adminDo("POST", path, models.ReorderSectionsRequest{SectionIDs: []int64{b.ID, a.ID}})
	testutil.AssertStatus(t, w, http.StatusOK)

	var sections []models.PageSection
	testutil.AssertJSON(t, w, &sections)
	require.Len(t, sections, 2)
	assert.Equal(t, b.ID, sections[0].ID)
	assert.Equal(t, 1, sections[0].Position)

	for name, ids := range map[string][]int64{
		"empty":     {},
		"duplicate": {a.ID, a.ID},
		"foreign":   {a.ID, foreign.ID},
	} {
		t.Run(name, func(t *testing.T) {
			w := ts.adminDo("POST", path, models.ReorderSectionsRequest{SectionIDs: ids})
			testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
		})
	}

	sections, err := ts.store.ListSections(t.Context(), page.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, sections[0].ID, "failed reorder leaves positions alone")

	w = ts.adminDo("POST", path, models.ReorderSectionsRequest{SectionIDs: []int64{a.ID}})
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &sections)
	require.Len(t, sections, 2)
	assert.Equal(t, a.ID, sections[0].ID)
	assert.Equal(t, 1, sections[0].Position)
	assert.Equal(t, b.ID, sections[1].ID)
	assert.Equal(t, 2, sections[1].Position, "unlisted sections follow the listed ones")
}
