// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/folio/auth"
	"github.com/danielhkuo/folio/cliparse"
	"github.com/danielhkuo/folio/db"
	"github.com/danielhkuo/folio/models"
	"github.com/danielhkuo/folio/store"
)

// TestDBURL is an in-memory sqlite database private to one connection.
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// SetupTestStore wraps SetupTestDB in a Store.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t), db.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Defaults()
	cfg.DatabaseURL = TestDBURL
	cfg.AdminKeySalt = "test-admin-salt"
	return cfg
}

// AdminHeaders returns the header set that authenticates as admin.
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		"X-Admin-Key": auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt),
	}
}

// CreateTestPage creates a page and returns it.
func CreateTestPage(t *testing.T, s *store.Store, slug string, published bool) models.Page {
	t.Helper()

	p := models.Page{Slug: slug, Title: models.Text("Page " + slug), Published: published}
	if err := s.CreatePage(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create test page: %v", err)
	}
	return p
}

// CreateTestSection places a section on a page.
func CreateTestSection(t *testing.T, s *store.Store, pageID int64, templateKey, slot string, data map[string]any) models.PageSection {
	t.Helper()

	sec := models.PageSection{
		PageID:      pageID,
		TemplateKey: templateKey,
		Slot:        slot,
		Active:      true,
		Data:        data,
	}
	if err := s.CreateSection(context.Background(), &sec); err != nil {
		t.Fatalf("Failed to create test section: %v", err)
	}
	return sec
}

// CreateTestProject creates a visible project with the given technologies.
func CreateTestProject(t *testing.T, s *store.Store, slug string, featured bool, techIDs ...int64) models.Project {
	t.Helper()

	p := models.Project{
		Slug:          slug,
		Title:         models.LocalizedText{"en": "Project " + slug, "pt-BR": "Projeto " + slug},
		Summary:       models.Text("Summary of " + slug),
		Featured:      featured,
		Visible:       true,
		TechnologyIDs: techIDs,
	}
	if err := s.CreateProject(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return p
}

// CreateTestTechnology creates a technology.
func CreateTestTechnology(t *testing.T, s *store.Store, name, slug string) models.Technology {
	t.Helper()

	tech := models.Technology{Name: name, Slug: slug}
	if err := s.CreateTechnology(context.Background(), &tech); err != nil {
		t.Fatalf("Failed to create test technology: %v", err)
	}
	return tech
}

// CreateTestExperience creates a visible experience starting at start.
func CreateTestExperience(t *testing.T, s *store.Store, kind, org string, start time.Time) models.Experience {
	t.Helper()

	e := models.Experience{
		Kind:         kind,
		Organization: org,
		Role:         models.Text("Engineer"),
		StartedAt:    start,
		Visible:      true,
	}
	if err := s.CreateExperience(context.Background(), &e); err != nil {
		t.Fatalf("Failed to create test experience: %v", err)
	}
	return e
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
