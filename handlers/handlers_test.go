// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/folio/app"
	"github.com/danielhkuo/folio/cliparse"
	"github.com/danielhkuo/folio/store"
	"github.com/danielhkuo/folio/testutil"
)

type testServer struct {
	handler http.Handler
	store   *store.Store
	cfg     cliparse.Config
	admin   map[string]string
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	cfg := testutil.GetTestConfig()
	a, err := app.New(testutil.SetupTestDB(t), cfg)
	if err != nil {
		t.Fatalf("Failed to build app: %v", err)
	}
	return &testServer{
		handler: a.Handler(),
		store:   a.Store,
		cfg:     cfg,
		admin:   testutil.AdminHeaders(cfg),
	}
}

func (ts *testServer) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
	return w
}

func (ts *testServer) adminDo(method, path string, body interface{}) *httptest.ResponseRecorder {
	return ts.do(method, path, body, ts.admin)
}
