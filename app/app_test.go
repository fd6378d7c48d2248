// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/folio/app"
	"github.com/danielhkuo/folio/templates"
	"github.com/danielhkuo/folio/testutil"
)

const customTemplate = `
key: custom
version: 1
label: Custom
slots: [main]
fields:
  - name: text
    type: string
`

func TestTemplatesInUseMustStayDefined(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customTemplate), 0o644))

	cfg := testutil.GetTestConfig()
	cfg.TemplatesDir = dir
	conn := testutil.SetupTestDB(t)

	a, err := app.New(conn, cfg)
	require.NoError(t, err)
	page := testutil.CreateTestPage(t, a.Store, "landing", true)
	testutil.CreateTestSection(t, a.Store, page.ID, "custom", "main", map[string]any{"text": "hi"})

	w, err := templates.NewWatcher(dir, a.Registry, a.Catalog, nil)
	require.NoError(t, err)
	defer w.Stop()
	w.InUse(a.Store.TemplateKeysInUse)

	require.NoError(t, os.Remove(path))
	assert.ErrorIs(t, w.Reload(), templates.ErrTemplateInUse)
	_, err = a.Registry.Get("custom")
	assert.NoError(t, err, "registry keeps the previous set")

	_, err = app.New(conn, cfg)
	assert.ErrorIs(t, err, templates.ErrTemplateInUse)
}
