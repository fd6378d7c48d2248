package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/folio/auth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestCapabilitiesList(t *testing.T) {
	out, err := run(t, "capabilities", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "projects.visible.v1")
	assert.Contains(t, out, "projects.by_slug.v1")
	assert.Contains(t, out, "slug:string!")
}

func TestTemplatesList(t *testing.T) {
	out, err := run(t, "templates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hero")
	assert.Contains(t, out, "contacts.channels.v1")
}

func TestTemplatesValidate(t *testing.T) {
	dir := t.TempDir()
	good := `
key: quote
version: 1
label: Quote
slots: [main]
fields:
  - name: body
    type: text
    required: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quote.yaml"), []byte(good), 0o644))

	out, err := run(t, "templates", "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "templates ok")

	bad := `
key: broken
version: 1
label: Broken
slots: [main]
fields:
  - name: limit
    type: integer
data_source:
  capability: nothing.here.v1
  target_field: items
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(bad), 0o644))
	_, err = run(t, "templates", "validate", dir)
	assert.ErrorContains(t, err, "nothing.here.v1")
}

func TestAdminKey(t *testing.T) {
	out, err := run(t, "admin-key", "--admin-salt", "pepper")
	require.NoError(t, err)
	assert.Contains(t, out, auth.GenerateAdminKey(auth.AdminScope, "pepper"))

	out, err = run(t, "admin-key", "--new-salt")
	require.NoError(t, err)
	assert.Contains(t, out, "ADMIN_KEY_SALT=")
}

func TestMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.db")
	out, err := run(t, "migrate", "-t", "sqlite", "-d", path)
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")

	// idempotent
	_, err = run(t, "migrate", "-t", "sqlite", "-d", path)
	assert.NoError(t, err)
}
