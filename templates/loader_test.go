// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDefinitionsAreValid(t *testing.T) {
	defs, err := Builtin()
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	r, err := NewRegistryFrom(defs)
	require.NoError(t, err)

	for _, key := range []string{"hero", "rich_text", "projects_showcase", "testimonials", "site_footer"} {
		_, err := r.Get(key)
		assert.NoError(t, err, key)
	}

	showcase, _ := r.Get("projects_showcase")
	require.NotNil(t, showcase.DataSource)
	assert.Equal(t, "projects", showcase.DataSource.TargetField)
	assert.Equal(t, 2, showcase.Version)
}

func TestLoadFSMultiDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl/a.yaml": {Data: []byte(`
key: one
version: 1
label: One
slots: [main]
fields: []
---
key: two
version: 1
label: Two
slots: [main]
fields:
  - name: title
    type: string
`)},
		"tpl/readme.txt": {Data: []byte("ignored")},
	}

	defs, err := LoadFS(fsys, "tpl")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "one", defs[0].Key)
	assert.Equal(t, "two", defs[1].Key)
}

func TestLoadFSRejectsUnknownKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl/a.yaml": {Data: []byte("key: one\nversion: 1\nslots: [main]\ncolour: red\n")},
	}
	_, err := LoadFS(fsys, "tpl")
	assert.Error(t, err)
}

func TestLoadMergesOverrides(t *testing.T) {
	dir := t.TempDir()
	override := `
key: hero
version: 3
label: Custom hero
slots: [header]
fields:
  - name: title
    type: string
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero.yaml"), []byte(override), 0o644))

	defs, err := Load(dir)
	require.NoError(t, err)

	builtin, err := Builtin()
	require.NoError(t, err)
	assert.Len(t, defs, len(builtin))

	r, err := NewRegistryFrom(defs)
	require.NoError(t, err)
	hero, err := r.Get("hero")
	require.NoError(t, err)
	assert.Equal(t, 3, hero.Version)
	assert.Equal(t, "Custom hero", hero.Label)
}

func TestMerge(t *testing.T) {
	base := []Definition{{Key: "a", Version: 1}, {Key: "b", Version: 1}}
	out := Merge(base, []Definition{{Key: "b", Version: 2}, {Key: "c", Version: 1}})

	require.Len(t, out, 3)
	assert.Equal(t, 2, out[1].Version)
	assert.Equal(t, "c", out[2].Key)
	assert.Equal(t, 1, base[1].Version, "base untouched")
}
