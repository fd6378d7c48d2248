// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/folio/capability"
)

func noop() capability.Provider {
	return capability.ProviderFunc(func(context.Context, capability.Params, capability.ExecutionContext) (any, error) {
		return nil, nil
	})
}

func showcase() Definition {
	return Definition{
		Key:     "showcase",
		Version: 1,
		Label:   "Showcase",
		Slots:   []string{"main"},
		Fields: []Field{
			{Name: "limit", Type: FieldInteger, Default: 3},
		},
		DataSource: &DataSource{
			Capability:  "projects.visible.v1",
			Params:      map[string]string{"limit": "limit"},
			TargetField: "projects",
		},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(showcase()))
	assert.Error(t, r.Register(showcase()), "duplicate key")

	def, err := r.Get("showcase")
	require.NoError(t, err)
	assert.Equal(t, "Showcase", def.Label)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	assert.Len(t, r.ForSlot("main"), 1)
	assert.Empty(t, r.ForSlot("footer"))
}

func TestDefinitionCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Definition)
	}{
		{"bad key", func(d *Definition) { d.Key = "Show Case" }},
		{"zero version", func(d *Definition) { d.Version = 0 }},
		{"no slots", func(d *Definition) { d.Slots = nil }},
		{"unknown type", func(d *Definition) { d.Fields[0].Type = "date" }},
		{"duplicate field", func(d *Definition) { d.Fields = append(d.Fields, d.Fields[0]) }},
		{"translatable integer", func(d *Definition) { d.Fields[0].Translatable = true }},
		{"bad pattern", func(d *Definition) { d.Fields[0].Rules.Pattern = "(" }},
		{"empty collection", func(d *Definition) {
			d.Fields = append(d.Fields, Field{Name: "items", Type: FieldCollection})
		}},
		{"item fields on scalar", func(d *Definition) {
			d.Fields[0].Fields = []Field{{Name: "x", Type: FieldString}}
		}},
		{"missing target", func(d *Definition) { d.DataSource.TargetField = "" }},
		{"target clashes", func(d *Definition) { d.DataSource.TargetField = "limit" }},
		{"maps unknown field", func(d *Definition) { d.DataSource.Params["nope"] = "limit" }},
		{"bad capability key", func(d *Definition) { d.DataSource.Capability = "projects" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := showcase()
			tt.mutate(&d)
			assert.Error(t, NewRegistry().Register(d))
		})
	}
}

func TestRegistryReplaceIsAtomic(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(showcase()))

	bad := showcase()
	bad.Key = "other"
	bad.Version = 0
	err := r.Replace([]Definition{{Key: "fresh", Version: 1, Slots: []string{"main"}}, bad})
	require.Error(t, err)

	_, err = r.Get("showcase")
	assert.NoError(t, err, "previous contents kept")
	_, err = r.Get("fresh")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCheckBindings(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(showcase()))

	catalog := capability.NewCatalog()
	err := r.CheckBindings(catalog)
	require.Error(t, err)
	assert.True(t, errors.Is(err, capability.ErrNotFound))

	catalog.MustRegister(capability.Definition{
		Key:        "projects.visible.v1",
		Parameters: []capability.Parameter{{Name: "count", Type: capability.TypeInteger}},
	}, noop())
	err = r.CheckBindings(catalog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `undeclared parameter "limit"`)

	good := capability.NewCatalog()
	good.MustRegister(capability.Definition{
		Key:        "projects.visible.v1",
		Parameters: []capability.Parameter{{Name: "limit", Type: capability.TypeInteger}},
	}, noop())
	assert.NoError(t, r.CheckBindings(good))
}

func TestRegistryVersionTracksTemplateVersions(t *testing.T) {
	r := NewRegistry()
	empty := r.Version()
	require.NoError(t, r.Register(showcase()))
	v1 := r.Version()
	assert.NotEqual(t, empty, v1)
	assert.Equal(t, v1, r.Version(), "stable for the same set")

	bumped := showcase()
	bumped.Version++
	require.NoError(t, r.Replace([]Definition{bumped}))
	assert.NotEqual(t, v1, r.Version())
}

func TestRegistryCheckInUse(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(showcase()))

	assert.NoError(t, r.CheckInUse(nil))
	assert.NoError(t, r.CheckInUse([]string{"showcase"}))

	err := r.CheckInUse([]string{"showcase", "retired", "gone"})
	require.ErrorIs(t, err, ErrTemplateInUse)
	assert.Contains(t, err.Error(), "retired, gone")
}
