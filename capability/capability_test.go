// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoProvider() Provider {
	return ProviderFunc(func(ctx context.Context, params Params, ec ExecutionContext) (any, error) {
		return params, nil
	})
}

func listDefinition() Definition {
	return Definition{
		Key:     "projects.visible.v1",
		Returns: "list<project>",
		Parameters: []Parameter{
			{Name: "limit", Type: TypeInteger, Default: 6},
			{Name: "featured_only", Type: TypeBoolean, Default: false},
			{Name: "technology_ids", Type: TypeArrayInteger},
			{Name: "slug", Type: TypeString, Required: true},
		},
	}
}

func TestKeyValidate(t *testing.T) {
	valid := []Key{"projects.visible.v1", "settings.website.v2", "a.b_c.v10"}
	for _, k := range valid {
		assert.NoError(t, k.Validate(), k)
	}

	invalid := []Key{"", "projects", "projects.v0", "Projects.visible.v1", "projects.visible", "v1", "projects..v1"}
	for _, k := range invalid {
		assert.Error(t, k.Validate(), k)
	}
}

func TestCatalogRegister(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(listDefinition(), echoProvider()))

	err := c.Register(listDefinition(), echoProvider())
	assert.ErrorIs(t, err, ErrDuplicate)

	assert.Error(t, c.Register(Definition{Key: "bad"}, echoProvider()))
	assert.Error(t, c.Register(Definition{Key: "x.v1"}, nil))
	assert.Error(t, c.Register(Definition{
		Key:        "dup.params.v1",
		Parameters: []Parameter{{Name: "a", Type: TypeString}, {Name: "a", Type: TypeString}},
	}, echoProvider()))
	assert.Error(t, c.Register(Definition{
		Key:        "bad.type.v1",
		Parameters: []Parameter{{Name: "a", Type: "date"}},
	}, echoProvider()))

	assert.True(t, c.Has("projects.visible.v1"))
	assert.False(t, c.Has("skills.grouped.v1"))
}

func TestCatalogLookupNotFound(t *testing.T) {
	c := NewCatalog()
	_, _, err := c.Lookup("missing.thing.v1")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, Key("missing.thing.v1"), nf.Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogDefinitionsSorted(t *testing.T) {
	c := NewCatalog()
	c.MustRegister(Definition{Key: "skills.grouped.v1"}, echoProvider())
	c.MustRegister(Definition{Key: "contacts.channels.v1"}, echoProvider())
	c.MustRegister(Definition{Key: "projects.visible.v1"}, echoProvider())

	var keys []Key
	for _, d := range c.Definitions() {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []Key{"contacts.channels.v1", "projects.visible.v1", "skills.grouped.v1"}, keys)
}

func TestCatalogConcurrentAccess(t *testing.T) {
	c := NewCatalog()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Register(listDefinition(), echoProvider())
		}()
		go func() {
			defer wg.Done()
			_ = c.Has("projects.visible.v1")
		}()
	}
	wg.Wait()
	assert.Len(t, c.Definitions(), 1)
}

func TestResolveAppliesDefaults(t *testing.T) {
	c := NewCatalog()
	c.MustRegister(listDefinition(), echoProvider())
	r := NewResolver(c)

	out, err := r.Resolve(context.Background(), "projects.visible.v1", map[string]any{"slug": "folio"}, ExecutionContext{})
	require.NoError(t, err)

	params := out.(Params)
	assert.Equal(t, 6, params["limit"])
	assert.Equal(t, false, params["featured_only"])
	assert.Equal(t, "folio", params["slug"])
	assert.NotContains(t, params, "technology_ids")
}

func TestResolveRequiredNeverDropped(t *testing.T) {
	c := NewCatalog()
	c.MustRegister(listDefinition(), echoProvider())

	for _, policy := range []UnknownParamPolicy{UnknownReject, UnknownDrop} {
		r := NewResolver(c, WithUnknownParams(policy), WithStrictTypes(false))
		_, err := r.Resolve(context.Background(), "projects.visible.v1", map[string]any{"slug": nil}, ExecutionContext{})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), policy)
		assert.Contains(t, verr.Problems, "slug: required")
	}
}

func TestResolveUnknownParams(t *testing.T) {
	c := NewCatalog()
	c.MustRegister(listDefinition(), echoProvider())
	input := map[string]any{"slug": "a", "colour": "blue"}

	_, err := NewResolver(c).Resolve(context.Background(), "projects.visible.v1", input, ExecutionContext{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"colour: unknown parameter"}, verr.Problems)

	out, err := NewResolver(c, WithUnknownParams(UnknownDrop)).Resolve(context.Background(), "projects.visible.v1", input, ExecutionContext{})
	require.NoError(t, err)
	assert.NotContains(t, out.(Params), "colour")
}

func TestResolveStrictTypes(t *testing.T) {
	c := NewCatalog()
	c.MustRegister(listDefinition(), echoProvider())
	input := map[string]any{"slug": "a", "limit": "3", "technology_ids": "1, 2"}

	_, err := NewResolver(c).Resolve(context.Background(), "projects.visible.v1", input, ExecutionContext{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 2)

	out, err := NewResolver(c, WithStrictTypes(false)).Resolve(context.Background(), "projects.visible.v1", input, ExecutionContext{})
	require.NoError(t, err)
	params := out.(Params)
	assert.Equal(t, 3, params["limit"])
	assert.Equal(t, []int{1, 2}, params["technology_ids"])
}

func TestResolveAcceptsJSONNumbers(t *testing.T) {
	c := NewCatalog()
	c.MustRegister(listDefinition(), echoProvider())
	input := map[string]any{"slug": "a", "limit": float64(4), "technology_ids": []any{float64(7)}}

	out, err := NewResolver(c).Resolve(context.Background(), "projects.visible.v1", input, ExecutionContext{})
	require.NoError(t, err)
	assert.Equal(t, 4, out.(Params)["limit"])
	assert.Equal(t, []int{7}, out.(Params)["technology_ids"])

	for _, bad := range []float64{4.5, 1e19, -1e19, math.Inf(1), math.NaN()} {
		input["limit"] = bad
		_, err = NewResolver(c).Resolve(context.Background(), "projects.visible.v1", input, ExecutionContext{})
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "limit %v", bad)
	}
}

func TestResolveNotFound(t *testing.T) {
	r := NewResolver(NewCatalog())
	_, err := r.Resolve(context.Background(), "nope.none.v1", nil, ExecutionContext{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveWrapsProviderErrors(t *testing.T) {
	boom := errors.New("boom")
	c := NewCatalog()
	c.MustRegister(Definition{Key: "fails.v1"}, ProviderFunc(func(context.Context, Params, ExecutionContext) (any, error) {
		return nil, boom
	}))
	c.MustRegister(Definition{Key: "panics.v1"}, ProviderFunc(func(context.Context, Params, ExecutionContext) (any, error) {
		panic("kaboom")
	}))
	r := NewResolver(c)

	_, err := r.Resolve(context.Background(), "fails.v1", nil, ExecutionContext{})
	var exec *ExecutionError
	require.True(t, errors.As(err, &exec))
	assert.ErrorIs(t, err, boom)

	_, err = r.Resolve(context.Background(), "panics.v1", nil, ExecutionContext{})
	require.True(t, errors.As(err, &exec))
	assert.Contains(t, err.Error(), "kaboom")
}

func TestResolveLogsProviderPanics(t *testing.T) {
	var buf bytes.Buffer
	c := NewCatalog()
	c.MustRegister(Definition{Key: "panics.v1"}, ProviderFunc(func(context.Context, Params, ExecutionContext) (any, error) {
		panic("kaboom")
	}))
	r := NewResolver(c, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	_, err := r.Resolve(context.Background(), "panics.v1", nil, ExecutionContext{})
	require.Error(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "panics.v1", entry["capability"])
	assert.Equal(t, "panic: kaboom", entry["error"])
}

func TestDecodeParams(t *testing.T) {
	var p struct {
		Limit         int   `param:"limit"`
		FeaturedOnly  bool  `param:"featured_only"`
		TechnologyIDs []int `param:"technology_ids"`
	}
	err := DecodeParams(Params{"limit": 3, "featured_only": true, "technology_ids": []int{1, 2}}, &p)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Limit)
	assert.True(t, p.FeaturedOnly)
	assert.Equal(t, []int{1, 2}, p.TechnologyIDs)
}

func TestParseUnknownParamPolicy(t *testing.T) {
	p, err := ParseUnknownParamPolicy("")
	require.NoError(t, err)
	assert.Equal(t, UnknownReject, p)

	p, err = ParseUnknownParamPolicy("drop")
	require.NoError(t, err)
	assert.Equal(t, UnknownDrop, p)

	_, err = ParseUnknownParamPolicy("ignore")
	assert.Error(t, err)
}
