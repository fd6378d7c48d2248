// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capability

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/text/language"
)

// Key names a read-only data-producing operation, e.g. "projects.visible.v1".
type Key string

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*\.v[1-9][0-9]*$`)

// Validate checks that the key has at least one name segment followed by a
// version segment.
func (k Key) Validate() error {
	if !keyPattern.MatchString(string(k)) {
		return fmt.Errorf("invalid capability key %q: want dotted lowercase segments ending in .vN", string(k))
	}
	return nil
}

func (k Key) String() string { return string(k) }

// ParamType is the declared type of a capability parameter.
type ParamType string

const (
	TypeString       ParamType = "string"
	TypeInteger      ParamType = "integer"
	TypeNumber       ParamType = "number"
	TypeBoolean      ParamType = "boolean"
	TypeArrayInteger ParamType = "array_integer"
	TypeArrayString  ParamType = "array_string"
)

func (t ParamType) valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArrayInteger, TypeArrayString:
		return true
	}
	return false
}

// Parameter declares one input of a capability.
type Parameter struct {
	Name        string    `json:"name" yaml:"name"`
	Type        ParamType `json:"type" yaml:"type"`
	Required    bool      `json:"required" yaml:"required"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Definition describes a capability: its key, parameter schema, and the
// shape of what it returns.
type Definition struct {
	Key         Key         `json:"key"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter looks up a declared parameter by name.
func (d Definition) Parameter(name string) (Parameter, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

func (d Definition) validate() error {
	if err := d.Key.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Parameters))
	for _, p := range d.Parameters {
		if p.Name == "" {
			return fmt.Errorf("capability %s: parameter without name", d.Key)
		}
		if seen[p.Name] {
			return fmt.Errorf("capability %s: duplicate parameter %q", d.Key, p.Name)
		}
		seen[p.Name] = true
		if !p.Type.valid() {
			return fmt.Errorf("capability %s: parameter %q has unknown type %q", d.Key, p.Name, p.Type)
		}
	}
	return nil
}

// Params are the validated inputs handed to a provider.
type Params map[string]any

// ExecutionContext carries request-scoped information to providers.
type ExecutionContext struct {
	Locale language.Tag
	// Preview includes records hidden from the public site.
	Preview bool
}

// Provider executes one capability.
type Provider interface {
	Execute(ctx context.Context, params Params, ec ExecutionContext) (any, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, params Params, ec ExecutionContext) (any, error)

func (f ProviderFunc) Execute(ctx context.Context, params Params, ec ExecutionContext) (any, error) {
	return f(ctx, params, ec)
}
