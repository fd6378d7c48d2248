// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/danielhkuo/folio/capability"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateInUse    = errors.New("template in use")
)

// Registry holds the template definitions known to the CMS.
// It is safe for concurrent use; Replace swaps the whole set atomically.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register validates def and adds it. Keys must be unique.
func (r *Registry) Register(def Definition) error {
	if err := def.check(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Key]; exists {
		return fmt.Errorf("template %q already registered", def.Key)
	}
	r.defs[def.Key] = def
	return nil
}

// Replace validates every definition and, only if all are valid, swaps
// them in as the registry's contents.
func (r *Registry) Replace(defs []Definition) error {
	next := make(map[string]Definition, len(defs))
	for _, def := range defs {
		if err := def.check(); err != nil {
			return err
		}
		if _, exists := next[def.Key]; exists {
			return fmt.Errorf("template %q defined twice", def.Key)
		}
		next[def.Key] = def
	}
	r.mu.Lock()
	r.defs = next
	r.mu.Unlock()
	return nil
}

// Get returns the template registered under key.
func (r *Registry) Get(key string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[key]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
	}
	return def, nil
}

// All returns every definition sorted by key.
func (r *Registry) All() []Definition {
	r.mu.RLock()
	out := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Version fingerprints the registered keys and versions. It changes when a
// reload adds, removes or bumps a template.
func (r *Registry) Version() string {
	h := sha256.New()
	for _, def := range r.All() {
		fmt.Fprintf(h, "%s@%d;", def.Key, def.Version)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// ForSlot returns the definitions that may be placed in slot.
func (r *Registry) ForSlot(slot string) []Definition {
	var out []Definition
	for _, def := range r.All() {
		if def.AllowsSlot(slot) {
			out = append(out, def)
		}
	}
	return out
}

// CheckBindings verifies that every data source references a registered
// capability and maps only to parameters that capability declares.
func (r *Registry) CheckBindings(catalog *capability.Catalog) error {
	return checkBindings(r.All(), catalog)
}

func checkBindings(defs []Definition, catalog *capability.Catalog) error {
	var errs []error
	for _, def := range defs {
		ds := def.DataSource
		if ds == nil {
			continue
		}
		capDef, _, err := catalog.Lookup(ds.Capability)
		if err != nil {
			errs = append(errs, fmt.Errorf("template %s: %w", def.Key, err))
			continue
		}
		for field, param := range ds.Params {
			if _, ok := capDef.Parameter(param); !ok {
				errs = append(errs, fmt.Errorf("template %s: field %q maps to undeclared parameter %q of %s", def.Key, field, param, ds.Capability))
			}
		}
		for param := range ds.StaticParams {
			if _, ok := capDef.Parameter(param); !ok {
				errs = append(errs, fmt.Errorf("template %s: static parameter %q not declared by %s", def.Key, param, ds.Capability))
			}
		}
	}
	return errors.Join(errs...)
}

// CheckInUse verifies that every key in use by saved sections is
// registered.
func (r *Registry) CheckInUse(keys []string) error {
	return checkInUse(r.All(), keys)
}

func checkInUse(defs []Definition, keys []string) error {
	known := make(map[string]bool, len(defs))
	for _, def := range defs {
		known[def.Key] = true
	}
	var missing []string
	for _, key := range keys {
		if !known[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: sections still use %s", ErrTemplateInUse, strings.Join(missing, ", "))
	}
	return nil
}
