// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capability

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

type entry struct {
	def      Definition
	provider Provider
}

// Catalog maps capability keys to their definition and provider.
// It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[Key]entry
}

func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[Key]entry)}
}

// Register adds a capability. Keys must be valid and unique.
func (c *Catalog) Register(def Definition, provider Provider) error {
	if err := def.validate(); err != nil {
		return err
	}
	if provider == nil {
		return fmt.Errorf("capability %s: provider is required", def.Key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[def.Key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, def.Key)
	}
	c.entries[def.Key] = entry{def: def, provider: provider}
	return nil
}

// MustRegister is Register that panics on error, for static wiring.
func (c *Catalog) MustRegister(def Definition, provider Provider) {
	if err := c.Register(def, provider); err != nil {
		panic(err)
	}
}

// Lookup returns the definition and provider registered under key.
// Unknown keys yield a *NotFoundError.
func (c *Catalog) Lookup(key Key) (Definition, Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return Definition{}, nil, &NotFoundError{Key: key}
	}
	return e.def, e.provider, nil
}

// Has reports whether key is registered.
func (c *Catalog) Has(key Key) bool {
	_, _, err := c.Lookup(key)
	return !errors.Is(err, ErrNotFound)
}

// Definitions returns all registered definitions sorted by key.
func (c *Catalog) Definitions() []Definition {
	c.mu.RLock()
	defs := make([]Definition, 0, len(c.entries))
	for _, e := range c.entries {
		defs = append(defs, e.def)
	}
	c.mu.RUnlock()

	sort.Slice(defs, func(i, j int) bool { return defs[i].Key < defs[j].Key })
	return defs
}
