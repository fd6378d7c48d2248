// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var builtinFS embed.FS

// Builtin returns the definitions shipped with the binary.
func Builtin() ([]Definition, error) {
	return LoadFS(builtinFS, "definitions")
}

// LoadFS reads every .yaml/.yml file in dir. A file may hold several
// definitions as separate YAML documents. Unknown keys are errors.
func LoadFS(fsys fs.FS, dir string) ([]Definition, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && isYAML(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var defs []Definition
	for _, name := range names {
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		parsed, err := parse(content)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		defs = append(defs, parsed...)
	}
	return defs, nil
}

// LoadDir reads definitions from a directory on disk.
func LoadDir(dir string) ([]Definition, error) {
	return LoadFS(os.DirFS(dir), ".")
}

func parse(content []byte) ([]Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var defs []Definition
	for {
		var def Definition
		err := dec.Decode(&def)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if def.Key == "" && len(def.Fields) == 0 {
			continue // empty document
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Merge returns base with every definition in overrides replacing the one
// with the same key, or appended when new.
func Merge(base, overrides []Definition) []Definition {
	index := make(map[string]int, len(base))
	out := make([]Definition, len(base))
	copy(out, base)
	for i, def := range out {
		index[def.Key] = i
	}
	for _, def := range overrides {
		if i, ok := index[def.Key]; ok {
			out[i] = def
			continue
		}
		index[def.Key] = len(out)
		out = append(out, def)
	}
	return out
}

// Load returns the built-in definitions merged with those in overrideDir.
// An empty overrideDir yields only the built-ins.
func Load(overrideDir string) ([]Definition, error) {
	defs, err := Builtin()
	if err != nil {
		return nil, err
	}
	if overrideDir == "" {
		return defs, nil
	}
	overrides, err := LoadDir(overrideDir)
	if err != nil {
		return nil, err
	}
	return Merge(defs, overrides), nil
}

// NewRegistryFrom builds a registry holding defs.
func NewRegistryFrom(defs []Definition) (*Registry, error) {
	r := NewRegistry()
	if err := r.Replace(defs); err != nil {
		return nil, err
	}
	return r, nil
}
