// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"fmt"
	"regexp"

	"github.com/danielhkuo/folio/capability"
)

// FieldType is the type of a template field.
type FieldType string

const (
	FieldString       FieldType = "string"
	FieldText         FieldType = "text"
	FieldRichText     FieldType = "rich_text"
	FieldBoolean      FieldType = "boolean"
	FieldInteger      FieldType = "integer"
	FieldArrayInteger FieldType = "array_integer"
	FieldCollection   FieldType = "collection"
	FieldImage        FieldType = "image"
	FieldImageGallery FieldType = "image_gallery"
)

func (t FieldType) valid() bool {
	switch t {
	case FieldString, FieldText, FieldRichText, FieldBoolean, FieldInteger,
		FieldArrayInteger, FieldCollection, FieldImage, FieldImageGallery:
		return true
	}
	return false
}

// textual reports whether values of this type may be translated.
func (t FieldType) textual() bool {
	return t == FieldString || t == FieldText || t == FieldRichText
}

// Rules are optional per-field validation constraints. Lengths apply to
// text, bounds to integers and integer items, item counts to lists.
type Rules struct {
	MinLength *int     `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength *int     `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	Min       *int     `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *int     `yaml:"max,omitempty" json:"max,omitempty"`
	MinItems  *int     `yaml:"min_items,omitempty" json:"min_items,omitempty"`
	MaxItems  *int     `yaml:"max_items,omitempty" json:"max_items,omitempty"`
	Options   []string `yaml:"options,omitempty" json:"options,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Field is one entry of a template's schema.
type Field struct {
	Name         string    `yaml:"name" json:"name"`
	Type         FieldType `yaml:"type" json:"type"`
	Label        string    `yaml:"label,omitempty" json:"label,omitempty"`
	Required     bool      `yaml:"required,omitempty" json:"required"`
	Default      any       `yaml:"default,omitempty" json:"default,omitempty"`
	Translatable bool      `yaml:"translatable,omitempty" json:"translatable,omitempty"`
	Rules        Rules     `yaml:"rules,omitempty" json:"rules"`
	// Fields is the item schema of a collection.
	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`

	pattern *regexp.Regexp
}

// DataSource binds a template to a capability. Params maps template field
// names to capability parameter names.
type DataSource struct {
	Capability   capability.Key    `yaml:"capability" json:"capability"`
	Params       map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
	StaticParams map[string]any    `yaml:"static_params,omitempty" json:"static_params,omitempty"`
	TargetField  string            `yaml:"target_field" json:"target_field"`
}

// Definition is a named, versioned schema for a page section.
type Definition struct {
	Key         string      `yaml:"key" json:"key"`
	Version     int         `yaml:"version" json:"version"`
	Label       string      `yaml:"label" json:"label"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Slots       []string    `yaml:"slots" json:"slots"`
	Fields      []Field     `yaml:"fields" json:"fields"`
	DataSource  *DataSource `yaml:"data_source,omitempty" json:"data_source,omitempty"`
}

var templateKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// AllowsSlot reports whether sections of this template may be placed in slot.
func (d *Definition) AllowsSlot(slot string) bool {
	for _, s := range d.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Field looks up a top-level field by name.
func (d *Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// check validates the definition itself and compiles field patterns.
func (d *Definition) check() error {
	if !templateKeyPattern.MatchString(d.Key) {
		return fmt.Errorf("template key %q must be lowercase snake_case", d.Key)
	}
	if d.Version < 1 {
		return fmt.Errorf("template %s: version must be >= 1", d.Key)
	}
	if len(d.Slots) == 0 {
		return fmt.Errorf("template %s: at least one slot is required", d.Key)
	}
	if err := checkFields(d.Key, "", d.Fields); err != nil {
		return err
	}

	ds := d.DataSource
	if ds == nil {
		return nil
	}
	if err := ds.Capability.Validate(); err != nil {
		return fmt.Errorf("template %s: %w", d.Key, err)
	}
	if ds.TargetField == "" {
		return fmt.Errorf("template %s: data_source.target_field is required", d.Key)
	}
	if _, clash := d.Field(ds.TargetField); clash {
		return fmt.Errorf("template %s: target_field %q clashes with a declared field", d.Key, ds.TargetField)
	}
	for field := range ds.Params {
		if _, ok := d.Field(field); !ok {
			return fmt.Errorf("template %s: data_source maps unknown field %q", d.Key, field)
		}
	}
	return nil
}

func checkFields(key, prefix string, fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for i := range fields {
		f := &fields[i]
		path := prefix + f.Name
		if f.Name == "" {
			return fmt.Errorf("template %s: field without name under %q", key, prefix)
		}
		if seen[f.Name] {
			return fmt.Errorf("template %s: duplicate field %q", key, path)
		}
		seen[f.Name] = true
		if !f.Type.valid() {
			return fmt.Errorf("template %s: field %q has unknown type %q", key, path, f.Type)
		}
		if f.Translatable && !f.Type.textual() {
			return fmt.Errorf("template %s: field %q of type %s cannot be translatable", key, path, f.Type)
		}
		if f.Rules.Pattern != "" {
			re, err := regexp.Compile(f.Rules.Pattern)
			if err != nil {
				return fmt.Errorf("template %s: field %q pattern: %w", key, path, err)
			}
			f.pattern = re
		}
		if f.Type == FieldCollection {
			if len(f.Fields) == 0 {
				return fmt.Errorf("template %s: collection %q declares no item fields", key, path)
			}
			if err := checkFields(key, path+".", f.Fields); err != nil {
				return err
			}
		} else if len(f.Fields) > 0 {
			return fmt.Errorf("template %s: only collections may declare item fields (%q)", key, path)
		}
	}
	return nil
}
