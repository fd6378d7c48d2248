// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var richTextPolicy = bluemonday.UGCPolicy()

// ValidationError maps field paths (e.g. "items.1.title") to messages.
type ValidationError struct {
	Template string
	Fields   map[string][]string
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", p, strings.Join(e.Fields[p], "; ")))
	}
	return fmt.Sprintf("template %s: invalid data: %s", e.Template, strings.Join(parts, ", "))
}

func (e *ValidationError) add(path, format string, args ...any) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[path] = append(e.Fields[path], fmt.Sprintf(format, args...))
}

// Validate checks data against the template's fields and returns a
// normalized copy: defaults applied, integers as int, rich text sanitized.
// Fields the template does not declare are rejected.
func (d *Definition) Validate(data map[string]any) (map[string]any, error) {
	verr := &ValidationError{Template: d.Key}
	out := validateObject(verr, "", d.Fields, data)
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

// ApplyDefaults fills absent fields with their defaults without validating.
// Used at render time for data written under an older template version.
func (d *Definition) ApplyDefaults(data map[string]any) map[string]any {
	out := make(map[string]any, len(d.Fields))
	for k, v := range data {
		out[k] = v
	}
	for _, f := range d.Fields {
		if v, ok := out[f.Name]; (!ok || v == nil) && f.Default != nil {
			out[f.Name] = copyValue(f.Default)
		}
	}
	return out
}

func validateObject(verr *ValidationError, prefix string, fields []Field, data map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	declared := make(map[string]bool, len(fields))

	for _, f := range fields {
		declared[f.Name] = true
		path := prefix + f.Name
		raw, present := data[f.Name]
		if !present || raw == nil {
			if f.Required && f.Default == nil {
				verr.add(path, "is required")
				continue
			}
			if f.Default != nil {
				raw = copyValue(f.Default)
			} else {
				continue
			}
		}
		if v, ok := validateField(verr, path, f, raw); ok {
			out[f.Name] = v
		}
	}

	unknown := make([]string, 0)
	for name := range data {
		if !declared[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		verr.add(prefix+name, "is not a field of this template")
	}
	return out
}

func validateField(verr *ValidationError, path string, f Field, raw any) (any, bool) {
	switch f.Type {
	case FieldString, FieldText, FieldRichText:
		return validateText(verr, path, f, raw)

	case FieldBoolean:
		b, ok := raw.(bool)
		if !ok {
			verr.add(path, "must be a boolean")
			return nil, false
		}
		return b, true

	case FieldInteger:
		n, ok := toInt(raw)
		if !ok {
			verr.add(path, "must be an integer")
			return nil, false
		}
		return n, checkBounds(verr, path, f.Rules, n)

	case FieldImage:
		n, ok := toInt(raw)
		if !ok || n <= 0 {
			verr.add(path, "must be an image id")
			return nil, false
		}
		return n, true

	case FieldArrayInteger, FieldImageGallery:
		items, ok := raw.([]any)
		if !ok {
			if ints, isInts := raw.([]int); isInts {
				items = make([]any, len(ints))
				for i, n := range ints {
					items[i] = n
				}
				ok = true
			}
		}
		if !ok {
			verr.add(path, "must be a list of integers")
			return nil, false
		}
		valid := checkCount(verr, path, f.Rules, len(items))
		out := make([]int, 0, len(items))
		for i, item := range items {
			n, isInt := toInt(item)
			itemPath := fmt.Sprintf("%s.%d", path, i)
			switch {
			case !isInt:
				verr.add(itemPath, "must be an integer")
				valid = false
			case f.Type == FieldImageGallery && n <= 0:
				verr.add(itemPath, "must be an image id")
				valid = false
			case f.Type == FieldArrayInteger && !checkBounds(verr, itemPath, f.Rules, n):
				valid = false
			}
			out = append(out, n)
		}
		return out, valid

	case FieldCollection:
		items, ok := raw.([]any)
		if !ok {
			if maps, isMaps := raw.([]map[string]any); isMaps {
				items = make([]any, len(maps))
				for i := range maps {
					items[i] = maps[i]
				}
				ok = true
			}
		}
		if !ok {
			verr.add(path, "must be a list of objects")
			return nil, false
		}
		before := len(verr.Fields)
		checkCount(verr, path, f.Rules, len(items))
		out := make([]any, 0, len(items))
		for i, item := range items {
			obj, isObj := item.(map[string]any)
			itemPath := fmt.Sprintf("%s.%d", path, i)
			if !isObj {
				verr.add(itemPath, "must be an object")
				continue
			}
			out = append(out, validateObject(verr, itemPath+".", f.Fields, obj))
		}
		return out, len(verr.Fields) == before
	}

	verr.add(path, "has unsupported type %s", f.Type)
	return nil, false
}

func validateText(verr *ValidationError, path string, f Field, raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		s, ok := checkText(verr, path, f, v, f.Required)
		return s, ok
	case map[string]any, map[string]string:
		if !f.Translatable {
			break
		}
		translations := toStringMap(v)
		if translations == nil {
			verr.add(path, "translations must be strings")
			return nil, false
		}
		locales := make([]string, 0, len(translations))
		for locale := range translations {
			locales = append(locales, locale)
		}
		sort.Strings(locales)
		out := make(map[string]any, len(translations))
		valid := true
		nonEmpty := false
		for _, locale := range locales {
			s, ok := checkText(verr, path+"."+locale, f, translations[locale], false)
			valid = valid && ok
			if strings.TrimSpace(s) != "" {
				nonEmpty = true
			}
			out[locale] = s
		}
		if f.Required && !nonEmpty {
			verr.add(path, "is required")
			return nil, false
		}
		return out, valid
	}

	if f.Translatable {
		verr.add(path, "must be a string or an object of translations")
	} else {
		verr.add(path, "must be a string")
	}
	return nil, false
}

func checkText(verr *ValidationError, path string, f Field, s string, required bool) (string, bool) {
	if f.Type == FieldRichText {
		s = richTextPolicy.Sanitize(s)
	}
	valid := true
	if strings.TrimSpace(s) == "" {
		if required {
			verr.add(path, "is required")
			return s, false
		}
		return s, true
	}
	n := utf8.RuneCountInString(s)
	if f.Rules.MinLength != nil && n < *f.Rules.MinLength {
		verr.add(path, "must be at least %d characters", *f.Rules.MinLength)
		valid = false
	}
	if f.Rules.MaxLength != nil && n > *f.Rules.MaxLength {
		verr.add(path, "must be at most %d characters", *f.Rules.MaxLength)
		valid = false
	}
	if len(f.Rules.Options) > 0 && !contains(f.Rules.Options, s) {
		verr.add(path, "must be one of: %s", strings.Join(f.Rules.Options, ", "))
		valid = false
	}
	if f.pattern != nil && s != "" && !f.pattern.MatchString(s) {
		verr.add(path, "has an invalid format")
		valid = false
	}
	return s, valid
}

func checkBounds(verr *ValidationError, path string, r Rules, n int) bool {
	if r.Min != nil && n < *r.Min {
		verr.add(path, "must be at least %d", *r.Min)
		return false
	}
	if r.Max != nil && n > *r.Max {
		verr.add(path, "must be at most %d", *r.Max)
		return false
	}
	return true
}

func checkCount(verr *ValidationError, path string, r Rules, n int) bool {
	if r.MinItems != nil && n < *r.MinItems {
		verr.add(path, "must have at least %d items", *r.MinItems)
		return false
	}
	if r.MaxItems != nil && n > *r.MaxItems {
		verr.add(path, "must have at most %d items", *r.MaxItems)
		return false
	}
	return true
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			return int(x), true
		}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

func toStringMap(v any) map[string]string {
	switch m := v.(type) {
	case map[string]string:
		return m
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil
			}
			out[k] = s
		}
		return out
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// copyValue deep-copies maps and slices so defaults are never shared
// between sections.
func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = copyValue(val)
		}
		return out
	}
	return v
}
