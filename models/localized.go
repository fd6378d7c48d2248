// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/danielhkuo/folio/i18n"
)

// LocalizedText maps a locale tag (e.g. "en", "pt-BR") to a translation.
// It is stored as a JSON object.
type LocalizedText map[string]string

// Text builds a LocalizedText holding a single default-locale value.
func Text(value string) LocalizedText {
	return LocalizedText{i18n.Default().String(): value}
}

// Resolve picks the best translation for tag: exact tag, then any
// translation sharing the base language, then the default locale, then
// the first non-empty value in key order.
func (t LocalizedText) Resolve(tag language.Tag) string {
	if len(t) == 0 {
		return ""
	}
	if v := t[tag.String()]; v != "" {
		return v
	}

	base, _ := tag.Base()
	for _, key := range t.keys() {
		parsed, err := language.Parse(key)
		if err != nil {
			continue
		}
		if b, _ := parsed.Base(); b == base && t[key] != "" {
			return t[key]
		}
	}

	if v := t[i18n.Default().String()]; v != "" {
		return v
	}
	for _, key := range t.keys() {
		if t[key] != "" {
			return t[key]
		}
	}
	return ""
}

// IsEmpty reports whether every translation is blank.
func (t LocalizedText) IsEmpty() bool {
	for _, v := range t {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (t LocalizedText) keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value implements driver.Valuer.
func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *LocalizedText) Scan(src any) error {
	return scanJSON(src, t)
}

// UnmarshalJSON accepts either an object of translations or a bare string,
// which is stored under the default locale.
func (t *LocalizedText) UnmarshalJSON(b []byte) error {
	var plain string
	if err := json.Unmarshal(b, &plain); err == nil {
		*t = Text(plain)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("localized text: %w", err)
	}
	*t = m
	return nil
}

// JSONMap is a free-form JSON object column.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src any) error {
	return scanJSON(src, m)
}

// StringList is a JSON array of strings column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src any, dst any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}
