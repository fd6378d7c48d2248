// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// ValidationError collects per-field messages for a rejected write.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add records a message for field.
func (e *ValidationError) Add(field, format string, args ...any) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], fmt.Sprintf(format, args...))
}

// OrNil returns nil when no messages were recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsSlug reports whether s is a lowercase, dash-separated slug.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func checkURL(v *ValidationError, field, raw string) {
	if raw == "" {
		return
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		v.Add(field, "must be an absolute URL")
	}
}

func (t *Technology) Validate() error {
	var v ValidationError
	if strings.TrimSpace(t.Name) == "" {
		v.Add("name", "is required")
	}
	if !IsSlug(t.Slug) {
		v.Add("slug", "must be a lowercase slug")
	}
	return v.OrNil()
}

func (i *Image) Validate() error {
	var v ValidationError
	if strings.TrimSpace(i.Path) == "" {
		v.Add("path", "is required")
	}
	if !strings.HasPrefix(i.MimeType, "image/") {
		v.Add("mime_type", "must be an image type")
	}
	if i.SizeBytes < 0 {
		v.Add("size_bytes", "must not be negative")
	}
	if i.Width < 0 || i.Height < 0 {
		v.Add("dimensions", "must not be negative")
	}
	return v.OrNil()
}

func (p *Project) Validate() error {
	var v ValidationError
	if !IsSlug(p.Slug) {
		v.Add("slug", "must be a lowercase slug")
	}
	if p.Title.IsEmpty() {
		v.Add("title", "is required")
	}
	checkURL(&v, "url", p.URL)
	checkURL(&v, "repository_url", p.RepositoryURL)
	return v.OrNil()
}

func (s *Skill) Validate() error {
	var v ValidationError
	if s.Name.IsEmpty() {
		v.Add("name", "is required")
	}
	if strings.TrimSpace(s.Category) == "" {
		v.Add("category", "is required")
	}
	if s.Level < 0 || s.Level > 100 {
		v.Add("level", "must be between 0 and 100")
	}
	return v.OrNil()
}

func (c *Course) Validate() error {
	var v ValidationError
	if c.Title.IsEmpty() {
		v.Add("title", "is required")
	}
	if strings.TrimSpace(c.Institution) == "" {
		v.Add("institution", "is required")
	}
	checkURL(&v, "certificate_url", c.CertificateURL)
	return v.OrNil()
}

func (e *Experience) Validate() error {
	var v ValidationError
	switch e.Kind {
	case ExperienceWork, ExperienceEducation, ExperienceVolunteer:
	default:
		v.Add("kind", "must be one of: work, education, volunteer")
	}
	if strings.TrimSpace(e.Organization) == "" {
		v.Add("organization", "is required")
	}
	if e.Role.IsEmpty() {
		v.Add("role", "is required")
	}
	if e.StartedAt.IsZero() {
		v.Add("started_at", "is required")
	}
	if e.EndedAt != nil && e.EndedAt.Before(e.StartedAt) {
		v.Add("ended_at", "must not be before started_at")
	}
	return v.OrNil()
}

func (i *Initiative) Validate() error {
	var v ValidationError
	if i.Name.IsEmpty() {
		v.Add("name", "is required")
	}
	if i.Status == "" {
		i.Status = InitiativeActive
	}
	if i.Status != InitiativeActive && i.Status != InitiativeArchived {
		v.Add("status", "must be active or archived")
	}
	checkURL(&v, "url", i.URL)
	return v.OrNil()
}

func (c *ContactChannel) Validate() error {
	var v ValidationError
	if strings.TrimSpace(c.Kind) == "" {
		v.Add("kind", "is required")
	}
	if strings.TrimSpace(c.Value) == "" {
		v.Add("value", "is required")
	}
	checkURL(&v, "url", c.URL)
	return v.OrNil()
}

func (s *WebsiteSettings) Validate() error {
	var v ValidationError
	if strings.TrimSpace(s.SiteName) == "" {
		v.Add("site_name", "is required")
	}
	if s.HomePageSlug != "" && !IsSlug(s.HomePageSlug) {
		v.Add("home_page_slug", "must be a lowercase slug")
	}
	return v.OrNil()
}

func (p *Page) Validate() error {
	var v ValidationError
	if !IsSlug(p.Slug) {
		v.Add("slug", "must be a lowercase slug")
	}
	if p.Title.IsEmpty() {
		v.Add("title", "is required")
	}
	return v.OrNil()
}
