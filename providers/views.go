// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package providers

import (
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"

	"github.com/danielhkuo/folio/models"
)

// Views are what capabilities return: flat, locale-resolved copies of the
// stored records, safe to hand to a renderer.

type TechnologyView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon,omitempty"`
}

type ImageView struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	MimeType  string `json:"mime_type"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	SizeBytes int64  `json:"size_bytes"`
	Size      string `json:"size"`
}

type ProjectView struct {
	ID            int64            `json:"id"`
	Slug          string           `json:"slug"`
	Title         string           `json:"title"`
	Summary       string           `json:"summary"`
	Body          string           `json:"body,omitempty"`
	URL           string           `json:"url,omitempty"`
	RepositoryURL string           `json:"repository_url,omitempty"`
	Featured      bool             `json:"featured"`
	Cover         *ImageView       `json:"cover,omitempty"`
	Technologies  []TechnologyView `json:"technologies"`
}

type SkillView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type SkillGroup struct {
	Category string      `json:"category"`
	Skills   []SkillView `json:"skills"`
}

type CourseView struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Institution    string     `json:"institution"`
	CertificateURL string     `json:"certificate_url,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

type ExperienceView struct {
	ID           int64      `json:"id"`
	Kind         string     `json:"kind"`
	Organization string     `json:"organization"`
	Role         string     `json:"role"`
	Description  string     `json:"description,omitempty"`
	Location     string     `json:"location,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	Current      bool       `json:"current"`
}

type InitiativeView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
}

type ContactView struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

type SiteView struct {
	SiteName        string   `json:"site_name"`
	Tagline         string   `json:"tagline"`
	MetaDescription string   `json:"meta_description"`
	HomePageSlug    string   `json:"home_page_slug"`
	Locale          string   `json:"locale"`
	Locales         []string `json:"locales"`
}

func technologyView(t models.Technology) TechnologyView {
	return TechnologyView{ID: t.ID, Name: t.Name, Slug: t.Slug, Icon: t.Icon}
}

func imageView(img models.Image, tag language.Tag) ImageView {
	size := img.SizeBytes
	if size < 0 {
		size = 0
	}
	return ImageView{
		ID:        img.ID,
		URL:       img.Path,
		Alt:       img.Alt.Resolve(tag),
		MimeType:  img.MimeType,
		Width:     img.Width,
		Height:    img.Height,
		SizeBytes: img.SizeBytes,
		Size:      humanize.Bytes(uint64(size)),
	}
}

func courseView(c models.Course, tag language.Tag) CourseView {
	return CourseView{
		ID:             c.ID,
		Title:          c.Title.Resolve(tag),
		Institution:    c.Institution,
		CertificateURL: c.CertificateURL,
		CompletedAt:    c.CompletedAt,
	}
}

func experienceView(e models.Experience, tag language.Tag) ExperienceView {
	return ExperienceView{
		ID:           e.ID,
		Kind:         e.Kind,
		Organization: e.Organization,
		Role:         e.Role.Resolve(tag),
		Description:  e.Description.Resolve(tag),
		Location:     e.Location,
		StartedAt:    e.StartedAt,
		EndedAt:      e.EndedAt,
		Current:      e.EndedAt == nil,
	}
}

func initiativeView(in models.Initiative, tag language.Tag) InitiativeView {
	return InitiativeView{
		ID:          in.ID,
		Name:        in.Name.Resolve(tag),
		Description: in.Description.Resolve(tag),
		URL:         in.URL,
		Status:      in.Status,
		StartedAt:   in.StartedAt,
	}
}
