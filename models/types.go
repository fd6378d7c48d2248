package models

import "time"

// Experience kinds
const (
	ExperienceWork      = "work"
	ExperienceEducation = "education"
	ExperienceVolunteer = "volunteer"
)

// Initiative status constants
const (
	InitiativeActive   = "active"
	InitiativeArchived = "archived"
)

// Domain types

type Technology struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Image struct {
	ID        int64         `json:"id"`
	Path      string        `json:"path"`
	Alt       LocalizedText `json:"alt"`
	MimeType  string        `json:"mime_type"`
	SizeBytes int64         `json:"size_bytes"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	CreatedAt time.Time     `json:"created_at"`
}

type Project struct {
	ID            int64         `json:"id"`
	Slug          string        `json:"slug"`
	Title         LocalizedText `json:"title"`
	Summary       LocalizedText `json:"summary"`
	Body          LocalizedText `json:"body"`
	URL           string        `json:"url,omitempty"`
	RepositoryURL string        `json:"repository_url,omitempty"`
	CoverImageID  *int64        `json:"cover_image_id,omitempty"`
	Featured      bool          `json:"featured"`
	Visible       bool          `json:"visible"`
	Position      int           `json:"position"`
	TechnologyIDs []int64       `json:"technology_ids"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Skill struct {
	ID       int64         `json:"id"`
	Name     LocalizedText `json:"name"`
	Category string        `json:"category"`
	Level    int           `json:"level"` // 0-100
	Position int           `json:"position"`
	Visible  bool          `json:"visible"`
}

type Course struct {
	ID             int64         `json:"id"`
	Title          LocalizedText `json:"title"`
	Institution    string        `json:"institution"`
	CertificateURL string        `json:"certificate_url,omitempty"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	Position       int           `json:"position"`
	Visible        bool          `json:"visible"`
}

type Experience struct {
	ID           int64         `json:"id"`
	Kind         string        `json:"kind"`
	Organization string        `json:"organization"`
	Role         LocalizedText `json:"role"`
	Description  LocalizedText `json:"description"`
	Location     string        `json:"location,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	EndedAt      *time.Time    `json:"ended_at,omitempty"` // nil while current
	Position     int           `json:"position"`
	Visible      bool          `json:"visible"`
}

type Initiative struct {
	ID          int64         `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	URL         string        `json:"url,omitempty"`
	Status      string        `json:"status"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	Position    int           `json:"position"`
	Visible     bool          `json:"visible"`
}

type ContactChannel struct {
	ID       int64  `json:"id"`
	Kind     string `json:"kind"` // email, github, linkedin, ...
	Label    string `json:"label"`
	Value    string `json:"value"`
	URL      string `json:"url,omitempty"`
	Position int    `json:"position"`
	Visible  bool   `json:"visible"`
}

// WebsiteSettings is a single-row table.
type WebsiteSettings struct {
	SiteName        string        `json:"site_name"`
	Tagline         LocalizedText `json:"tagline"`
	MetaDescription LocalizedText `json:"meta_description"`
	HomePageSlug    string        `json:"home_page_slug"`
	DefaultLocale   string        `json:"default_locale"`
	Locales         StringList    `json:"locales"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type Page struct {
	ID        int64         `json:"id"`
	Slug      string        `json:"slug"`
	Title     LocalizedText `json:"title"`
	Published bool          `json:"published"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PageSection is an instance of a section template placed on a page.
// Data must match the template's field schema.
type PageSection struct {
	ID          int64     `json:"id"`
	PageID      int64     `json:"page_id"`
	TemplateKey string    `json:"template_key"`
	Slot        string    `json:"slot"`
	Position    int       `json:"position"`
	Active      bool      `json:"active"`
	Data        JSONMap   `json:"data"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Request types

type ReorderSectionsRequest struct {
	SectionIDs []int64 `json:"section_ids"`
}

type PreviewCapabilityRequest struct {
	Params map[string]any `json:"params"`
	Locale string         `json:"locale,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
}
