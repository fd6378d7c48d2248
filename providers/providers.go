// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package providers

import (
	"fmt"

	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/store"
)

const (
	TechnologiesList    capability.Key = "technologies.list.v1"
	ImagesGallery       capability.Key = "images.gallery.v1"
	ProjectsVisible     capability.Key = "projects.visible.v1"
	ProjectsBySlug      capability.Key = "projects.by_slug.v1"
	SkillsGrouped       capability.Key = "skills.grouped.v1"
	CoursesCompleted    capability.Key = "courses.completed.v1"
	ExperiencesTimeline capability.Key = "experiences.timeline.v1"
	InitiativesActive   capability.Key = "initiatives.active.v1"
	ContactsChannels    capability.Key = "contacts.channels.v1"
	SettingsWebsite     capability.Key = "settings.website.v1"
)

// Content serves every content module's capabilities from one store.
type Content struct {
	store *store.Store
}

func NewContent(s *store.Store) *Content {
	return &Content{store: s}
}

type entry struct {
	def      capability.Definition
	provider capability.Provider
}

func (c *Content) entries() []entry {
	return []entry{
		{capability.Definition{
			Key:         TechnologiesList,
			Description: "Technologies ordered by name, optionally restricted to ids.",
			Returns:     "list<technology>",
			Parameters: []capability.Parameter{
				{Name: "ids", Type: capability.TypeArrayInteger, Description: "Technology ids to include"},
			},
		}, capability.ProviderFunc(c.technologies)},
		{capability.Definition{
			Key:         ImagesGallery,
			Description: "Images in the order of the given ids. Missing ids are skipped.",
			Returns:     "list<image>",
			Parameters: []capability.Parameter{
				{Name: "ids", Type: capability.TypeArrayInteger, Required: true, Description: "Image ids in display order"},
			},
		}, capability.ProviderFunc(c.gallery)},
		{capability.Definition{
			Key:         ProjectsVisible,
			Description: "Published projects ordered by position.",
			Returns:     "list<project>",
			Parameters: []capability.Parameter{
				{Name: "limit", Type: capability.TypeInteger, Default: 6, Description: "Maximum number of projects"},
				{Name: "featured_only", Type: capability.TypeBoolean, Default: false, Description: "Only featured projects"},
				{Name: "technology_ids", Type: capability.TypeArrayInteger, Description: "Keep projects using any of these technologies"},
			},
		}, capability.ProviderFunc(c.visibleProjects)},
		{capability.Definition{
			Key:         ProjectsBySlug,
			Description: "A single project with its body.",
			Returns:     "project",
			Parameters: []capability.Parameter{
				{Name: "slug", Type: capability.TypeString, Required: true},
			},
		}, capability.ProviderFunc(c.projectBySlug)},
		{capability.Definition{
			Key:         SkillsGrouped,
			Description: "Skills grouped by category.",
			Returns:     "list<skill_group>",
			Parameters: []capability.Parameter{
				{Name: "category", Type: capability.TypeString, Description: "Only this category"},
			},
		}, capability.ProviderFunc(c.groupedSkills)},
		{capability.Definition{
			Key:         CoursesCompleted,
			Description: "Completed courses, most recent first.",
			Returns:     "list<course>",
			Parameters: []capability.Parameter{
				{Name: "limit", Type: capability.TypeInteger, Default: 10},
			},
		}, capability.ProviderFunc(c.completedCourses)},
		{capability.Definition{
			Key:         ExperiencesTimeline,
			Description: "Experiences, newest first.",
			Returns:     "list<experience>",
			Parameters: []capability.Parameter{
				{Name: "kind", Type: capability.TypeString, Description: "work, education or volunteer"},
				{Name: "limit", Type: capability.TypeInteger, Default: 20},
			},
		}, capability.ProviderFunc(c.timeline)},
		{capability.Definition{
			Key:         InitiativesActive,
			Description: "Active initiatives, optionally with archived ones.",
			Returns:     "list<initiative>",
			Parameters: []capability.Parameter{
				{Name: "limit", Type: capability.TypeInteger, Default: 10},
				{Name: "include_archived", Type: capability.TypeBoolean, Default: false},
			},
		}, capability.ProviderFunc(c.initiatives)},
		{capability.Definition{
			Key:         ContactsChannels,
			Description: "Contact channels ordered by position.",
			Returns:     "list<contact>",
		}, capability.ProviderFunc(c.contacts)},
		{capability.Definition{
			Key:         SettingsWebsite,
			Description: "Site-wide settings resolved to the request locale.",
			Returns:     "site",
		}, capability.ProviderFunc(c.settings)},
	}
}

// Register adds every content capability to catalog.
func Register(catalog *capability.Catalog, s *store.Store) error {
	c := NewContent(s)
	for _, e := range c.entries() {
		if err := catalog.Register(e.def, e.provider); err != nil {
			return fmt.Errorf("register %s: %w", e.def.Key, err)
		}
	}
	return nil
}
