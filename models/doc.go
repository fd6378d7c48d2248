// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

Content records managed through the admin API:

  - Technology: tag attached to projects
  - Image: image metadata (binary storage lives elsewhere)
  - Project, Skill, Course, Experience, Initiative, ContactChannel
  - WebsiteSettings: single-row site configuration
  - Page, PageSection: CMS pages and the template instances placed on them

# Localized Text

User-facing strings are stored as LocalizedText, a JSON object keyed by
locale tag:

	{"en": "Projects", "pt-BR": "Projetos"}

Resolve picks the best translation for a language.Tag, falling back to the
base language, the default locale, then any non-empty value. A bare JSON
string is accepted on input and stored under the default locale.

# Validation

Each writable type has a Validate method returning *ValidationError, which
carries per-field messages:

	if err := project.Validate(); err != nil {
		// err.(*models.ValidationError).Fields["slug"]
	}

# Constants

Experience kinds:

	ExperienceWork      = "work"
	ExperienceEducation = "education"
	ExperienceVolunteer = "volunteer"

Initiative status:

	InitiativeActive   = "active"
	InitiativeArchived = "archived"
*/
package models
