// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers of the CMS.

# Handler Types

  - ContentHandler: one Resource per content module (projects, skills,
    courses, experiences, initiatives, contacts, images, technologies,
    pages) sharing generic list/get/create/update/delete handling
  - SettingsHandler: the single website settings record
  - SectionHandler: page sections, validated against their template
  - CatalogHandler: template and capability listings, capability preview
  - PageHandler: public page rendering, admin previews and preview links

# Errors

writeError maps domain errors to responses:

	models.ValidationError, templates.ValidationError,
	capability.ValidationError            → 422 with per-field messages
	store.ErrNotFound, unknown template,
	unknown capability                    → 404
	store.ErrConflict                     → 409
	anything else                         → 500, logged with request id

Public page failures other than a missing page are always reported as a
generic 500 so section internals never reach visitors.

# Page Responses

Requests with X-Inertia: true receive the page object as JSON. Other
requests get a minimal HTML document carrying the same object in the
data-page attribute. The object's version is the template registry
fingerprint; a stale X-Inertia-Version yields 409 with X-Inertia-Location.
*/
package handlers
