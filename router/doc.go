// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes of the CMS on a chi router.

# Endpoints

Public:

	GET /health   - Database ping
	GET /         - Home page (slug from website settings)
	GET /p/{slug} - Published page, or any page with ?preview=<token>

Admin (requires X-Admin-Key):

	GET|POST       /admin/{resource}
	GET|PUT|DELETE /admin/{resource}/{id}
	GET|PUT        /admin/settings
	GET|POST       /admin/pages/{id}/sections
	POST           /admin/pages/{id}/sections/reorder
	PUT|DELETE     /admin/sections/{id}
	GET            /admin/pages/{id}/preview
	POST           /admin/pages/{id}/preview-link
	GET            /admin/templates[?slot=]
	GET            /admin/templates/{key}
	GET            /admin/capabilities
	POST           /admin/capabilities/{key}/preview

{resource} is one of projects, technologies, images, skills, courses,
experiences, initiatives, contacts or pages.

Every request passes through request logging, CORS and locale resolution.
*/
package router
