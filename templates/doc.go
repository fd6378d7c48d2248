// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package templates defines page-section templates: named, versioned field
schemas that page sections are validated against.

# Definitions

Templates are YAML documents. The built-in set is embedded from
definitions/; an override directory may replace or add templates:

	key: projects_showcase
	version: 2
	label: Projects showcase
	slots: [main]
	fields:
	  - name: limit
	    type: integer
	    default: 6
	    rules: {min: 1, max: 24}
	data_source:
	  capability: projects.visible.v1
	  params: {limit: limit}
	  target_field: projects

Field types: string, text, rich_text, boolean, integer, array_integer,
collection, image, image_gallery. Textual fields marked translatable accept
either a string or an object of translations keyed by locale.

# Validation

Section data is validated on write:

	normalized, err := def.Validate(data)

The returned map has defaults applied, integers as int, and rich text
sanitized. Failures are a *ValidationError keyed by field path, with
collection items addressed as "items.0.quote".

# Registry and Bindings

Registry.CheckBindings fails when a data source names a capability that is
not in the catalog, so misconfigured templates are caught at startup
rather than at first render.

# Reloading

Watcher reloads the override directory on change. A reload that fails to
parse, validate, or bind is rejected and the previous set stays active.
*/
package templates
