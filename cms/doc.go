// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cms turns stored page sections into view models.

For each section the Renderer looks up its template, fills in field
defaults, picks the request locale out of translatable fields and, when
the template declares a data source, resolves the bound capability:

	params := static_params + {capability_param: section[field]}
	data[target_field] = resolver.Resolve(ctx, capability, params, ec)

Fields that are unset are not mapped, so the capability's own defaults
apply. RenderPage renders active sections in parallel (bounded by
WithConcurrency), returns them grouped by slot in slot/position/id order,
and fails as a whole if any section fails.
*/
package cms
