// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package capability lets content modules expose read-only, parameterized
data queries to the CMS without the CMS importing them.

# Keys and Definitions

A capability is named by a versioned Key such as "projects.visible.v1" and
described by a Definition that declares its parameters:

	capability.Definition{
		Key:     "projects.visible.v1",
		Returns: "list<project>",
		Parameters: []capability.Parameter{
			{Name: "limit", Type: capability.TypeInteger, Default: 6},
		},
	}

# Catalog

Providers are registered once at startup:

	catalog := capability.NewCatalog()
	catalog.MustRegister(def, capability.ProviderFunc(listProjects))

Looking up an unregistered key returns a *NotFoundError, which matches
ErrNotFound with errors.Is.

# Resolver

The Resolver validates input against the definition and runs the provider:

	resolver := capability.NewResolver(catalog,
		capability.WithStrictTypes(true),
		capability.WithUnknownParams(capability.UnknownReject),
	)
	result, err := resolver.Resolve(ctx, "projects.visible.v1", input, ec)

Missing required parameters always fail with *ValidationError; optional
parameters fall back to their declared default. With strict types off,
strings such as "5" or "1,2,3" are coerced. Provider errors and panics are
wrapped in *ExecutionError. Each call is traced with an OpenTelemetry span.
*/
package capability
