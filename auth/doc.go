// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin authentication and token generation utilities.

# Admin Keys

The site has a single admin key derived with HMAC-SHA256 from AdminScope
and the configured salt:

	adminKey := auth.GenerateAdminKey(auth.AdminScope, salt)
	err := auth.ValidateAdminKey(auth.AdminScope, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
rotating the salt rotates the key and nothing is stored in the database.
Clients send it in the X-Admin-Key header.

# Preview Tokens

Unpublished pages can be shared through a preview token:

	token := auth.GeneratePreviewToken(page.Slug, salt)
	// GET /p/{slug}?preview=<token>

Tokens are base62 encoded (alphanumeric only) and bound to the page slug.

# ID Generation

Random hex strings, used for fresh salts:

	id, err := auth.GenerateID(32)

# IP Hashing

Request logs record HashIP(clientIP, salt) instead of the raw address.
*/
package auth
