// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	r.Use(middleware.WithLogging(cfg.AdminKeySalt))

Logs request start (method, path, hashed client IP) and completion
(status, duration_ms). Every request carries a request id, taken from
X-Request-ID or generated, echoed in the response and available through
RequestID(ctx).

# CORS Middleware

	r.Use(middleware.CORS(cfg.CORSOrigins))

Only listed origins (or any, with "*") receive CORS headers. Allowed
headers include X-Admin-Key and the Inertia headers.

# Locale

	r.Use(middleware.Locale(cfg.Locale()))

Locale stores the request language on the context (see package i18n).
A ?lang= choice is remembered in the folio_lang cookie; requests with no
usable preference get the configured default.

# Admin Authentication

	r.Use(middleware.RequireAdmin(cfg.AdminKeySalt))

Requests without a valid X-Admin-Key get 401.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationResponse(w, "invalid", fields) // 422

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP.
*/
package middleware
