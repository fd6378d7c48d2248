// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package providers exposes the content modules (projects, skills, courses,
// experiences, initiatives, contacts, images, technologies and settings) as
// capabilities. Hidden records are only returned in preview mode.
package providers
