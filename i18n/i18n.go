// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package i18n

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "folio_lang"
)

var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// Supported returns the list of supported language tags. The first entry
// is the default.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// ParseTag parses value and reports whether it maps to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return supported[index], true
}

// MatchTags returns the best supported tag for the preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[index]
}

// ResolveTag determines the best language tag for the request: the lang
// query param, then the language cookie, then Accept-Language.
// The bool reports whether the query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	return ResolveTagOr(r, Default())
}

// ResolveTagOr is ResolveTag with fallback used when the request carries
// no usable preference.
func ResolveTagOr(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if r == nil {
		return fallback, false
	}

	if value := r.URL.Query().Get(LangParam); value != "" {
		if tag, ok := ParseTag(value); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, index, confidence := matcher.Match(tags...); confidence != language.No {
				return supported[index], false
			}
		}
	}

	return fallback, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKey struct{}

// WithTag stores tag on the context.
func WithTag(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the tag stored by WithTag, or the default.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return Default()
}
