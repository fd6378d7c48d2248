// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		value string
		want  language.Tag
		ok    bool
	}{
		{"en", language.English, true},
		{"pt-BR", language.BrazilianPortuguese, true},
		{"pt", language.BrazilianPortuguese, true},
		{"es-MX", language.Spanish, true},
		{"", language.Und, false},
		{"not a tag!", language.Und, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParseTag(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTag(t *testing.T) {
	t.Run("query param wins and is persisted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})
		req.Header.Set("Accept-Language", "en")

		tag, persist := ResolveTag(req)
		assert.Equal(t, language.Spanish, tag)
		assert.True(t, persist)
	})

	t.Run("cookie before accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})
		req.Header.Set("Accept-Language", "es")

		tag, persist := ResolveTag(req)
		assert.Equal(t, language.BrazilianPortuguese, tag)
		assert.False(t, persist)
	})

	t.Run("accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "es-AR,es;q=0.9,en;q=0.5")

		tag, _ := ResolveTag(req)
		assert.Equal(t, language.Spanish, tag)
	})

	t.Run("default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		tag, _ := ResolveTag(req)
		assert.Equal(t, Default(), tag)
	})

	t.Run("configured fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "ja")
		tag, _ := ResolveTagOr(req, language.BrazilianPortuguese)
		assert.Equal(t, language.BrazilianPortuguese, tag)
	})
}

func TestContextRoundTrip(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))

	ctx := WithTag(context.Background(), language.Spanish)
	assert.Equal(t, language.Spanish, FromContext(ctx))
}
