// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// AdminScope is the message signed to produce the site admin key.
const AdminScope = "folio-admin"

var (
	ErrInvalidAdminKey     = errors.New("invalid admin key")
	ErrInvalidPreviewToken = errors.New("invalid preview token")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates an HMAC-based admin key for a scope.
// This is deterministic and verifiable
func GenerateAdminKey(scope, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the scope
func ValidateAdminKey(scope, adminKey, salt string) error {
	if adminKey == "" {
		return ErrInvalidAdminKey
	}
	expected := GenerateAdminKey(scope, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GeneratePreviewToken creates a short, deterministic token that unlocks
// an unpublished page. Uses HMAC for determinism and base62 encoding for
// URL-friendliness
func GeneratePreviewToken(pageSlug, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("preview:" + pageSlug))
	sum := h.Sum(nil)

	// Take first 8 bytes for a shorter token
	return base62Encode(sum[:8])
}

// ValidatePreviewToken checks a token produced by GeneratePreviewToken.
func ValidatePreviewToken(pageSlug, token, salt string) error {
	if token == "" {
		return ErrInvalidPreviewToken
	}
	expected := GeneratePreviewToken(pageSlug, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidPreviewToken
	}
	return nil
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way hash of an IP address for request logs
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars are enough to correlate requests
	return hex.EncodeToString(sum[:8])
}
