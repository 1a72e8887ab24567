// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SlugLength is the length of every public request and plan slug.
const SlugLength = 10

// MaxTokenLength bounds client-generated participant tokens.
const MaxTokenLength = 128

const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrInvalidToken = errors.New("invalid token format")
	ErrInvalidSlug  = errors.New("invalid slug format")
)

// NewID returns a random internal row ID. IDs never leave the server.
func NewID() string {
	return uuid.NewString()
}

// GenerateSlug creates a random 10-character base62 slug.
// Bytes >= 248 are rejected so every character is equally likely.
func GenerateSlug() (string, error) {
	slug := make([]byte, 0, SlugLength)
	buf := make([]byte, SlugLength*2)
	for len(slug) < SlugLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate slug: %w", err)
		}
		for _, b := range buf {
			if b >= 248 {
				continue
			}
			slug = append(slug, base62Chars[b%62])
			if len(slug) == SlugLength {
				break
			}
		}
	}
	return string(slug), nil
}

// ValidateSlug checks the slug shape so malformed links 404 without a query.
func ValidateSlug(slug string) error {
	if len(slug) != SlugLength {
		return ErrInvalidSlug
	}
	for i := 0; i < len(slug); i++ {
		if !isBase62(slug[i]) {
			return ErrInvalidSlug
		}
	}
	return nil
}

// GenerateParticipantToken mints an identity token for clients that don't
// bring their own. Tokens identify, they do not authenticate.
func GenerateParticipantToken() string {
	return uuid.NewString()
}

// ValidateToken accepts any printable ASCII token up to MaxTokenLength.
func ValidateToken(token string) error {
	if token == "" || len(token) > MaxTokenLength {
		return ErrInvalidToken
	}
	for i := 0; i < len(token); i++ {
		if token[i] < 0x21 || token[i] > 0x7e {
			return ErrInvalidToken
		}
	}
	return nil
}

func isBase62(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
