// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates the identifiers the service hands out.

# Slugs

Requests and plans are addressed only by a public slug:

	slug, err := auth.GenerateSlug()  // e.g. "a8Fk02LmQz"

Slugs are 10 random base62 characters (about 59 bits). Uniqueness is
enforced by the database; callers retry on a collision.

# Internal IDs

Row IDs are UUIDv4 strings and are never serialised to clients:

	id := auth.NewID()

# Participant Tokens

A participant token is an opaque value the client stores and sends back in
the X-Participant-Token header. It is the join key for responses and carries
no authentication guarantee:

	token := auth.GenerateParticipantToken()
	err := auth.ValidateToken(token)
*/
package auth
