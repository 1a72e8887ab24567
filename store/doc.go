// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the keyed record store behind the service.

Every mutation is a single statement: a full-row insert, an upsert keyed by
a uniqueness constraint, or a conditional update. There are no transactions
spanning entities and no version columns, so concurrent writers to the same
key resolve by last-write-wins.

	s := store.New(conn)
	windows, err := s.ListWindows(ctx, requestID)

Lookups that match nothing return ErrNotFound; other failures are wrapped
driver errors.
*/
package store
