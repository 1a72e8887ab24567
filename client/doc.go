// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a small typed client for the tribe widget API.

It reads the same snapshots the web widget polls, so a syncloop.Loop can be
built over a remote server exactly as over a local service:

	c := client.New("http://localhost:3318")
	loop := syncloop.New(func(ctx context.Context) (models.PlanSnapshot, error) {
		return c.GetPlanSnapshot(ctx, slug)
	}, render)

A 404 comes back as *models.NotFoundError, which ends the loop.
*/
package client
