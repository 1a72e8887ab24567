// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package syncloop keeps a displayed snapshot current by periodic re-reads.

There is no push channel. A Loop fetches the full snapshot immediately and
then every interval (2 seconds by default), replacing its copy wholesale:

	loop := syncloop.New(fetchPlan, render,
		syncloop.WithName("plan"),
		syncloop.WithErrorHandler(func(err error) { slog.Warn("refresh failed", "error", err) }),
	)
	err := loop.Run(ctx)

# Failure handling

A models.NotFoundError stops the loop and is returned from Run. Any other
error is reported to the error handler and retried on the next tick; the
previous snapshot stays available from Current, so a flaky network shows
stale data rather than nothing.

# Single flight

Fetches never overlap. Ticks are handled on the Run goroutine, so a slow
fetch delays the next tick instead of racing it, and Refresh calls from
other goroutines share whatever fetch is in flight.

# Cancellation

Cancelling the context passed to Run stops the loop and aborts the current
fetch. Nothing outlives the caller.
*/
package syncloop
