// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package overlap finds meeting slots shared by at least two participants.

Windows are half-open intervals [start, end). Two windows overlap when
max(start) < min(end); the overlap is that intersection.

	candidates := overlap.Compute(windows)

Compute is pure: it does no I/O and keeps no state, so callers recompute it
from the current window set whenever they need it.
*/
package overlap
