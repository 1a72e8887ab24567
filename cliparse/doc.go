// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Values are read in increasing order of precedence:

 1. a .env file in the working directory, if present
 2. environment variables
 3. CLI flags

# Config Fields

	PORT           -p              Server port (default: 3318)
	DATABASE_URL   -d              Database URL (required)
	DATABASE_TYPE  -t              sqlite or postgres (default: sqlite)
	SYNC_INTERVAL  -sync-interval  Snapshot refresh cadence (default: 2s)
	BASE_URL       -base-url       Public base URL used in share links
	LOG_LEVEL      -log-level      debug, info, warn or error (default: info)

# Validation

ParseFlags returns an error if DATABASE_URL is missing, the port is out of
range, the database type is unknown, the sync interval is not positive or
the log level does not parse.
*/
package cliparse
