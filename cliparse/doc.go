// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Values are resolved in this order, first match wins:

 1. CLI flags
 2. Environment variables
 3. The .env file (default ".env", override with -env, missing file is fine)
 4. Built-in defaults

# Settings

	-p            PORT               Server port (default 5001)
	-d            DATABASE_URL       PostgreSQL connection string (required)
	-max-conns    DB_MAX_OPEN_CONNS  Pool size (default 10)
	-jwt-secret   JWT_SECRET         HMAC secret, at least 32 chars (required)
	-token-ttl    TOKEN_TTL          Bearer token lifetime (default 24h)
	-cors-origins CORS_ORIGINS       Comma separated origins (default *)
	-auth-rate    AUTH_RATE_LIMIT    Login/register requests per minute per IP (default 20)
	-church       CHURCH_NAME        Heading on PDF exports (default "GEREJA XYZ")
	-log-level    LOG_LEVEL          debug, info, warn, error (default info)
	-log-format   LOG_FORMAT         text or json (default text)
*/
package cliparse
