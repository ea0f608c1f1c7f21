// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the proyek-gereja API server.

proyek-gereja is the back office of a single congregation: administrators
schedule services (ibadah), keep their run-of-show (agenda), record
attendance per congregant classification (klasifikasi), and read weekly
analytics and PDF/Excel exports.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run .

Or with flags:

	go run . -p 5001 -d "postgres://..." -jwt-secret "..."

An optional .env file (path set with -env) is read first; real environment
variables and flags take precedence over it.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): HS256 signing secret, at least 32 characters

Optional settings:

  - PORT (-p): Server port (default: 5001)
  - TOKEN_TTL (-token-ttl): Access token lifetime (default: 24h)
  - CORS_ORIGINS (-cors-origins): Comma separated origins (default: *)
  - AUTH_RATE_LIMIT (-auth-rate): Login/register requests per minute per IP (default: 20)
  - DB_MAX_OPEN_CONNS (-max-conns): Pool size (default: 10)
  - CHURCH_NAME (-church): Name printed on exports (default: GEREJA XYZ)
  - LOG_LEVEL (-log-level), LOG_FORMAT (-log-format): slog level and text/json output

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers and the domain operations behind them
  - router: Route definitions using Go 1.22+ routing
  - middleware: Envelope helpers, logging, auth gate, CORS, rate limit, metrics
  - models: Request/response and domain types
  - validation: Struct tag validation with Indonesian messages
  - apperr: Coded application errors
  - auth: Password hashing and JWT access tokens
  - export: PDF agenda sheet and Excel attendance workbook
  - metrics: Prometheus collectors
  - db: Connection pool, schema, transactions and advisory locks
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
