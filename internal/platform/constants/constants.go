// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and the scheduling/finance tuning
values that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and redis window configuration.
  - Scheduling: calendar matrix bounds.
  - Finance: report ingestion tuning.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic. The one scheduling constant that does NOT live here
is the 180-minute fallback occupancy duration — it is the interval model's own
contract and is defined once in pkg/interval.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "callboard-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Generous because finance imports upload whole spreadsheets in the body.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50

	// DefaultRateLimitBurst is the maximum burst allowed for the in-memory fallback limiter.
	DefaultRateLimitBurst = 100

	// RateLimitWindow is the fixed window used by the redis-backed limiter.
	RateLimitWindow = 1 * time.Second

	// RateLimitCleanupInterval is how often idle fallback entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Scheduling

const (
	// MatrixMinDays is the smallest date range the busy matrix will render.
	MatrixMinDays = 7

	// MatrixMaxDays is the largest date range the busy matrix will render.
	MatrixMaxDays = 31

	// MatrixDefaultDays is the range used when the caller does not ask for one.
	MatrixDefaultDays = 14
)

// # Finance

const (
	// EventMatchTolerance is the window around a report row's session time in
	// which an existing event of the same play is considered the same session.
	EventMatchTolerance = 2 * time.Minute

	// ReportSource identifies the one supported ticketing provider.
	ReportSource = "INTICKETS"

	// MaxUploadBytes caps the size of an uploaded spreadsheet.
	MaxUploadBytes = 16 << 20
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldTotal   = "total"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore    = "core"
	SchemaFinance = "finance"
)

// # Redis Prefixes

const (
	RedisPrefixRateLimit = "ratelimit:"
)
