// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the API error taxonomy.

Every error a caller may see is an *Error with a stable code and HTTP status:

	VALIDATION_ERROR     400  malformed or out-of-range input
	INVALID_ID           400  malformed path parameter
	NOT_FOUND            404  referenced entity absent
	DUPLICATE_NAME       409  klasifikasi name taken
	EMAIL_EXISTS         409  email already registered
	REFERENCE_EXISTS     409  delete blocked by kehadiran rows
	DAILY_LIMIT_REACHED  409  three ibadah already on that date
	INVALID_CREDENTIALS  401  login failed (same message for every cause)
	UNAUTHORIZED         401  missing or bad bearer token
	RATE_LIMITED         429  too many auth attempts
	SERVER_ERROR         500  anything unexpected

Handlers pass errors through From. Unknown errors come back as ErrServer
with ok=false; the handler logs the original and the caller only sees the
generic message.
*/
package apperr
