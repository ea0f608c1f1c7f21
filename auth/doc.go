// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and access token handling for the
admin API.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

CheckPassword with an empty hash runs a comparison against a dummy hash and
fails. Login uses this when the email is unknown, so an attacker cannot tell
an unknown email from a wrong password by timing.

CheckPasswordStrength returns the rules a candidate password breaks: at
least 8 characters, one upper-case letter, one digit and one symbol.

# Emails

Emails are trimmed and lower-cased with NormalizeEmail before they are
stored or looked up.

# Access Tokens

TokenManager signs HS256 JWTs carrying the user id and email:

	tm, err := auth.NewTokenManager(secret, 24*time.Hour)
	token, expiresAt, err := tm.Issue(user.ID, user.Email)
	claims, err := tm.Verify(token)

Verify only accepts HS256. Its error tells malformed, expired and forged
tokens apart so the middleware can log the reason; the client always gets
the same 401.

BearerToken extracts the token from an Authorization header.
*/
package auth
