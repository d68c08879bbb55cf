// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifiers, share codes and owner tokens.

# Owner Tokens

Owners authenticate with HS256 JWTs signed with the configured secret:

	token, err := auth.IssueOwnerToken(ownerID, models.RoleOwner, secret, ttl, time.Now())
	identity, err := auth.ParseOwnerToken(token, secret, time.Now())

The subject is the owner ID and the "role" claim is either "owner" or
"admin". Expired tokens return ErrTokenExpired; anything else that fails
verification (wrong secret, wrong algorithm, foreign issuer, missing
subject) returns ErrInvalidToken.

Participants never hold tokens. Anyone with a share code may draw.

# Share Codes

Share codes are the only public handle of a draw configuration:

	code := auth.GenerateShareCode(configID, salt)

Codes are HMAC-SHA256 of the configuration ID, truncated to 64 bits and
base62 encoded (alphanumeric only), left-padded to ShareCodeLength. They are
deterministic from the ID and salt, so changing the salt changes the codes
of new configurations only; existing codes are stored.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
