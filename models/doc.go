// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - DrawConfiguration: an owner's draw (mode, policy, share code, payload)
  - Item: a weighted entry of a wheel or box configuration
  - NumberRange: inclusive bounds of a number configuration
  - Outcome: result of one draw (item, number, or names)
  - DrawRecord: immutable ledger entry for one completed draw
  - Owner, Caller: identity data used by owner-scoped operations

# Modes

	wheel  → weighted items
	box    → weighted items, drawn blind
	number → integer in [min, max]
	list   → names drawn without replacement

# Validation

Configurations are normalized and validated before they are stored:

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		// *ValidationError, message safe for the owner
	}

Participant names are trimmed, NFC-normalized and limited to 50 characters
by ValidateParticipantName.

# Errors

  - ErrNotFound: configuration or share code does not resolve
  - ErrInvalidReference: outcome references something no longer present
  - ValidationError (wraps ErrValidation): malformed input

# Public Projection

PublicDraw and PublicItem are what anonymous participants see. They carry
the owner's display name but never the owner id or email.
*/
package models
