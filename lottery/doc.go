// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lottery is the draw service: owner configuration management,
share-code resolution and the draw record ledger.

	svc := lottery.NewService(store,
		lottery.WithShareSalt(cfg.ShareCodeSalt),
		lottery.WithTokens(cfg.TokenSecret, cfg.TokenTTL),
		lottery.WithRecordLimit(cfg.RecordPageLimit),
	)

# Drawing

A participant who knows a share code can draw in two ways:

	// server draws and records
	rec, outcome, err := svc.Spin(ctx, code, "Ana")

	// client drew locally, server only records
	rec, err := svc.SubmitOutcome(ctx, code, "Ana", outcome)

Either way a single record is written per draw through RecordDraw, which
checks the participant name (1-50 characters after trimming), that the
outcome matches the configuration's mode and that the item, number or names
it refers to still exist. A stale reference yields models.ErrInvalidReference
and writes nothing.

Participant names are not identities. Nothing stops two people from using
the same name, and records are never deduplicated.

# Ownership

Owner-scoped calls take the caller's owner ID. A configuration that belongs
to someone else is reported as models.ErrNotFound, the same as one that does
not exist. DeleteConfiguration additionally accepts admins.
*/
package lottery
