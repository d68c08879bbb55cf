// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"slices"
)

// Kind reports which outcome the record carries, or "" if it carries none
// or more than one.
func (r DrawRecord) Kind() OutcomeKind {
	var kinds []OutcomeKind
	if r.ItemID != nil {
		kinds = append(kinds, OutcomeItem)
	}
	if r.Number != nil {
		kinds = append(kinds, OutcomeNumber)
	}
	if len(r.Names) > 0 {
		kinds = append(kinds, OutcomeNames)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Outcome rebuilds the outcome the record was written for. Item outcomes
// carry only the id and name snapshot.
func (r DrawRecord) Outcome() Outcome {
	switch r.Kind() {
	case OutcomeItem:
		item := Item{ID: *r.ItemID}
		if r.ItemName != nil {
			item.Name = *r.ItemName
		}
		return ItemOutcome(item)
	case OutcomeNumber:
		return NumberOutcome(*r.Number)
	case OutcomeNames:
		return NamesOutcome(slices.Clone(r.Names))
	}
	return Outcome{}
}

// Admits checks rec against the configuration as it is now. A record of
// the wrong kind is a ValidationError; one that refers to an item, number
// or name the configuration no longer has is ErrInvalidReference.
func (c DrawConfiguration) Admits(rec DrawRecord) error {
	if rec.Kind() != c.Mode.OutcomeKind() {
		return NewValidationError("outcome", fmt.Sprintf("%s draws produce a %s outcome", c.Mode, c.Mode.OutcomeKind()))
	}

	switch c.Mode {
	case ModeWheel, ModeBox:
		if _, ok := c.FindItem(*rec.ItemID); !ok {
			return ErrInvalidReference
		}

	case ModeNumber:
		if c.Range == nil || *rec.Number < c.Range.Min || *rec.Number > c.Range.Max {
			return ErrInvalidReference
		}

	case ModeList:
		seen := make(map[string]bool, len(rec.Names))
		for _, name := range rec.Names {
			if seen[name] || !slices.Contains(c.Names, name) {
				return ErrInvalidReference
			}
			seen[name] = true
		}
	}

	return nil
}

// Outcome converts the submitted payload. Exactly one of ItemID, Number or
// Names must be set.
func (r SubmitOutcomeRequest) Outcome() (Outcome, error) {
	var outcomes []Outcome
	if r.ItemID != nil {
		outcomes = append(outcomes, ItemOutcome(Item{ID: *r.ItemID}))
	}
	if r.Number != nil {
		outcomes = append(outcomes, NumberOutcome(*r.Number))
	}
	if r.Names != nil {
		outcomes = append(outcomes, NamesOutcome(slices.Clone(r.Names)))
	}
	if len(outcomes) != 1 {
		return Outcome{}, NewValidationError("outcome", "exactly one of item_id, number or names is required")
	}
	return outcomes[0], nil
}
