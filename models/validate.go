// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims surrounding whitespace and converts to NFC so that
// visually identical names compare equal.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ValidateParticipantName returns the normalized participant name or a
// ValidationError. The name is not an identity; any caller may use any name.
func ValidateParticipantName(name string) (string, error) {
	name = NormalizeName(name)
	if name == "" {
		return "", NewValidationError("participant_name", "participant name is required")
	}
	if utf8.RuneCountInString(name) > MaxParticipantNameLength {
		return "", NewValidationError("participant_name",
			fmt.Sprintf("participant name must be at most %d characters", MaxParticipantNameLength))
	}
	return name, nil
}

// Normalize trims text fields, drops the payload of other modes and
// renumbers item positions.
func (c *DrawConfiguration) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)

	if !c.Mode.HasItems() {
		c.Items = nil
	}
	if c.Mode != ModeNumber {
		c.Range = nil
	}
	if c.Mode != ModeList {
		c.Names = nil
	}

	for i := range c.Items {
		c.Items[i].Name = strings.TrimSpace(c.Items[i].Name)
		c.Items[i].ImageURL = strings.TrimSpace(c.Items[i].ImageURL)
		c.Items[i].Position = i
	}
	for i := range c.Names {
		c.Names[i] = NormalizeName(c.Names[i])
	}
}

// Validate checks the per-mode invariants. A configuration that passes is
// safe to hand to the dispatcher.
func (c *DrawConfiguration) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if utf8.RuneCountInString(c.Name) > MaxConfigNameLength {
		return NewValidationError("name", fmt.Sprintf("name must be at most %d characters", MaxConfigNameLength))
	}
	if !c.Mode.Valid() {
		return NewValidationError("mode", "mode must be one of: wheel, box, number, list")
	}

	switch c.Mode {
	case ModeWheel, ModeBox:
		if len(c.Items) == 0 {
			return NewValidationError("items", "at least one item is required")
		}
		for _, item := range c.Items {
			if item.Name == "" {
				return NewValidationError("items", "item name is required")
			}
			if item.Weight < 0 {
				return NewValidationError("items", "item weight must not be negative")
			}
		}

	case ModeNumber:
		if c.Range == nil {
			return NewValidationError("range", "minimum and maximum are required")
		}
		if c.Range.Min >= c.Range.Max {
			return NewValidationError("range", "range minimum must be less than maximum")
		}

	case ModeList:
		if len(c.Names) == 0 {
			return NewValidationError("names", "at least one name is required")
		}
		seen := make(map[string]bool, len(c.Names))
		for _, name := range c.Names {
			if name == "" {
				return NewValidationError("names", "names must not be empty")
			}
			if seen[name] {
				return NewValidationError("names", "duplicate name: "+name)
			}
			seen[name] = true
		}
	}

	return nil
}
