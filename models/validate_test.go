// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		config  DrawConfiguration
		wantErr bool
		field   string
	}{
		{
			name: "valid wheel",
			config: DrawConfiguration{Name: "Prizes", Mode: ModeWheel, Items: []Item{
				{Name: "A", Weight: 10}, {Name: "B", Weight: 90},
			}},
		},
		{
			name:   "valid box with zero weights",
			config: DrawConfiguration{Name: "Box", Mode: ModeBox, Items: []Item{{Name: "A", Weight: 0}}},
		},
		{
			name:    "wheel without items",
			config:  DrawConfiguration{Name: "Empty", Mode: ModeWheel},
			wantErr: true,
			field:   "items",
		},
		{
			name:    "negative weight",
			config:  DrawConfiguration{Name: "Neg", Mode: ModeBox, Items: []Item{{Name: "A", Weight: -1}}},
			wantErr: true,
			field:   "items",
		},
		{
			name:    "item without name",
			config:  DrawConfiguration{Name: "Nameless", Mode: ModeWheel, Items: []Item{{Weight: 1}}},
			wantErr: true,
			field:   "items",
		},
		{
			name:   "valid number range",
			config: DrawConfiguration{Name: "Numbers", Mode: ModeNumber, Range: &NumberRange{Min: 1, Max: 100}},
		},
		{
			name:    "equal bounds",
			config:  DrawConfiguration{Name: "Numbers", Mode: ModeNumber, Range: &NumberRange{Min: 5, Max: 5}},
			wantErr: true,
			field:   "range",
		},
		{
			name:    "inverted bounds",
			config:  DrawConfiguration{Name: "Numbers", Mode: ModeNumber, Range: &NumberRange{Min: 10, Max: 1}},
			wantErr: true,
			field:   "range",
		},
		{
			name:    "missing range",
			config:  DrawConfiguration{Name: "Numbers", Mode: ModeNumber},
			wantErr: true,
			field:   "range",
		},
		{
			name:   "valid list",
			config: DrawConfiguration{Name: "Team", Mode: ModeList, Names: []string{"Ann", "Bo"}},
		},
		{
			name:    "empty list",
			config:  DrawConfiguration{Name: "Team", Mode: ModeList, Names: []string{}},
			wantErr: true,
			field:   "names",
		},
		{
			name:    "duplicate names",
			config:  DrawConfiguration{Name: "Team", Mode: ModeList, Names: []string{"Ann", "Ann"}},
			wantErr: true,
			field:   "names",
		},
		{
			name:    "missing name",
			config:  DrawConfiguration{Mode: ModeList, Names: []string{"Ann"}},
			wantErr: true,
			field:   "name",
		},
		{
			name:    "name too long",
			config:  DrawConfiguration{Name: strings.Repeat("x", 101), Mode: ModeList, Names: []string{"Ann"}},
			wantErr: true,
			field:   "name",
		},
		{
			name:    "unknown mode",
			config:  DrawConfiguration{Name: "Odd", Mode: "dice"},
			wantErr: true,
			field:   "mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			cfg.Normalize()
			err := cfg.Validate()

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error should wrap ErrValidation: %v", err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error should be *ValidationError, got %T", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Validate() field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestNormalizeDropsForeignPayload(t *testing.T) {
	cfg := DrawConfiguration{
		Name:  "  Numbers  ",
		Mode:  ModeNumber,
		Items: []Item{{Name: "stray"}},
		Range: &NumberRange{Min: 1, Max: 2},
		Names: []string{"stray"},
	}
	cfg.Normalize()

	if cfg.Name != "Numbers" {
		t.Errorf("Name = %q, want trimmed", cfg.Name)
	}
	if cfg.Items != nil || cfg.Names != nil {
		t.Error("Normalize() should drop items and names from a number configuration")
	}
	if cfg.Range == nil {
		t.Error("Normalize() should keep the range")
	}
}

func TestNormalizeNamesNFC(t *testing.T) {
	// "é" precomposed vs "e" + combining acute accent
	cfg := DrawConfiguration{Name: "Team", Mode: ModeList, Names: []string{"caf\u00e9", " cafe\u0301 "}}
	cfg.Normalize()

	if cfg.Names[0] != cfg.Names[1] {
		t.Fatalf("names should normalize to the same form: %q vs %q", cfg.Names[0], cfg.Names[1])
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject names that are equal after normalization")
	}
}

func TestValidateParticipantName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "Alice", "Alice", false},
		{"trimmed", "  Bob  ", "Bob", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"exactly fifty", strings.Repeat("a", 50), strings.Repeat("a", 50), false},
		{"fifty one", strings.Repeat("a", 51), "", true},
		{"fifty multibyte runes", strings.Repeat("抽", 50), strings.Repeat("抽", 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateParticipantName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModeOutcomeKind(t *testing.T) {
	cases := map[Mode]OutcomeKind{
		ModeWheel:  OutcomeItem,
		ModeBox:    OutcomeItem,
		ModeNumber: OutcomeNumber,
		ModeList:   OutcomeNames,
		"dice":     "",
	}
	for mode, want := range cases {
		if got := mode.OutcomeKind(); got != want {
			t.Errorf("%s.OutcomeKind() = %q, want %q", mode, got, want)
		}
	}

	n := NumberOutcome(7)
	if n.Kind != OutcomeNumber || n.Number == nil || *n.Number != 7 {
		t.Errorf("NumberOutcome(7) = %+v", n)
	}
}
