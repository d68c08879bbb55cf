// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lottery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-draw/draw"
	"github.com/danielhkuo/quickly-draw/models"
)

// ResolveByShareCode returns the public view of the configuration behind
// code. Unknown and deleted codes both yield ErrNotFound.
func (s *Service) ResolveByShareCode(ctx context.Context, code string) (models.PublicDraw, error) {
	cfg, err := s.configurationByCode(ctx, code)
	if err != nil {
		return models.PublicDraw{}, err
	}

	var ownerName string
	owner, err := s.store.GetOwner(ctx, cfg.OwnerID)
	switch {
	case err == nil:
		ownerName = owner.DisplayName
	case !errors.Is(err, models.ErrNotFound):
		return models.PublicDraw{}, fmt.Errorf("load owner: %w", err)
	}

	return project(cfg, ownerName), nil
}

func (s *Service) configurationByCode(ctx context.Context, code string) (models.DrawConfiguration, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.DrawConfiguration{}, models.ErrNotFound
	}
	return s.store.GetConfigurationByShareCode(ctx, code)
}

// project builds the participant-facing view. Probabilities are percentages
// rounded to one decimal, present only for weighted draws that show odds.
func project(cfg models.DrawConfiguration, ownerName string) models.PublicDraw {
	pub := models.PublicDraw{
		ID:          cfg.ID,
		Name:        cfg.Name,
		Description: cfg.Description,
		Mode:        cfg.Mode,
		Uniform:     cfg.Uniform,
		ShowOdds:    cfg.ShowOdds,
		ShareCode:   cfg.ShareCode,
		Range:       cfg.Range,
		Names:       cfg.Names,
		OwnerName:   ownerName,
	}

	total := 0
	for _, item := range cfg.Items {
		total += item.Weight
	}
	showOdds := cfg.ShowOdds && !cfg.Uniform && total > 0

	for _, item := range cfg.Items {
		pi := models.PublicItem{ID: item.ID, Name: item.Name, Weight: item.Weight, ImageURL: item.ImageURL}
		if showOdds {
			p := math.Round(float64(item.Weight)/float64(total)*1000) / 10
			pi.Probability = &p
		}
		pub.Items = append(pub.Items, pi)
	}
	return pub
}

// RecordDraw appends one record for a completed draw. The participant name
// is free text and not an identity. Records are never merged: the same name
// drawing twice yields two records.
func (s *Service) RecordDraw(ctx context.Context, configID, participantName string, outcome models.Outcome) (models.DrawRecord, error) {
	name, err := models.ValidateParticipantName(participantName)
	if err != nil {
		return models.DrawRecord{}, err
	}

	cfg, err := s.store.GetConfiguration(ctx, configID)
	if err != nil {
		return models.DrawRecord{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.DrawRecord{}, fmt.Errorf("generate record id: %w", err)
	}
	rec := models.DrawRecord{
		ID:              id.String(),
		ConfigID:        cfg.ID,
		ParticipantName: name,
		CreatedAt:       s.now(),
	}

	if outcome.Kind != cfg.Mode.OutcomeKind() {
		return models.DrawRecord{}, models.NewValidationError("outcome",
			fmt.Sprintf("%s draws produce a %s outcome", cfg.Mode, cfg.Mode.OutcomeKind()))
	}
	switch outcome.Kind {
	case models.OutcomeItem:
		if outcome.Item == nil || outcome.Item.ID == "" {
			return models.DrawRecord{}, models.NewValidationError("item_id", "item is required")
		}
		itemID := outcome.Item.ID
		item, ok := cfg.FindItem(itemID)
		if !ok {
			return models.DrawRecord{}, models.ErrInvalidReference
		}
		itemName := item.Name
		rec.ItemID = &itemID
		rec.ItemName = &itemName

	case models.OutcomeNumber:
		if outcome.Number == nil {
			return models.DrawRecord{}, models.NewValidationError("number", "number is required")
		}
		n := *outcome.Number
		rec.Number = &n

	case models.OutcomeNames:
		if len(outcome.Names) == 0 {
			return models.DrawRecord{}, models.NewValidationError("names", "at least one name is required")
		}
		rec.Names = make([]string, len(outcome.Names))
		for i, n := range outcome.Names {
			rec.Names[i] = models.NormalizeName(n)
		}
	}

	// The store re-checks existence and references in the same statement
	// as the insert.
	if err := s.store.InsertRecord(ctx, rec); err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidReference) {
			slog.Info("draw rejected", "config_id", cfg.ID, "reason", err)
			return models.DrawRecord{}, err
		}
		return models.DrawRecord{}, fmt.Errorf("insert record: %w", err)
	}

	slog.Info("draw recorded", "config_id", cfg.ID, "record_id", rec.ID, "kind", outcome.Kind)
	return rec, nil
}

// Spin resolves code, draws one outcome on the server and records it.
func (s *Service) Spin(ctx context.Context, code, participantName string) (models.DrawRecord, models.Outcome, error) {
	if _, err := models.ValidateParticipantName(participantName); err != nil {
		return models.DrawRecord{}, models.Outcome{}, err
	}
	cfg, err := s.configurationByCode(ctx, code)
	if err != nil {
		return models.DrawRecord{}, models.Outcome{}, err
	}
	return s.runAndRecord(ctx, cfg, participantName, 1)
}

// SubmitOutcome records an outcome the participant computed locally.
func (s *Service) SubmitOutcome(ctx context.Context, code, participantName string, outcome models.Outcome) (models.DrawRecord, error) {
	cfg, err := s.configurationByCode(ctx, code)
	if err != nil {
		return models.DrawRecord{}, err
	}
	return s.RecordDraw(ctx, cfg.ID, participantName, outcome)
}

// OwnerDraw draws on an owned configuration. count only matters for name
// lists, where all drawn names go into one record.
func (s *Service) OwnerDraw(ctx context.Context, ownerID, configID, participantName string, count int) (models.DrawRecord, models.Outcome, error) {
	if _, err := models.ValidateParticipantName(participantName); err != nil {
		return models.DrawRecord{}, models.Outcome{}, err
	}
	cfg, err := s.ownedConfiguration(ctx, ownerID, configID)
	if err != nil {
		return models.DrawRecord{}, models.Outcome{}, err
	}
	return s.runAndRecord(ctx, cfg, participantName, count)
}

func (s *Service) runAndRecord(ctx context.Context, cfg models.DrawConfiguration, participantName string, count int) (models.DrawRecord, models.Outcome, error) {
	outcome, err := draw.Run(s.src, cfg, count)
	if errors.Is(err, draw.ErrInvalidDrawCount) {
		return models.DrawRecord{}, models.Outcome{}, models.NewValidationError("count",
			fmt.Sprintf("count must be between 1 and %d", len(cfg.Names)))
	}
	if err != nil {
		return models.DrawRecord{}, models.Outcome{}, err
	}

	rec, err := s.RecordDraw(ctx, cfg.ID, participantName, outcome)
	if err != nil {
		return models.DrawRecord{}, models.Outcome{}, err
	}
	return rec, outcome, nil
}

// ListRecords returns an owned configuration's records, newest first.
func (s *Service) ListRecords(ctx context.Context, ownerID, configID string, limit int) ([]models.DrawRecord, error) {
	if _, err := s.ownedConfiguration(ctx, ownerID, configID); err != nil {
		return nil, err
	}
	records, err := s.store.ListRecords(ctx, configID, s.clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}
