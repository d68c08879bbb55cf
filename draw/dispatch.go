// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"fmt"

	"github.com/danielhkuo/quickly-draw/models"
)

// Run draws one outcome from cfg. count only applies to list mode, where it
// defaults to 1 and may not exceed the number of names.
func Run(src Source, cfg models.DrawConfiguration, count int) (models.Outcome, error) {
	switch cfg.Mode {
	case models.ModeWheel, models.ModeBox:
		var item models.Item
		var err error
		if cfg.Uniform {
			item, err = SelectUniform(src, cfg.Items)
		} else {
			item, err = SelectWeighted(src, cfg.Items, itemWeight)
		}
		if err != nil {
			return models.Outcome{}, fmt.Errorf("draw %s: %w", cfg.Mode, err)
		}
		return models.ItemOutcome(item), nil

	case models.ModeNumber:
		if cfg.Range == nil {
			return models.Outcome{}, fmt.Errorf("draw %s: %w", cfg.Mode, ErrInvalidRange)
		}
		n, err := SelectInRange(src, cfg.Range.Min, cfg.Range.Max)
		if err != nil {
			return models.Outcome{}, fmt.Errorf("draw %s: %w", cfg.Mode, err)
		}
		return models.NumberOutcome(n), nil

	case models.ModeList:
		if len(cfg.Names) == 0 {
			return models.Outcome{}, fmt.Errorf("draw %s: %w", cfg.Mode, ErrEmptyInput)
		}
		if count <= 0 {
			count = 1
		}
		if count > len(cfg.Names) {
			return models.Outcome{}, fmt.Errorf("draw %d of %d names: %w", count, len(cfg.Names), ErrInvalidDrawCount)
		}
		return models.NamesOutcome(SelectManyWithoutReplacement(src, cfg.Names, count)), nil
	}

	return models.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
}

func itemWeight(item models.Item) int {
	return item.Weight
}
