// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"errors"
	"math"
	"slices"
)

var (
	ErrEmptyInput       = errors.New("cannot select from an empty sequence")
	ErrNegativeWeight   = errors.New("weights must not be negative")
	ErrInvalidRange     = errors.New("range minimum must be less than maximum")
	ErrInvalidDrawCount = errors.New("draw count exceeds the number of candidates")
	ErrUnknownMode      = errors.New("unknown draw mode")
)

// SelectUniform returns one element of items, each with probability 1/N.
func SelectUniform[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyInput
	}
	return items[src.IntN(len(items))], nil
}

// SelectWeighted draws a value in [0, total) and walks items in order,
// subtracting each weight; the first item that brings the remainder to <= 0
// wins. When every weight is zero the last item is returned.
func SelectWeighted[T any](src Source, items []T, weightOf func(T) int) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyInput
	}

	total := 0
	for _, item := range items {
		w := weightOf(item)
		if w < 0 {
			return zero, ErrNegativeWeight
		}
		total += w
	}
	last := items[len(items)-1]
	if total == 0 {
		return last, nil
	}

	remainder := src.Float64() * float64(total)
	for _, item := range items {
		remainder -= float64(weightOf(item))
		if remainder <= 0 {
			return item, nil
		}
	}

	// Unreachable unless float rounding leaves a sliver above zero.
	return last, nil
}

// SelectInRange returns an integer uniformly distributed over [min, max].
func SelectInRange(src Source, min, max int) (int, error) {
	if min >= max {
		return 0, ErrInvalidRange
	}

	// Two's complement keeps the span exact even when max-min overflows int.
	span := uint64(max) - uint64(min)
	var offset uint64
	if span == math.MaxUint64 {
		// The full 64-bit range: every uint64 is a valid offset.
		offset = src.Uint64()
	} else {
		offset = src.Uint64N(span + 1)
	}
	return int(uint64(min) + offset), nil
}

// SelectManyWithoutReplacement returns min(count, len(items)) distinct
// elements in random order. The input slice is not modified.
func SelectManyWithoutReplacement[T any](src Source, items []T, count int) []T {
	if count <= 0 || len(items) == 0 {
		return []T{}
	}

	shuffled := slices.Clone(items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if count >= len(shuffled) {
		return shuffled
	}
	return slices.Clip(shuffled[:count])
}
