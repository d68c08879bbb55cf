// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draw implements the random selection primitives and the mode
dispatcher.

# Primitives

	item, err := draw.SelectUniform(src, items)
	item, err := draw.SelectWeighted(src, items, weightOf)
	n, err := draw.SelectInRange(src, 1, 100)         // inclusive
	picked := draw.SelectManyWithoutReplacement(src, names, 3)

SelectWeighted is a linear scan over the items in their stored order. A
value is drawn from [0, total) and each weight is subtracted in turn; the
first item that brings the remainder to zero or below is selected. If every
weight is zero the last item is returned rather than an error.

SelectManyWithoutReplacement shuffles a copy with Fisher–Yates, so every
subset and every ordering of it is equally likely.

# Dispatcher

Run maps a configuration's mode to a primitive:

	outcome, err := draw.Run(src, cfg, 1)

	wheel, box → SelectUniform or SelectWeighted (by cfg.Uniform)
	number     → SelectInRange(cfg.Range.Min, cfg.Range.Max)
	list       → SelectManyWithoutReplacement(cfg.Names, count)

Run has no side effects beyond consuming randomness. Results are not meant
to be replayable.

# Randomness

DefaultSource uses the process-wide math/rand/v2 generator and is safe for
concurrent requests. NewSeededSource gives reproducible sequences for tests;
wrap it with NewLockedSource before sharing it between goroutines.
*/
package draw
