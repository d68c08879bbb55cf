// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness the selection primitives draw from.
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Uint64N(n uint64) uint64
	Uint64() uint64
	Float64() float64
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }
func (globalSource) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }
func (globalSource) Uint64() uint64 { return rand.Uint64() }
func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the process-wide generator. Safe for concurrent use.
func DefaultSource() Source {
	return globalSource{}
}

// NewSeededSource returns a reproducible source for tests and simulations.
// Not safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLockedSource makes src safe for concurrent use.
func NewLockedSource(src Source) Source {
	return &lockedSource{src: src}
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

func (l *lockedSource) Uint64N(n uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uint64N(n)
}

func (l *lockedSource) Uint64() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uint64()
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}
