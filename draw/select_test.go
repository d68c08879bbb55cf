// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/danielhkuo/quickly-draw/draw"
)

const trials = 10000

type weighted struct {
	name   string
	weight int
}

func weightOf(w weighted) int { return w.weight }

// fixedSource always returns the same values, for boundary tests.
type fixedSource struct {
	intN  int
	bits  uint64
	value float64
}

func (f fixedSource) IntN(n int) int {
	if f.intN >= n {
		return n - 1
	}
	return f.intN
}
func (f fixedSource) Uint64N(n uint64) uint64 {
	if f.bits >= n {
		return n - 1
	}
	return f.bits
}
func (f fixedSource) Uint64() uint64 { return f.bits }
func (f fixedSource) Float64() float64 { return f.value }

// SelectSuite exercises the selection primitives with reproducible sources.
type SelectSuite struct {
	suite.Suite
	src draw.Source
}

func (s *SelectSuite) SetupTest() {
	s.src = draw.NewSeededSource(42)
}

// TestUniformEmpty verifies the empty-input guard.
func (s *SelectSuite) TestUniformEmpty() {
	_, err := draw.SelectUniform(s.src, []string{})
	require.ErrorIs(s.T(), err, draw.ErrEmptyInput)
}

// TestUniformConverges checks every element lands near 1/k, ignoring weights.
func (s *SelectSuite) TestUniformConverges() {
	items := []weighted{{"a", 1}, {"b", 1000}, {"c", 0}, {"d", 5}}
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		got, err := draw.SelectUniform(s.src, items)
		require.NoError(s.T(), err)
		counts[got.name]++
	}
	for _, item := range items {
		share := float64(counts[item.name]) / trials
		assert.InDelta(s.T(), 0.25, share, 0.03, "item %s share", item.name)
	}
}

// TestWeightedTenNinety is the A=10, B=90 scenario: B wins 85%-95% of draws.
func (s *SelectSuite) TestWeightedTenNinety() {
	items := []weighted{{"A", 10}, {"B", 90}}
	wins := 0
	for i := 0; i < trials; i++ {
		got, err := draw.SelectWeighted(s.src, items, weightOf)
		require.NoError(s.T(), err)
		if got.name == "B" {
			wins++
		}
	}
	share := float64(wins) / trials
	assert.GreaterOrEqual(s.T(), share, 0.85)
	assert.LessOrEqual(s.T(), share, 0.95)
}

// TestWeightedConverges checks each share approaches weight/W.
func (s *SelectSuite) TestWeightedConverges() {
	items := []weighted{{"a", 1}, {"b", 2}, {"c", 3}, {"d", 4}}
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		got, err := draw.SelectWeighted(s.src, items, weightOf)
		require.NoError(s.T(), err)
		counts[got.name]++
	}
	for _, item := range items {
		want := float64(item.weight) / 10
		share := float64(counts[item.name]) / trials
		assert.InDelta(s.T(), want, share, 0.03, "item %s share", item.name)
	}
}

// TestWeightedSkipsZeroWeight verifies zero-weight items are not drawn
// when other items carry weight.
func (s *SelectSuite) TestWeightedSkipsZeroWeight() {
	items := []weighted{{"x", 5}, {"zero", 0}, {"y", 5}}
	for i := 0; i < trials; i++ {
		got, err := draw.SelectWeighted(s.src, items, weightOf)
		require.NoError(s.T(), err)
		require.NotEqual(s.T(), "zero", got.name)
	}
}

// TestWeightedAllZeroReturnsLast keeps the legacy fallback.
func (s *SelectSuite) TestWeightedAllZeroReturnsLast() {
	items := []weighted{{"first", 0}, {"middle", 0}, {"last", 0}}
	for i := 0; i < 100; i++ {
		got, err := draw.SelectWeighted(s.src, items, weightOf)
		require.NoError(s.T(), err)
		require.Equal(s.T(), "last", got.name)
	}
}

// TestWeightedEmptyAndNegative covers the guards.
func (s *SelectSuite) TestWeightedEmptyAndNegative() {
	_, err := draw.SelectWeighted(s.src, []weighted{}, weightOf)
	require.ErrorIs(s.T(), err, draw.ErrEmptyInput)

	_, err = draw.SelectWeighted(s.src, []weighted{{"a", 1}, {"b", -1}}, weightOf)
	require.ErrorIs(s.T(), err, draw.ErrNegativeWeight)
}

// TestInRangeBounds is the 1..100 scenario: results stay in range and both
// ends appear.
func (s *SelectSuite) TestInRangeBounds() {
	seen := map[int]bool{}
	for i := 0; i < trials; i++ {
		n, err := draw.SelectInRange(s.src, 1, 100)
		require.NoError(s.T(), err)
		require.GreaterOrEqual(s.T(), n, 1)
		require.LessOrEqual(s.T(), n, 100)
		seen[n] = true
	}
	assert.True(s.T(), seen[1], "minimum never drawn")
	assert.True(s.T(), seen[100], "maximum never drawn")
}

// TestInRangeNegativeBounds checks ranges that straddle zero.
func (s *SelectSuite) TestInRangeNegativeBounds() {
	for i := 0; i < 1000; i++ {
		n, err := draw.SelectInRange(s.src, -3, 2)
		require.NoError(s.T(), err)
		require.True(s.T(), n >= -3 && n <= 2, "got %d", n)
	}
}

// TestInRangeExtremes checks the span arithmetic does not overflow.
func (s *SelectSuite) TestInRangeExtremes() {
	_, err := draw.SelectInRange(s.src, math.MinInt, math.MaxInt)
	require.NoError(s.T(), err)

	n, err := draw.SelectInRange(s.src, math.MaxInt-1, math.MaxInt)
	require.NoError(s.T(), err)
	require.True(s.T(), n == math.MaxInt-1 || n == math.MaxInt)
}

// TestInRangeFullSpanReachesBothEnds checks that the widest range can
// still produce its minimum and maximum.
func TestInRangeFullSpanReachesBothEnds(t *testing.T) {
	n, err := draw.SelectInRange(fixedSource{bits: math.MaxUint64}, math.MinInt, math.MaxInt)
	require.NoError(t, err)
	require.Equal(t, math.MaxInt, n)

	n, err = draw.SelectInRange(fixedSource{bits: 0}, math.MinInt, math.MaxInt)
	require.NoError(t, err)
	require.Equal(t, math.MinInt, n)

	n, err = draw.SelectInRange(fixedSource{bits: math.MaxUint64}, -3, 3)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

// TestInRangeRejectsDegenerate verifies min must be strictly below max.
func (s *SelectSuite) TestInRangeRejectsDegenerate() {
	_, err := draw.SelectInRange(s.src, 5, 5)
	require.ErrorIs(s.T(), err, draw.ErrInvalidRange)

	_, err = draw.SelectInRange(s.src, 9, 1)
	require.ErrorIs(s.T(), err, draw.ErrInvalidRange)
}

// TestManyWithoutReplacement covers sizes, uniqueness, and input immutability.
func (s *SelectSuite) TestManyWithoutReplacement() {
	names := []string{"ann", "bo", "cy", "di", "ed"}
	original := append([]string(nil), names...)

	for _, count := range []int{1, 2, 3, 4} {
		got := draw.SelectManyWithoutReplacement(s.src, names, count)
		require.Len(s.T(), got, count)
		seen := map[string]bool{}
		for _, n := range got {
			require.False(s.T(), seen[n], "duplicate %s", n)
			require.Contains(s.T(), names, n)
			seen[n] = true
		}
	}

	for _, count := range []int{5, 6, 100} {
		got := draw.SelectManyWithoutReplacement(s.src, names, count)
		require.ElementsMatch(s.T(), names, got)
	}

	require.Empty(s.T(), draw.SelectManyWithoutReplacement(s.src, names, 0))
	require.Empty(s.T(), draw.SelectManyWithoutReplacement(s.src, names, -3))
	require.Empty(s.T(), draw.SelectManyWithoutReplacement(s.src, []string{}, 2))
	require.Equal(s.T(), original, names, "input must not be reordered")
}

// TestManyWithoutReplacementUnbiased checks every element is first about
// equally often.
func (s *SelectSuite) TestManyWithoutReplacementUnbiased() {
	names := []string{"a", "b", "c", "d"}
	firsts := map[string]int{}
	for i := 0; i < trials; i++ {
		got := draw.SelectManyWithoutReplacement(s.src, names, 2)
		firsts[got[0]]++
	}
	for _, n := range names {
		assert.InDelta(s.T(), 0.25, float64(firsts[n])/trials, 0.03, "name %s", n)
	}
}

func TestSelectSuite(t *testing.T) {
	suite.Run(t, new(SelectSuite))
}

func TestWeightedBoundaryGoesToCurrentItem(t *testing.T) {
	items := []weighted{{"one", 1}, {"three", 3}}

	// 0.25 * 4 = 1 exactly: subtracting "one" leaves 0, which selects it.
	got, err := draw.SelectWeighted(fixedSource{value: 0.25}, items, weightOf)
	require.NoError(t, err)
	require.Equal(t, "one", got.name)

	// Just past the boundary falls through to the next item.
	got, err = draw.SelectWeighted(fixedSource{value: 0.26}, items, weightOf)
	require.NoError(t, err)
	require.Equal(t, "three", got.name)

	// The top of the interval lands on the last item.
	got, err = draw.SelectWeighted(fixedSource{value: 0.999999}, items, weightOf)
	require.NoError(t, err)
	require.Equal(t, "three", got.name)
}

func TestWeightedScanIsOrderDependent(t *testing.T) {
	// A zero draw stops at the first item even if its weight is zero; the
	// scan is linear, not a search over cumulative weights.
	items := []weighted{{"zero", 0}, {"all", 4}}
	got, err := draw.SelectWeighted(fixedSource{value: 0}, items, weightOf)
	require.NoError(t, err)
	require.Equal(t, "zero", got.name)
}

func TestDefaultSourceConcurrentUse(t *testing.T) {
	src := draw.DefaultSource()
	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 500; i++ {
				n, err := draw.SelectInRange(src, 1, 6)
				if err != nil || n < 1 || n > 6 {
					t.Errorf("SelectInRange() = %d, %v", n, err)
					return
				}
			}
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
