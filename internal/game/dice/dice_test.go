package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/expedition/internal/game/dice"
)

// TestRollResult_Total verifies Total() == sum(Dice) + Modifier.
func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

// TestRollResult_String_PanicsOnEmptyExpression verifies the String precondition.
func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

// TestParse_Forms verifies every supported expression form.
func TestParse_Forms(t *testing.T) {
	cases := []struct {
		in       string
		count    int
		sides    int
		modifier int
	}{
		{"d6", 1, 6, 0},
		{"2d6", 2, 6, 0},
		{"1d3+1", 1, 3, 1},
		{"1D10-1", 1, 10, -1},
	}
	for _, tc := range cases {
		e, err := dice.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.count, e.Count, tc.in)
		assert.Equal(t, tc.sides, e.Sides, tc.in)
		assert.Equal(t, tc.modifier, e.Modifier, tc.in)
	}
}

// TestParse_Rejects verifies malformed expressions return errors.
func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "6", "0d6", "2d1", "2dx", "1d6+x"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected error for %q", in)
	}
}

// TestRoll_WithinBounds_Property verifies Min() <= Total() <= Max() for any seed.
func TestRoll_WithinBounds_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 6).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		mod := rapid.IntRange(-5, 5).Draw(rt, "mod")
		seed := rapid.Uint64().Draw(rt, "seed")
		e := dice.Expression{Raw: "xdy", Count: count, Sides: sides, Modifier: mod}
		total := dice.Roll(e, dice.NewSeededSource(seed)).Total()
		assert.GreaterOrEqual(rt, total, e.Min())
		assert.LessOrEqual(rt, total, e.Max())
	})
}

// TestScriptedSource_ReplaysAndWraps verifies draws replay in order and wrap around.
func TestScriptedSource_ReplaysAndWraps(t *testing.T) {
	src := dice.NewScriptedSource(0.1, 0.9)
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 0.9, src.Float64())
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 9, src.Intn(10))
	assert.Equal(t, 4, src.Draws())
}

// TestScriptedSource_RejectsOutOfRange verifies construction preconditions.
func TestScriptedSource_RejectsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { dice.NewScriptedSource() })
	assert.Panics(t, func() { dice.NewScriptedSource(1.0) })
	assert.Panics(t, func() { dice.NewScriptedSource(-0.1) })
}

// TestSeededSource_Reproducible verifies equal seeds produce equal sequences.
func TestSeededSource_Reproducible(t *testing.T) {
	a, b := dice.NewSeededSource(42), dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
		require.Equal(t, a.Intn(7), b.Intn(7))
	}
}

// TestCryptoSource_InRange verifies Intn and Float64 postconditions.
func TestCryptoSource_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 500; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
	assert.Panics(t, func() { src.Intn(0) })
}

// TestChanceAndUniform verifies the helper semantics against scripted draws.
func TestChanceAndUniform(t *testing.T) {
	src := dice.NewScriptedSource(0.5)
	assert.True(t, dice.Chance(src, 0.6))
	assert.False(t, dice.Chance(src, 0.5))
	assert.InDelta(t, 1.0, dice.Uniform(src, 0.95, 1.05), 1e-9)
	assert.Equal(t, 2, dice.Pick(src, 4))
}

// TestLoggedSource_PassesThrough verifies the logged decorator does not alter draws.
func TestLoggedSource_PassesThrough(t *testing.T) {
	src := dice.NewLoggedSource(dice.NewScriptedSource(0.25), zaptest.NewLogger(t))
	assert.Equal(t, 0.25, src.Float64())
	assert.Equal(t, 1, src.Intn(4))

	roller := dice.NewLoggedRoller(dice.NewScriptedSource(0.5), zaptest.NewLogger(t))
	assert.Equal(t, 3, roller.Roll(dice.MustParse("1d3+1")).Total())
}
