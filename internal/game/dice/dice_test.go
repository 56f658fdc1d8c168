package dice_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/charsheet/internal/game/dice"
	dicemocks "github.com/cory-johannsen/charsheet/internal/game/dice/mocks"
)

// stubRoller satisfies the rpg-toolkit dice.Roller interface.
type stubRoller struct {
	value int
	err   error
	sizes []int
}

func (s *stubRoller) Roll(size int) (int, error) {
	s.sizes = append(s.sizes, size)
	return s.value, s.err
}

func (s *stubRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, "2d6+3: [4 5] +3 = 12", r.String())
}

func TestParse_ValidForms(t *testing.T) {
	cases := []struct {
		in   string
		want dice.Expression
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20}},
		{"2d6", dice.Expression{Raw: "2d6", Count: 2, Sides: 6}},
		{"2d6+3", dice.Expression{Raw: "2d6+3", Count: 2, Sides: 6, Modifier: 3}},
		{"4d8-2", dice.Expression{Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2}},
		{"2D20kh1", dice.Expression{Raw: "2D20kh1", Count: 2, Sides: 20, KeepHighest: 1}},
		{"4d6kh3+1", dice.Expression{Raw: "4d6kh3+1", Count: 4, Sides: 6, KeepHighest: 3, Modifier: 1}},
	}
	for _, tc := range cases {
		got, err := dice.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "20", "d", "0d6", "d1", "2d6kh2", "d20kh1", "2d6+", "1d6*2"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParse_BoundsDiceAndSides(t *testing.T) {
	_, err := dice.Parse(fmt.Sprintf("%dd%d", dice.MaxCount, dice.MaxSides))
	require.NoError(t, err)

	for _, in := range []string{"99999999999d20", "101d6", "1d1001", "d99999999999999999999"} {
		_, err := dice.Parse(in)
		require.Error(t, err, "input %q", in)
		assert.Contains(t, err.Error(), "must be between", "input %q", in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestRoll_UsesSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := dicemocks.NewMockSource(ctrl)
	src.EXPECT().Intn(6).Return(3)
	src.EXPECT().Intn(6).Return(0)

	res := dice.Roll(dice.MustParse("2d6+1"), src)
	assert.Equal(t, []int{4, 1}, res.Dice)
	assert.Equal(t, 6, res.Total())
}

func TestRoll_KeepHighest(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := dicemocks.NewMockSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Intn(20).Return(4),
		src.EXPECT().Intn(20).Return(16),
	)

	res := dice.Roll(dice.MustParse("2d20kh1"), src)
	assert.Equal(t, []int{17}, res.Dice)
}

func TestRollExpr_ParseError(t *testing.T) {
	_, err := dice.RollExpr("bogus", dice.NewCryptoSource())
	assert.Error(t, err)
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(20)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 20)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestToolkitSource_ShiftsToZeroBased(t *testing.T) {
	stub := &stubRoller{value: 20}
	src := dice.NewToolkitSource(stub)
	assert.Equal(t, 19, src.Intn(20))
	assert.Equal(t, []int{20}, stub.sizes)
}

func TestToolkitSource_PanicsOnFailure(t *testing.T) {
	assert.Panics(t, func() { dice.NewToolkitSource(&stubRoller{err: errors.New("boom")}).Intn(20) })
	assert.Panics(t, func() { dice.NewToolkitSource(&stubRoller{value: 21}).Intn(20) })
	assert.Panics(t, func() { dice.NewToolkitSource(&stubRoller{value: 1}).Intn(0) })
}

func TestSourceByName(t *testing.T) {
	for _, name := range []string{dice.SourceCrypto, dice.SourceToolkit} {
		src, err := dice.SourceByName(name)
		require.NoError(t, err, name)
		v := src.Intn(20)
		assert.GreaterOrEqual(t, v, 0, name)
		assert.Less(t, v, 20, name)
	}
	_, err := dice.SourceByName("weighted")
	assert.Error(t, err)
}

func TestLoggedRoller_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), zap.New(core))

	v := roller.D20()
	assert.GreaterOrEqual(t, v, 1)
	assert.LessOrEqual(t, v, 20)

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "d20", entries[0].ContextMap()["expression"])
	assert.Equal(t, int64(v), entries[0].ContextMap()["total"])
}

// Property: Total() == sum(Dice) + Modifier for arbitrary inputs.
func TestRollResult_Total_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rolled := rapid.SliceOf(rapid.IntRange(1, 20)).Draw(rt, "dice")
		modifier := rapid.IntRange(-1000, 1000).Draw(rt, "modifier")

		r := dice.RollResult{Expression: "Nd20+M", Dice: rolled, Modifier: modifier}
		expected := modifier
		for _, d := range rolled {
			expected += d
		}
		assert.Equal(rt, expected, r.Total())
		assert.True(rt, strings.HasSuffix(r.String(), fmt.Sprintf("= %d", expected)))
	})
}

// Property: every die rolled through a real source lands in [1, sides].
func TestRoll_DiceInRange_Property(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 100).Draw(rt, "sides")
		res := dice.Roll(dice.MustParse(fmt.Sprintf("%dd%d", count, sides)), src)
		if len(res.Dice) != count {
			rt.Fatalf("got %d dice, want %d", len(res.Dice), count)
		}
		for _, d := range res.Dice {
			if d < 1 || d > sides {
				rt.Fatalf("die %d outside [1, %d]", d, sides)
			}
		}
	})
}
