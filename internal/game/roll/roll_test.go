package roll_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/charsheet/internal/game/character"
	"github.com/cory-johannsen/charsheet/internal/game/dice"
	dicemocks "github.com/cory-johannsen/charsheet/internal/game/dice/mocks"
	"github.com/cory-johannsen/charsheet/internal/game/roll"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
)

func loadTemplate(t testing.TB, file string) *ruleset.Template {
	t.Helper()
	tmpl, err := ruleset.LoadTemplate("../ruleset/testdata/" + file)
	require.NoError(t, err)
	return tmpl
}

// heroSheet is a Standard sheet with a few values and two perks held.
func heroSheet(t testing.TB, tmpl *ruleset.Template) *character.Sheet {
	t.Helper()
	s, err := character.NewBaseSheet(tmpl)
	require.NoError(t, err)
	s.Name = "Aria"
	s.Perks = []string{"Force Sensitive", "Small Frame"}
	set := func(attr string, v int) {
		a, ok := s.Attribute(attr)
		require.True(t, ok)
		a.Value = v
	}
	set("Strength", 2)
	set("Dexterity", 4)
	set("Wisdom", 3)
	set("Charisma", 2)
	for name, v := range map[string]int{"Stealth": 1, "Insight": 2, "Persuasion": 3} {
		_, sk, ok := s.SkillOwner(name)
		require.True(t, ok)
		sk.Value = v
	}
	return s
}

func TestModifier_Attribute(t *testing.T) {
	tmpl := loadTemplate(t, "standard.json5")
	s := heroSheet(t, tmpl)

	cases := map[string]int{
		"Wisdom":       3 + 1,
		"Strength":     2 - 1,
		"Dexterity":    4 + 1,
		"Charisma":     2,
		"Constitution": 0,
	}
	for name, want := range cases {
		got, err := roll.Modifier(tmpl, s, roll.Attribute(name))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestModifier_Skill(t *testing.T) {
	tmpl := loadTemplate(t, "standard.json5")
	s := heroSheet(t, tmpl)

	cases := map[string]int{
		"Insight":    2 + 3 + 2,
		"Stealth":    1 + 4 + 2,
		"Persuasion": 3 + 2,
		"Athletics":  0 + 2,
	}
	for name, want := range cases {
		got, err := roll.Modifier(tmpl, s, roll.Skill(name))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestModifier_MissingTargets(t *testing.T) {
	tmpl := loadTemplate(t, "skirmish.yaml")
	s, err := character.NewBaseSheet(tmpl)
	require.NoError(t, err)

	_, err = roll.Modifier(tmpl, s, roll.Skill("Acrobatics"))
	require.Error(t, err)
	assert.Equal(t, roll.InvalidSkill("Acrobatics"), err)
	assert.ErrorIs(t, err, roll.ErrInvalidSkill)
	assert.NotErrorIs(t, err, roll.ErrInvalidAttribute)
	assert.Equal(t, "InvalidSkill(Acrobatics)", err.Error())

	_, err = roll.Modifier(tmpl, s, roll.Attribute("Luck"))
	assert.ErrorIs(t, err, roll.ErrInvalidAttribute)
	assert.ErrorIs(t, err, roll.InvalidAttribute("Luck"))
	assert.NotErrorIs(t, err, roll.InvalidAttribute("Might"))
}

func TestPerkModifier_NoPerkLists(t *testing.T) {
	tmpl := loadTemplate(t, "standard.json5")
	s := heroSheet(t, tmpl)
	s.Perks = nil
	assert.Equal(t, 0, roll.PerkModifier(tmpl, s, roll.Attribute("Wisdom")))

	skirmish := loadTemplate(t, "skirmish.yaml")
	other, err := character.NewBaseSheet(skirmish)
	require.NoError(t, err)
	other.Perks = []string{"Fire Gaze"}
	assert.Equal(t, 0, roll.PerkModifier(skirmish, other, roll.Attribute("Might")))
}

func TestPerkModifier_KindsDoNotMix(t *testing.T) {
	tmpl := &ruleset.Template{
		Name: "Mirror",
		Perks: []ruleset.Perk{{
			Name:       "Focused",
			Attributes: []ruleset.AttributeModifier{{Name: "Focus", Modifier: 5}},
			Skills:     []ruleset.SkillModifier{{Name: "Focus", Modifier: 1}},
		}, {
			Name:   "Unheld",
			Skills: []ruleset.SkillModifier{{Name: "Focus", Modifier: 100}},
		}},
	}
	s := &character.Sheet{
		Perks: []string{"Focused"},
		Attributes: []character.Attribute{{
			Name: "Focus", Value: 2,
			Skills: []character.Skill{{Name: "Focus", Value: 3}},
		}},
	}

	attr, err := roll.Modifier(tmpl, s, roll.Attribute("Focus"))
	require.NoError(t, err)
	assert.Equal(t, 2+5, attr)

	skill, err := roll.Modifier(tmpl, s, roll.Skill("Focus"))
	require.NoError(t, err)
	assert.Equal(t, 3+2+1, skill)
}

func TestParseTarget(t *testing.T) {
	got, err := roll.ParseTarget("attribute:Strength")
	require.NoError(t, err)
	assert.Equal(t, roll.Attribute("Strength"), got)

	got, err = roll.ParseTarget("Skill:Sleight of Hand")
	require.NoError(t, err)
	assert.Equal(t, roll.Skill("Sleight of Hand"), got)
	assert.Equal(t, "Sleight of Hand", got.String())
	assert.Equal(t, "skill", got.Kind.String())

	for _, bad := range []string{"", "Strength", "attribute:", "spell:Fireball"} {
		_, err := roll.ParseTarget(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolver_RollPinnedD20(t *testing.T) {
	tmpl := loadTemplate(t, "standard.json5")
	s := heroSheet(t, tmpl)

	ctrl := gomock.NewController(t)
	src := dicemocks.NewMockSource(ctrl)
	src.EXPECT().Intn(20).Return(13)

	r := roll.NewResolver(dice.NewLoggedRoller(src, zaptest.NewLogger(t)), zaptest.NewLogger(t))
	res, err := r.Roll(tmpl, s, roll.Skill("Insight"))
	require.NoError(t, err)
	assert.Equal(t, roll.Result{Target: "Insight", Roll: 14, Modifier: 7, Value: 21}, res)
}

func TestResolver_InvalidTargetDoesNotRoll(t *testing.T) {
	tmpl := loadTemplate(t, "standard.json5")
	s := heroSheet(t, tmpl)

	ctrl := gomock.NewController(t)
	src := dicemocks.NewMockSource(ctrl)

	r := roll.NewResolver(dice.NewLoggedRoller(src, zap.NewNop()), zap.NewNop())
	_, err := r.Roll(tmpl, s, roll.Skill("Acrobatic"))
	assert.ErrorIs(t, err, roll.ErrInvalidSkill)
}

func TestResolver_LogsResolvedRoll(t *testing.T) {
	tmpl := loadTemplate(t, "standard.json5")
	s := heroSheet(t, tmpl)
	core, logs := observer.New(zap.DebugLevel)

	r := roll.NewResolver(dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop()), zap.New(core))
	res, err := r.Roll(tmpl, s, roll.Attribute("Wisdom"))
	require.NoError(t, err)

	entries := logs.FilterMessage("roll resolved").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "attribute", fields["kind"])
	assert.Equal(t, "Wisdom", fields["target"])
	assert.Equal(t, int64(res.Value), fields["value"])
}

func TestResolver_RollAll(t *testing.T) {
	tmpl := loadTemplate(t, "skirmish.yaml")
	s, err := character.NewBaseSheet(tmpl)
	require.NoError(t, err)

	r := roll.NewResolver(dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop()), zap.NewNop())
	results, err := r.RollAll(tmpl, s)
	require.NoError(t, err)

	var targets []string
	for _, res := range results {
		targets = append(targets, res.Target)
	}
	assert.Equal(t, []string{"Might", "Brawl", "Nerve"}, targets)
}

// Property: roll is in [1, 20] and Value == Roll + Modifier.
func TestPropertyRollBounds(t *testing.T) {
	tmpl := loadTemplate(t, "standard.json5")
	s := heroSheet(t, tmpl)
	r := roll.NewResolver(dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop()), zap.NewNop())
	targets := []roll.Target{
		roll.Attribute("Wisdom"), roll.Attribute("Strength"),
		roll.Skill("Stealth"), roll.Skill("Insight"), roll.Skill("History"),
	}

	rapid.Check(t, func(rt *rapid.T) {
		target := rapid.SampledFrom(targets).Draw(rt, "target")
		res, err := r.Roll(tmpl, s, target)
		if err != nil {
			rt.Fatalf("roll %v: %v", target, err)
		}
		if res.Roll < 1 || res.Roll > 20 {
			rt.Fatalf("roll %d outside [1, 20]", res.Roll)
		}
		if res.Value != res.Roll+res.Modifier {
			rt.Fatalf("value %d != roll %d + modifier %d", res.Value, res.Roll, res.Modifier)
		}
	})
}

// Property: a skill modifier is skill + owning attribute + held perk bonuses.
func TestPropertySkillModifierFormula(t *testing.T) {
	tmpl := loadTemplate(t, "standard.json5")
	perkNames := []string{"Force Sensitive", "Small Frame", "Charismatic", "Keen Eye", "Iron Skin"}

	rapid.Check(t, func(rt *rapid.T) {
		s := heroSheet(t, tmpl)
		dex := rapid.IntRange(-10, 10).Draw(rt, "dex")
		stealth := rapid.IntRange(-10, 10).Draw(rt, "stealth")
		s.Perks = rapid.SliceOfDistinct(rapid.SampledFrom(perkNames), rapid.ID[string]).Draw(rt, "perks")

		a, _ := s.Attribute("Dexterity")
		a.Value = dex
		_, sk, _ := s.SkillOwner("Stealth")
		sk.Value = stealth

		want := stealth + dex
		wantAttr := dex
		if s.HoldsPerk("Small Frame") {
			want += 2
			wantAttr++
		}

		got, err := roll.Modifier(tmpl, s, roll.Skill("Stealth"))
		if err != nil || got != want {
			rt.Fatalf("Stealth modifier = %d, %v; want %d", got, err, want)
		}
		got, err = roll.Modifier(tmpl, s, roll.Attribute("Dexterity"))
		if err != nil || got != wantAttr {
			rt.Fatalf("Dexterity modifier = %d, %v; want %d", got, err, wantAttr)
		}
	})
}

func TestTargetError_AsTarget(t *testing.T) {
	var te *roll.TargetError
	err := error(roll.InvalidAttribute("Luck"))
	require.True(t, errors.As(err, &te))
	assert.Equal(t, roll.TargetAttribute, te.Kind)
	assert.Equal(t, "InvalidAttribute(Luck)", err.Error())
}
