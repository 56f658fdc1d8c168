// Package validation checks a character sheet against its template and the
// sheet-level configuration.
package validation

import (
	"math"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/cory-johannsen/charsheet/internal/config"
	"github.com/cory-johannsen/charsheet/internal/game/character"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
	"github.com/cory-johannsen/charsheet/internal/observability"
)

// Validator checks sheets under a fixed sheet-level config.
type Validator struct {
	cfg    config.SheetConfig
	logger *zap.Logger
}

// NewValidator creates a Validator.
//
// Precondition: logger must be non-nil.
func NewValidator(cfg config.SheetConfig, logger *zap.Logger) *Validator {
	return &Validator{cfg: cfg, logger: logger}
}

// Check validates sheet against tmpl. Rejections are logged at debug.
//
// Postcondition: Returns nil or a *SheetError.
func (v *Validator) Check(tmpl *ruleset.Template, sheet *character.Sheet) error {
	err := Check(v.cfg, tmpl, sheet)
	if err != nil {
		v.logger.Debug("sheet rejected",
			observability.Sheet(sheet),
			observability.Template(tmpl),
			zap.Stringer("kind", KindOf(err)),
			zap.Error(err),
		)
	}
	return err
}

// Check validates sheet against tmpl and cfg, returning the first violated
// rule. Rules run in a fixed order and later rules rely on earlier ones
// having passed:
//
//  1. name length
//  2. description length
//  3. template name
//  4. template version
//  5. perk membership
//  6. perk budget
//  7. attribute membership
//  8. attribute budget
//  9. skill membership per attribute
//  10. skill budget
//
// Neither tmpl nor sheet is modified.
//
// Precondition: tmpl and sheet must be non-nil.
// Postcondition: Returns nil if every rule passes, or the *SheetError for the first rule that fails.
func Check(cfg config.SheetConfig, tmpl *ruleset.Template, sheet *character.Sheet) error {
	checks := []func() *SheetError{
		func() *SheetError { return checkName(cfg, sheet) },
		func() *SheetError { return checkDescription(cfg, sheet) },
		func() *SheetError { return checkTemplateName(tmpl, sheet) },
		func() *SheetError { return checkVersion(tmpl, sheet) },
		func() *SheetError { return checkPerks(tmpl, sheet) },
		func() *SheetError { return checkPerkAllotment(tmpl, sheet) },
		func() *SheetError { return checkAttributes(tmpl, sheet) },
		func() *SheetError { return checkAttributeAllotment(tmpl, sheet) },
		func() *SheetError { return checkSkills(tmpl, sheet) },
		func() *SheetError { return checkSkillAllotment(tmpl, sheet) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// textLength counts characters of the NFC form of s, so "é" typed as one or
// two code points has the same length.
func textLength(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

func checkName(cfg config.SheetConfig, sheet *character.Sheet) *SheetError {
	n := textLength(sheet.Name)
	if n < cfg.Name.MinLength {
		return NameTooShort()
	}
	if n > cfg.Name.MaxLength {
		return NameTooLong()
	}
	return nil
}

func checkDescription(cfg config.SheetConfig, sheet *character.Sheet) *SheetError {
	if sheet.Description == nil {
		return nil
	}
	if textLength(*sheet.Description) > cfg.Description.MaxLength {
		return DescriptionTooLong()
	}
	return nil
}

func checkTemplateName(tmpl *ruleset.Template, sheet *character.Sheet) *SheetError {
	if sheet.Template.Name != tmpl.Name {
		return NameMismatch()
	}
	return nil
}

func checkVersion(tmpl *ruleset.Template, sheet *character.Sheet) *SheetError {
	if sheet.Template.Version != tmpl.Version {
		return VersionMismatch()
	}
	return nil
}

// An empty or absent sheet perk list is legal under any template.
func checkPerks(tmpl *ruleset.Template, sheet *character.Sheet) *SheetError {
	if len(sheet.Perks) == 0 {
		return nil
	}
	if !tmpl.HasPerks() {
		return PerksNotAllowed()
	}
	for _, name := range sheet.Perks {
		if _, ok := tmpl.Perk(name); !ok {
			return PerkNotAllowed(name)
		}
	}
	return nil
}

// The perk count is checked before the point total. A perk held twice counts
// twice toward both.
func checkPerkAllotment(tmpl *ruleset.Template, sheet *character.Sheet) *SheetError {
	budget := tmpl.Allotments.Perks
	if budget == nil {
		return nil
	}
	if len(sheet.Perks) > budget.PerkCap() {
		return TooManyPerks(len(sheet.Perks), budget.PerkCap())
	}
	total := 0
	for _, name := range sheet.Perks {
		p, ok := tmpl.Perk(name)
		if !ok {
			return PerkNotAllowed(name)
		}
		total = saturatingAdd(total, p.PointCost)
	}
	if total > budget.GivenPoints {
		return NotEnoughPerkPoints(total)
	}
	return nil
}

func checkAttributes(tmpl *ruleset.Template, sheet *character.Sheet) *SheetError {
	for _, a := range sheet.Attributes {
		if _, ok := tmpl.Attribute(a.Name); !ok {
			return AttributeNotAllowed(a.Name)
		}
	}
	return nil
}

func checkAttributeAllotment(tmpl *ruleset.Template, sheet *character.Sheet) *SheetError {
	budget := tmpl.Allotments.Attributes
	maxPoints := budget.Cap()
	total := 0
	for _, a := range sheet.Attributes {
		if a.Value < 0 {
			return NegativeAttributePoints(a.Name, a.Value)
		}
		if a.Value > maxPoints {
			return TooManyAttributePoints(a.Name, a.Value, maxPoints)
		}
		total = saturatingAdd(total, a.Value)
	}
	if total > budget.GivenPoints {
		return AttributePointsExceeded(total)
	}
	return nil
}

func checkSkills(tmpl *ruleset.Template, sheet *character.Sheet) *SheetError {
	for _, a := range sheet.Attributes {
		ta, ok := tmpl.Attribute(a.Name)
		if !ok {
			return AttributeNotAllowed(a.Name)
		}
		if a.Skills == nil {
			if ta.Skills == nil {
				continue
			}
			return SkillsMissingInAttribute(a.Name)
		}
		if ta.Skills == nil {
			if len(a.Skills) == 0 {
				continue
			}
			names := make([]string, 0, len(a.Skills))
			for _, s := range a.Skills {
				names = append(names, s.Name)
			}
			return SheetSkillsNotPresentInTemplateAttribute(a.Name, names)
		}
		for _, s := range a.Skills {
			if _, ok := ta.Skill(s.Name); !ok {
				return SkillNotAllowed(s.Name)
			}
		}
	}
	return nil
}

// Without a declared skill budget, skill values only need to be non-negative.
func checkSkillAllotment(tmpl *ruleset.Template, sheet *character.Sheet) *SheetError {
	budget := tmpl.Allotments.Skills
	maxPoints, given := math.MaxInt, math.MaxInt
	if budget != nil {
		maxPoints, given = budget.Cap(), budget.GivenPoints
	}
	total := 0
	for _, a := range sheet.Attributes {
		for _, s := range a.Skills {
			if s.Value < 0 {
				return NegativeSkillPoints(s.Name, s.Value)
			}
			if s.Value > maxPoints {
				return TooManySkillPoints(s.Name, s.Value, maxPoints)
			}
			total = saturatingAdd(total, s.Value)
		}
	}
	if total > given {
		return SkillPointsExceeded(total)
	}
	return nil
}

// saturatingAdd returns a+b, clamped at math.MaxInt.
func saturatingAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
