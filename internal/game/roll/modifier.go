package roll

import (
	"fmt"

	"github.com/cory-johannsen/charsheet/internal/game/character"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
)

// Modifier returns the total modifier for a roll against target:
//
//	attribute: attribute.value + perk modifier
//	skill:     skill.value + owning attribute.value + perk modifier
//
// A skill is found by searching every sheet attribute's skills in order.
//
// Precondition: tmpl and sheet must be non-nil.
// Postcondition: Returns the modifier, or a *TargetError if the target is not on the sheet.
func Modifier(tmpl *ruleset.Template, sheet *character.Sheet, target Target) (int, error) {
	switch target.Kind {
	case TargetAttribute:
		a, ok := sheet.Attribute(target.Name)
		if !ok {
			return 0, InvalidAttribute(target.Name)
		}
		return a.Value + PerkModifier(tmpl, sheet, target), nil
	case TargetSkill:
		a, s, ok := sheet.SkillOwner(target.Name)
		if !ok {
			return 0, InvalidSkill(target.Name)
		}
		return s.Value + a.Value + PerkModifier(tmpl, sheet, target), nil
	}
	return 0, fmt.Errorf("unknown roll target kind %v", target.Kind)
}

// PerkModifier sums the modifiers that held perks apply to target. Only the
// modifier list matching the target kind is consulted. Perks the template
// declares but the sheet does not hold, and held names the template does not
// declare, contribute nothing. Returns 0 when either side has no perk list.
//
// Precondition: tmpl and sheet must be non-nil.
func PerkModifier(tmpl *ruleset.Template, sheet *character.Sheet, target Target) int {
	if !tmpl.HasPerks() || sheet.Perks == nil {
		return 0
	}
	total := 0
	for _, p := range tmpl.Perks {
		if !sheet.HoldsPerk(p.Name) {
			continue
		}
		switch target.Kind {
		case TargetAttribute:
			for _, m := range p.Attributes {
				if m.Name == target.Name {
					total += m.Modifier
				}
			}
		case TargetSkill:
			for _, m := range p.Skills {
				if m.Name == target.Name {
					total += m.Modifier
				}
			}
		}
	}
	return total
}
