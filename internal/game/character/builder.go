package character

import (
	"errors"

	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
)

// NewBaseSheet builds the canonical "new character" sheet for a template:
// every template attribute at value 0, every declared skill at value 0, no
// perks held, and health and armor class at the template's base values.
//
// The perk list is an empty non-nil slice when the template declares perks
// and nil otherwise. The sheet name is left empty for the caller to fill in.
//
// Precondition: t must be non-nil.
// Postcondition: Returns a sheet that passes validation once its name
// satisfies the configured length bounds, or a non-nil error.
func NewBaseSheet(t *ruleset.Template) (*Sheet, error) {
	if t == nil {
		return nil, errors.New("template must not be nil")
	}

	var perks []string
	if t.HasPerks() {
		perks = []string{}
	}

	attrs := make([]Attribute, 0, len(t.Attributes))
	for _, a := range t.Attributes {
		var skills []Skill
		if a.Skills != nil {
			skills = make([]Skill, 0, len(a.Skills))
			for _, s := range a.Skills {
				skills = append(skills, Skill{Name: s.Name})
			}
		}
		attrs = append(attrs, Attribute{Name: a.Name, Skills: skills})
	}

	health, ac := BaseStats(t, nil)
	return &Sheet{
		Template:            TemplateRef{Name: t.Name, Version: t.Version},
		Health:              health,
		ArmorClass:          ac,
		WeaponProficiencies: []string{},
		Perks:               perks,
		Attributes:          attrs,
	}, nil
}

// BaseStats returns the health and armor class a character holding perks
// starts with: the template base values plus each held perk's base modifiers.
// Perk names the template does not declare contribute nothing.
//
// Precondition: t must be non-nil.
func BaseStats(t *ruleset.Template, perks []string) (health, armorClass int) {
	health, armorClass = t.BaseHealth, t.BaseArmorClass
	for _, name := range perks {
		p, ok := t.Perk(name)
		if !ok {
			continue
		}
		if p.BaseHealthModifier != nil {
			health += *p.BaseHealthModifier
		}
		if p.BaseArmorClassModifier != nil {
			armorClass += *p.BaseArmorClassModifier
		}
	}
	return health, armorClass
}
