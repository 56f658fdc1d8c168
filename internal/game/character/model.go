// Package character defines the character sheet domain model and pure creation logic.
package character

import "github.com/cory-johannsen/charsheet/internal/game/ruleset"

// Skill is a skill value recorded on a sheet.
type Skill struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Attribute is an attribute value recorded on a sheet. A nil Skills slice
// means the sheet supplies no skill list for the attribute.
type Attribute struct {
	Name   string  `json:"name"`
	Value  int     `json:"value"`
	Skills []Skill `json:"skills"`
}

// TemplateRef identifies the template a sheet was built against.
type TemplateRef struct {
	Name    string          `json:"name"`
	Version ruleset.Version `json:"version"`
}

// Sheet is a player's character sheet.
//
// Perks holds the names of perks the character holds. A nil Perks slice means
// no perk list is recorded; an empty non-nil slice is an explicit empty list.
type Sheet struct {
	Name                string      `json:"name"`
	Template            TemplateRef `json:"template"`
	Description         *string     `json:"description"`
	Health              int         `json:"health"`
	ArmorClass          int         `json:"armor_class"`
	WeaponProficiencies []string    `json:"weapon_proficiencies"`
	Perks               []string    `json:"perks"`
	Attributes          []Attribute `json:"attributes"`
}

// Attribute returns the sheet attribute with the given name.
//
// Postcondition: Returns the attribute and true, or nil and false if absent.
func (s *Sheet) Attribute(name string) (*Attribute, bool) {
	for i := range s.Attributes {
		if s.Attributes[i].Name == name {
			return &s.Attributes[i], true
		}
	}
	return nil, false
}

// SkillOwner returns the first attribute owning a skill with the given name,
// searching attributes in sheet order, together with the skill itself.
//
// Postcondition: Returns (attribute, skill, true), or (nil, nil, false) if no attribute owns the skill.
func (s *Sheet) SkillOwner(name string) (*Attribute, *Skill, bool) {
	for i := range s.Attributes {
		a := &s.Attributes[i]
		for j := range a.Skills {
			if a.Skills[j].Name == name {
				return a, &a.Skills[j], true
			}
		}
	}
	return nil, nil, false
}

// HoldsPerk reports whether name appears in the sheet's perk list.
func (s *Sheet) HoldsPerk(name string) bool {
	for _, p := range s.Perks {
		if p == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the sheet so callers can edit it without
// disturbing a value that may be shared with an in-flight check or roll.
func (s *Sheet) Clone() *Sheet {
	out := *s
	if s.Description != nil {
		d := *s.Description
		out.Description = &d
	}
	if s.WeaponProficiencies != nil {
		out.WeaponProficiencies = append([]string{}, s.WeaponProficiencies...)
	}
	if s.Perks != nil {
		out.Perks = append([]string{}, s.Perks...)
	}
	if s.Attributes != nil {
		out.Attributes = make([]Attribute, len(s.Attributes))
		for i, a := range s.Attributes {
			out.Attributes[i] = a
			if a.Skills != nil {
				out.Attributes[i].Skills = append([]Skill{}, a.Skills...)
			}
		}
	}
	return &out
}
