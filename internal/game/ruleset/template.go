// Package ruleset defines the character template: the authoritative rules
// (attributes, skills, perks, point budgets) a character sheet is checked against.
package ruleset

// AttributeModifier is a perk's effect on a named attribute while the perk is held.
type AttributeModifier struct {
	Name     string `json:"name" yaml:"name"`
	Modifier int    `json:"modifier" yaml:"modifier"`
}

// SkillModifier is a perk's effect on a named skill while the perk is held.
type SkillModifier struct {
	Name     string `json:"name" yaml:"name"`
	Modifier int    `json:"modifier" yaml:"modifier"`
}

// AttributeRequirement gates on an attribute value.
type AttributeRequirement struct {
	Name                 string `json:"name" yaml:"name"`
	GreaterThanOrEqualTo int    `json:"greater_than_or_equal_to" yaml:"greater_than_or_equal_to"`
}

// SkillRequirement gates on a skill value.
type SkillRequirement struct {
	Name                 string `json:"name" yaml:"name"`
	GreaterThanOrEqualTo int    `json:"greater_than_or_equal_to" yaml:"greater_than_or_equal_to"`
}

// Requirements lists prerequisites for an attribute or weapon.
// They are carried by the template but not enforced when checking a sheet.
type Requirements struct {
	Perks      []string               `json:"perks,omitempty" yaml:"perks,omitempty"`
	Attributes []AttributeRequirement `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Skills     []SkillRequirement     `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// Skill is a skill declared under an attribute.
type Skill struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Attribute is a template attribute. A nil Skills slice means the attribute
// declares no skills at all.
type Attribute struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Skills      []Skill       `json:"skills,omitempty" yaml:"skills,omitempty"`
	Required    *Requirements `json:"required,omitempty" yaml:"required,omitempty"`
}

// Skill returns the declared skill with the given name.
//
// Postcondition: Returns the skill and true, or nil and false if not declared.
func (a *Attribute) Skill(name string) (*Skill, bool) {
	for i := range a.Skills {
		if a.Skills[i].Name == name {
			return &a.Skills[i], true
		}
	}
	return nil, false
}

// Perk is an optional trait that costs perk points and applies fixed
// modifiers to named attributes and skills.
type Perk struct {
	Name                   string              `json:"name" yaml:"name"`
	Description            string              `json:"description" yaml:"description"`
	PointCost              int                 `json:"point_cost" yaml:"point_cost"`
	Attributes             []AttributeModifier `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Skills                 []SkillModifier     `json:"skills,omitempty" yaml:"skills,omitempty"`
	BaseHealthModifier     *int                `json:"base_health_modifier,omitempty" yaml:"base_health_modifier,omitempty"`
	BaseArmorClassModifier *int                `json:"base_armor_class_modifier,omitempty" yaml:"base_armor_class_modifier,omitempty"`
}

// Weapon is a single weapon within a proficiency category.
type Weapon struct {
	Weapon   string        `json:"weapon" yaml:"weapon"`
	Required *Requirements `json:"required,omitempty" yaml:"required,omitempty"`
}

// WeaponCategory groups weapons, e.g. "Simple" or "Martial".
type WeaponCategory struct {
	Category string   `json:"category" yaml:"category"`
	Weapons  []Weapon `json:"weapons" yaml:"weapons"`
}

// WeaponProficiency lists the weapon categories a template offers.
type WeaponProficiency struct {
	Categories []WeaponCategory `json:"categories" yaml:"categories"`
}

// Template is the authoritative character template. It is loaded once and
// treated as read-only for the lifetime of the process.
//
// Invariant: attribute names are unique; skill names are unique within an attribute.
type Template struct {
	Name                string             `json:"name" yaml:"name"`
	Version             Version            `json:"version" yaml:"version"`
	Description         string             `json:"description" yaml:"description"`
	BaseHealth          int                `json:"base_health" yaml:"base_health"`
	BaseArmorClass      int                `json:"base_armor_class" yaml:"base_armor_class"`
	Allotments          Allotment          `json:"allotments" yaml:"allotments"`
	WeaponProficiencies *WeaponProficiency `json:"weapon_proficiencies,omitempty" yaml:"weapon_proficiencies,omitempty"`
	Perks               []Perk             `json:"perks,omitempty" yaml:"perks,omitempty"`
	Attributes          []Attribute        `json:"attributes" yaml:"attributes"`
}

// Attribute returns the template attribute with the given name.
//
// Postcondition: Returns the attribute and true, or nil and false if not declared.
func (t *Template) Attribute(name string) (*Attribute, bool) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == name {
			return &t.Attributes[i], true
		}
	}
	return nil, false
}

// Perk returns the template perk with the given name.
//
// Postcondition: Returns the perk and true, or nil and false if the template
// declares no such perk (or no perks at all).
func (t *Template) Perk(name string) (*Perk, bool) {
	for i := range t.Perks {
		if t.Perks[i].Name == name {
			return &t.Perks[i], true
		}
	}
	return nil, false
}

// HasPerks reports whether the template declares a perk list.
func (t *Template) HasPerks() bool {
	return t.Perks != nil
}
