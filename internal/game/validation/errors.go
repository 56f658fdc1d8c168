package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which sheet rule was violated.
type Kind int

const (
	KindUnknown Kind = iota
	KindNameTooShort
	KindNameTooLong
	KindDescriptionTooLong
	KindNameMismatch
	KindVersionMismatch
	KindPerksNotAllowed
	KindPerkNotAllowed
	KindNotEnoughPerkPoints
	KindTooManyPerks
	KindAttributeNotAllowed
	KindTooManyAttributePoints
	KindNegativeAttributePoints
	KindAttributePointsExceeded
	KindSkillNotAllowed
	KindSheetSkillsNotPresentInTemplateAttribute
	KindSkillsMissingInAttribute
	KindTooManySkillPoints
	KindNegativeSkillPoints
	KindSkillPointsExceeded
)

var kindNames = map[Kind]string{
	KindUnknown:                                  "Unknown",
	KindNameTooShort:                             "NameTooShort",
	KindNameTooLong:                              "NameTooLong",
	KindDescriptionTooLong:                       "DescriptionTooLong",
	KindNameMismatch:                             "NameMismatch",
	KindVersionMismatch:                          "VersionMismatch",
	KindPerksNotAllowed:                          "PerksNotAllowed",
	KindPerkNotAllowed:                           "PerkNotAllowed",
	KindNotEnoughPerkPoints:                      "NotEnoughPerkPoints",
	KindTooManyPerks:                             "TooManyPerks",
	KindAttributeNotAllowed:                      "AttributeNotAllowed",
	KindTooManyAttributePoints:                   "TooManyAttributePoints",
	KindNegativeAttributePoints:                  "NegativeAttributePoints",
	KindAttributePointsExceeded:                  "AttributePointsExceeded",
	KindSkillNotAllowed:                          "SkillNotAllowed",
	KindSheetSkillsNotPresentInTemplateAttribute: "SheetSkillsNotPresentInTemplateAttribute",
	KindSkillsMissingInAttribute:                 "SkillsMissingInAttribute",
	KindTooManySkillPoints:                       "TooManySkillPoints",
	KindNegativeSkillPoints:                      "NegativeSkillPoints",
	KindSkillPointsExceeded:                      "SkillPointsExceeded",
}

// String returns the variant name, e.g. "TooManyPerks".
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SheetError reports the first rule a sheet violated.
//
// Which fields are meaningful depends on Kind:
//   - Name: the offending perk, attribute or skill name.
//   - Points: the offending value, the perk count, or the computed total.
//   - Max: the per-item cap or max perk count.
//   - Skills: the sheet skill names for SheetSkillsNotPresentInTemplateAttribute.
type SheetError struct {
	Kind   Kind
	Name   string
	Points int
	Max    int
	Skills []string
}

func (e *SheetError) Error() string {
	switch e.Kind {
	case KindNameTooShort:
		return "name too short"
	case KindNameTooLong:
		return "name too long"
	case KindDescriptionTooLong:
		return "description too long"
	case KindNameMismatch:
		return "character template name mismatch"
	case KindVersionMismatch:
		return "character template version mismatch"
	case KindPerksNotAllowed:
		return "character template does not allow perks"
	case KindPerkNotAllowed:
		return fmt.Sprintf("character template does not allow %s as a perk", e.Name)
	case KindNotEnoughPerkPoints:
		return fmt.Sprintf("character template does not allow %d perk points", e.Points)
	case KindTooManyPerks:
		return fmt.Sprintf("character template does not allow more than %d perks, but %d were selected", e.Max, e.Points)
	case KindAttributeNotAllowed:
		return fmt.Sprintf("character template does not allow %s as an attribute", e.Name)
	case KindTooManyAttributePoints:
		return fmt.Sprintf("character template does not allow %d points for attribute %s (max %d)", e.Points, e.Name, e.Max)
	case KindNegativeAttributePoints:
		return fmt.Sprintf("character template does not allow negative attribute points for %s attribute (%d)", e.Name, e.Points)
	case KindAttributePointsExceeded:
		return fmt.Sprintf("character template does not allow %d attribute points", e.Points)
	case KindSkillNotAllowed:
		return fmt.Sprintf("character template does not allow %s as a skill", e.Name)
	case KindSheetSkillsNotPresentInTemplateAttribute:
		return fmt.Sprintf("character template declares no skills for %s attribute, but the sheet has [%s]", e.Name, strings.Join(e.Skills, ", "))
	case KindSkillsMissingInAttribute:
		return fmt.Sprintf("character template requires skills array for %s attribute", e.Name)
	case KindTooManySkillPoints:
		return fmt.Sprintf("character template does not allow %d points for skill %s (max %d)", e.Points, e.Name, e.Max)
	case KindNegativeSkillPoints:
		return fmt.Sprintf("character template does not allow negative skill points for %s skill (%d)", e.Name, e.Points)
	case KindSkillPointsExceeded:
		return fmt.Sprintf("character template does not allow %d skill points", e.Points)
	}
	return "invalid character sheet"
}

// Is reports whether target is a *SheetError of the same Kind, so callers can
// match with errors.Is(err, &SheetError{Kind: KindTooManyPerks}).
func (e *SheetError) Is(target error) bool {
	var t *SheetError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of the SheetError in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var se *SheetError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// NameTooShort reports a name shorter than the configured minimum.
func NameTooShort() *SheetError { return &SheetError{Kind: KindNameTooShort} }

// NameTooLong reports a name longer than the configured maximum.
func NameTooLong() *SheetError { return &SheetError{Kind: KindNameTooLong} }

// DescriptionTooLong reports a description longer than the configured maximum.
func DescriptionTooLong() *SheetError { return &SheetError{Kind: KindDescriptionTooLong} }

// NameMismatch reports a sheet that references a different template name.
func NameMismatch() *SheetError { return &SheetError{Kind: KindNameMismatch} }

// VersionMismatch reports a sheet that references a different template version.
func VersionMismatch() *SheetError { return &SheetError{Kind: KindVersionMismatch} }

// PerksNotAllowed reports perks held against a template that declares none.
func PerksNotAllowed() *SheetError { return &SheetError{Kind: KindPerksNotAllowed} }

// PerkNotAllowed reports a held perk the template does not declare.
func PerkNotAllowed(name string) *SheetError {
	return &SheetError{Kind: KindPerkNotAllowed, Name: name}
}

// NotEnoughPerkPoints reports the total point cost of the held perks.
func NotEnoughPerkPoints(total int) *SheetError {
	return &SheetError{Kind: KindNotEnoughPerkPoints, Points: total}
}

// TooManyPerks reports more perks held than the template's max_perks.
func TooManyPerks(selected, maxPerks int) *SheetError {
	return &SheetError{Kind: KindTooManyPerks, Points: selected, Max: maxPerks}
}

// AttributeNotAllowed reports a sheet attribute the template does not declare.
func AttributeNotAllowed(name string) *SheetError {
	return &SheetError{Kind: KindAttributeNotAllowed, Name: name}
}

// TooManyAttributePoints reports an attribute above the per-attribute cap.
func TooManyAttributePoints(name string, points, maxPoints int) *SheetError {
	return &SheetError{Kind: KindTooManyAttributePoints, Name: name, Points: points, Max: maxPoints}
}

// NegativeAttributePoints reports an attribute with a negative value.
func NegativeAttributePoints(name string, points int) *SheetError {
	return &SheetError{Kind: KindNegativeAttributePoints, Name: name, Points: points}
}

// AttributePointsExceeded reports the attribute total when it exceeds the budget.
func AttributePointsExceeded(sum int) *SheetError {
	return &SheetError{Kind: KindAttributePointsExceeded, Points: sum}
}

// SkillNotAllowed reports a sheet skill the owning template attribute does not declare.
func SkillNotAllowed(name string) *SheetError {
	return &SheetError{Kind: KindSkillNotAllowed, Name: name}
}

// SheetSkillsNotPresentInTemplateAttribute reports skills listed under an
// attribute whose template counterpart declares no skills.
func SheetSkillsNotPresentInTemplateAttribute(attribute string, skills []string) *SheetError {
	return &SheetError{Kind: KindSheetSkillsNotPresentInTemplateAttribute, Name: attribute, Skills: skills}
}

// SkillsMissingInAttribute reports an attribute whose skill list is missing
// while the template declares one.
func SkillsMissingInAttribute(attribute string) *SheetError {
	return &SheetError{Kind: KindSkillsMissingInAttribute, Name: attribute}
}

// TooManySkillPoints reports a skill above the per-skill cap.
func TooManySkillPoints(name string, points, maxPoints int) *SheetError {
	return &SheetError{Kind: KindTooManySkillPoints, Name: name, Points: points, Max: maxPoints}
}

// NegativeSkillPoints names the offending skill, not its owning attribute.
func NegativeSkillPoints(name string, points int) *SheetError {
	return &SheetError{Kind: KindNegativeSkillPoints, Name: name, Points: points}
}

// SkillPointsExceeded reports the skill total when it exceeds the budget.
func SkillPointsExceeded(sum int) *SheetError {
	return &SheetError{Kind: KindSkillPointsExceeded, Points: sum}
}
