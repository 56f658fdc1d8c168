package ruleset

import (
	"fmt"
	"strings"
)

// Validate checks the template's structural invariants: non-empty names,
// unique attribute and perk names, unique skill names per attribute, and
// non-negative budgets.
//
// Postcondition: Returns nil if the template is well formed, or an error describing all violations.
func (t *Template) Validate() error {
	var errs []string

	if t.Name == "" {
		errs = append(errs, "template name must not be empty")
	}

	attrs := make(map[string]bool, len(t.Attributes))
	for i, a := range t.Attributes {
		if a.Name == "" {
			errs = append(errs, fmt.Sprintf("attributes[%d]: name must not be empty", i))
			continue
		}
		if attrs[a.Name] {
			errs = append(errs, fmt.Sprintf("attribute %q declared more than once", a.Name))
		}
		attrs[a.Name] = true

		skills := make(map[string]bool, len(a.Skills))
		for j, s := range a.Skills {
			if s.Name == "" {
				errs = append(errs, fmt.Sprintf("attribute %q skills[%d]: name must not be empty", a.Name, j))
				continue
			}
			if skills[s.Name] {
				errs = append(errs, fmt.Sprintf("skill %q declared more than once in attribute %q", s.Name, a.Name))
			}
			skills[s.Name] = true
		}
	}

	perks := make(map[string]bool, len(t.Perks))
	for i, p := range t.Perks {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("perks[%d]: name must not be empty", i))
			continue
		}
		if perks[p.Name] {
			errs = append(errs, fmt.Sprintf("perk %q declared more than once", p.Name))
		}
		perks[p.Name] = true
	}

	errs = append(errs, validateAllotment(t.Allotments)...)

	if len(errs) > 0 {
		return fmt.Errorf("template %q is invalid: %s", t.Name, strings.Join(errs, "; "))
	}
	return nil
}

func validateAllotment(a Allotment) []string {
	var errs []string
	check := func(field string, v *int) {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Sprintf("allotments.%s must be >= 0, got %d", field, *v))
		}
	}
	given := a.Attributes.GivenPoints
	check("attributes.given_points", &given)
	check("attributes.max_points_per_allotment", a.Attributes.MaxPointsPerAllotment)
	if a.Skills != nil {
		given := a.Skills.GivenPoints
		check("skills.given_points", &given)
		check("skills.max_points_per_allotment", a.Skills.MaxPointsPerAllotment)
	}
	if a.Perks != nil {
		given := a.Perks.GivenPoints
		check("perks.given_points", &given)
		check("perks.max_points_per_allotment", a.Perks.MaxPointsPerAllotment)
		check("perks.max_perks", a.Perks.MaxPerks)
	}
	return errs
}
