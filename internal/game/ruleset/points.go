package ruleset

import "math"

// Points is a point budget: the total points given and an optional cap on
// how many may be placed in a single attribute or skill.
type Points struct {
	GivenPoints           int  `json:"given_points" yaml:"given_points"`
	MaxPointsPerAllotment *int `json:"max_points_per_allotment,omitempty" yaml:"max_points_per_allotment,omitempty"`
}

// Cap returns the per-allotment cap, or math.MaxInt when none is declared.
func (p Points) Cap() int {
	return capOrMax(p.MaxPointsPerAllotment)
}

// PerkPoints is the perk budget. MaxPerks caps the number of perks held,
// independently of their point cost.
type PerkPoints struct {
	GivenPoints           int  `json:"given_points" yaml:"given_points"`
	MaxPointsPerAllotment *int `json:"max_points_per_allotment,omitempty" yaml:"max_points_per_allotment,omitempty"`
	MaxPerks              *int `json:"max_perks,omitempty" yaml:"max_perks,omitempty"`
}

// PerkCap returns the maximum perk count, or math.MaxInt when none is declared.
func (p PerkPoints) PerkCap() int {
	return capOrMax(p.MaxPerks)
}

// Allotment holds the three independent budgets a sheet must respect.
// Skills and Perks are nil when the template declares no such budget.
type Allotment struct {
	Attributes Points      `json:"attributes" yaml:"attributes"`
	Skills     *Points     `json:"skills,omitempty" yaml:"skills,omitempty"`
	Perks      *PerkPoints `json:"perks,omitempty" yaml:"perks,omitempty"`
}

func capOrMax(v *int) int {
	if v == nil {
		return math.MaxInt
	}
	return *v
}

// IntPtr returns a pointer to v. Handy for building optional caps in code.
func IntPtr(v int) *int {
	return &v
}
