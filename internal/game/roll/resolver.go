package roll

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsheet/internal/game/character"
	"github.com/cory-johannsen/charsheet/internal/game/dice"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
	"github.com/cory-johannsen/charsheet/internal/observability"
)

// Result is a resolved roll.
//
// Invariant: Value == Roll + Modifier; Roll is in [1, 20].
type Result struct {
	Target   string `json:"target"`
	Roll     int    `json:"roll"`
	Modifier int    `json:"modifier"`
	Value    int    `json:"value"`
}

// Resolver draws d20 rolls and applies sheet modifiers.
type Resolver struct {
	roller *dice.Roller
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: roller and logger must be non-nil.
func NewResolver(roller *dice.Roller, logger *zap.Logger) *Resolver {
	return &Resolver{roller: roller, logger: logger}
}

// Roll resolves a d20 roll against target. The sheet does not need to have
// passed validation.
//
// Precondition: tmpl and sheet must be non-nil.
// Postcondition: Returns a Result satisfying Value == Roll + Modifier, or a
// *TargetError if target is not on the sheet.
func (r *Resolver) Roll(tmpl *ruleset.Template, sheet *character.Sheet, target Target) (Result, error) {
	mod, err := Modifier(tmpl, sheet, target)
	if err != nil {
		return Result{}, err
	}
	d := r.roller.D20()
	res := Result{
		Target:   target.String(),
		Roll:     d,
		Modifier: mod,
		Value:    d + mod,
	}
	r.logger.Debug("roll resolved",
		observability.Sheet(sheet),
		zap.Stringer("kind", target.Kind),
		zap.String("target", res.Target),
		zap.Int("roll", res.Roll),
		zap.Int("modifier", res.Modifier),
		zap.Int("value", res.Value),
	)
	return res, nil
}

// RollAll rolls every attribute on the sheet followed by that attribute's
// skills, in sheet order.
//
// Precondition: tmpl and sheet must be non-nil.
// Postcondition: Returns one Result per attribute and skill, or the first error.
func (r *Resolver) RollAll(tmpl *ruleset.Template, sheet *character.Sheet) ([]Result, error) {
	var out []Result
	for _, a := range sheet.Attributes {
		res, err := r.Roll(tmpl, sheet, Attribute(a.Name))
		if err != nil {
			return nil, err
		}
		out = append(out, res)
		for _, s := range a.Skills {
			res, err := r.Roll(tmpl, sheet, Skill(s.Name))
			if err != nil {
				return nil, err
			}
			out = append(out, res)
		}
	}
	return out, nil
}
