package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/charsheet/internal/game/character"
	"github.com/cory-johannsen/charsheet/internal/game/roll"
)

func newRollCmd(opts *rootOptions) *cobra.Command {
	var (
		attribute    string
		skill        string
		target       string
		templateName string
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "roll <sheet.json>",
		Short: "Roll a d20 against an attribute or skill on a sheet",
		Long: `Roll a d20 and add the sheet's modifier for one target. With no target
flag, every attribute and skill on the sheet is rolled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := rollTargets(attribute, skill, target)
			if err != nil {
				return err
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			sheet, err := character.LoadSheet(args[0])
			if err != nil {
				return err
			}
			tmpl, err := a.templateFor(sheet, templateName)
			if err != nil {
				return err
			}

			var results []roll.Result
			if len(targets) == 0 {
				results, err = a.resolver.RollAll(tmpl, sheet)
				if err != nil {
					return err
				}
			}
			for _, t := range targets {
				res, err := a.resolver.Roll(tmpl, sheet, t)
				if err != nil {
					return err
				}
				results = append(results, res)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				fmt.Fprintf(out, "%-16s d20=%2d %+3d = %d\n", r.Target, r.Roll, r.Modifier, r.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&attribute, "attribute", "", "attribute to roll")
	cmd.Flags().StringVar(&skill, "skill", "", "skill to roll")
	cmd.Flags().StringVar(&target, "target", "", "target as attribute:<name> or skill:<name>")
	cmd.Flags().StringVar(&templateName, "template", "", "template to roll against instead of the one the sheet references")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write results as JSON")
	cmd.MarkFlagsMutuallyExclusive("attribute", "skill", "target")
	return cmd
}

func rollTargets(attribute, skill, target string) ([]roll.Target, error) {
	switch {
	case attribute != "":
		return []roll.Target{roll.Attribute(attribute)}, nil
	case skill != "":
		return []roll.Target{roll.Skill(skill)}, nil
	case target != "":
		t, err := roll.ParseTarget(target)
		if err != nil {
			return nil, err
		}
		return []roll.Target{t}, nil
	}
	return nil, nil
}
