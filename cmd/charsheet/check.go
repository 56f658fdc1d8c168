package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/charsheet/internal/game/character"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
	"github.com/cory-johannsen/charsheet/internal/game/validation"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var templateName string
	cmd := &cobra.Command{
		Use:   "check <sheet.json>...",
		Short: "Validate character sheets against their templates",
		Long: `Validate each sheet against the template it references (or --template)
and report the first rule it breaks.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			rejected := 0
			for _, path := range args {
				sheet, err := character.LoadSheet(path)
				if err != nil {
					return err
				}
				tmpl, err := a.templateFor(sheet, templateName)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := a.validator.Check(tmpl, sheet); err != nil {
					rejected++
					fmt.Fprintf(out, "%s: %s: %v\n", path, validation.KindOf(err), err)
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", path)
			}
			if rejected > 0 {
				return fmt.Errorf("%d of %d sheets rejected", rejected, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&templateName, "template", "", "template to check against instead of the one the sheet references")
	return cmd
}

// templateFor returns the named template, or the one the sheet references
// when name is empty. Version differences are left to the validator.
func (a *app) templateFor(sheet *character.Sheet, name string) (*ruleset.Template, error) {
	if name == "" {
		name = sheet.Template.Name
	}
	return a.registry.Lookup(name, nil)
}
