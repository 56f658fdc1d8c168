package main

import (
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/charsheet/internal/game/character"
)

func newBaseCmd(opts *rootOptions) *cobra.Command {
	var (
		name        string
		description string
		perks       []string
	)
	cmd := &cobra.Command{
		Use:   "base <template>",
		Short: "Print a new character sheet for a template",
		Long: `Print the base sheet for a template as JSON: every attribute and skill at 0
and health and armor class at the template's base values, adjusted for any
--perk given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			tmpl, err := a.registry.Lookup(args[0], nil)
			if err != nil {
				return err
			}
			sheet, err := character.NewBaseSheet(tmpl)
			if err != nil {
				return err
			}
			sheet.Name = name
			if cmd.Flags().Changed("description") {
				sheet.Description = &description
			}
			if len(perks) > 0 {
				sheet.Perks = perks
				sheet.Health, sheet.ArmorClass = character.BaseStats(tmpl, perks)
			}
			return character.EncodeSheet(cmd.OutOrStdout(), sheet)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "character name")
	cmd.Flags().StringVar(&description, "description", "", "character description")
	cmd.Flags().StringSliceVar(&perks, "perk", nil, "perk to hold; repeatable")
	return cmd
}
