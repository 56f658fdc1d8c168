package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/charsheet/internal/scripting"
)

// scriptKey names the VM a script directory is loaded under.
const scriptKey = "cli"

func newScriptCmd(opts *rootOptions) *cobra.Command {
	var hook string
	cmd := &cobra.Command{
		Use:   "script <file.lua|dir>",
		Short: "Run a Lua script with the sheet module loaded",
		Long: `Run a Lua script in a sandboxed VM. The script can call
sheet.check, sheet.roll, sheet.base and sheet.templates against the loaded
templates, and engine.log and engine.dice.

Given a directory, every .lua file in it is loaded in name order and the
global function named by --hook is called; its return value is printed as
JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if !info.IsDir() && cmd.Flags().Changed("hook") {
				return fmt.Errorf("--hook needs a script directory, got file %s", args[0])
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			mgr := scripting.NewManager(a.registry, a.validator, a.resolver, a.roller, a.logger)
			defer mgr.Close()
			limit := a.cfg.Scripting.InstructionLimit

			if !info.IsDir() {
				return mgr.Run(args[0], limit)
			}
			if err := mgr.Load(scriptKey, args[0], limit); err != nil {
				return err
			}
			ret, err := mgr.CallHook(scriptKey, hook)
			if err != nil {
				return err
			}
			out, err := scripting.MarshalValue(ret)
			if err != nil {
				return fmt.Errorf("hook %s: %w", hook, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&hook, "hook", "main", "global function to call after loading a script directory")
	return cmd
}
