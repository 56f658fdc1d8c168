package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsheet/internal/config"
	"github.com/cory-johannsen/charsheet/internal/game/dice"
	"github.com/cory-johannsen/charsheet/internal/game/roll"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
	"github.com/cory-johannsen/charsheet/internal/game/validation"
	"github.com/cory-johannsen/charsheet/internal/observability"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath   string
	templatesDir string
	sheetConfig  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "charsheet",
		Short:         "Character sheet validation and roll resolution",
		Long:          `charsheet checks player character sheets against their templates and resolves d20 rolls against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML configuration file; empty uses defaults and CHARSHEET_* environment variables")
	cmd.PersistentFlags().StringVar(&opts.templatesDir, "templates", "", "template directory, overriding content.templates_dir")
	cmd.PersistentFlags().StringVar(&opts.sheetConfig, "sheet-config", "", "sheet TOML config, overriding content.sheet_config")

	cmd.AddCommand(
		newCheckCmd(opts),
		newRollCmd(opts),
		newBaseCmd(opts),
		newTemplatesCmd(opts),
		newScriptCmd(opts),
	)
	return cmd
}

// app is the wiring every subcommand runs against.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	registry  *ruleset.Registry
	validator *validation.Validator
	roller    *dice.Roller
	resolver  *roll.Resolver
}

// newApp loads configuration, builds the logger and loads every template.
//
// Postcondition: Returns a fully wired app or a non-nil error. The caller must
// call app.close when done.
func newApp(opts *rootOptions) (*app, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(opts.configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.templatesDir != "" {
		cfg.Content.TemplatesDir = opts.templatesDir
	}
	if opts.sheetConfig != "" {
		cfg.Content.SheetConfig = opts.sheetConfig
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	sheetCfg, err := cfg.Content.ResolveSheetConfig()
	if err != nil {
		return nil, fmt.Errorf("loading sheet config: %w", err)
	}

	registry, err := ruleset.NewRegistryFromDir(cfg.Content.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	src, err := dice.SourceByName(cfg.Dice.Source)
	if err != nil {
		return nil, err
	}
	roller := dice.NewLoggedRoller(src, logger)

	logger.Debug("charsheet ready",
		zap.String("templates_dir", cfg.Content.TemplatesDir),
		zap.Strings("templates", registry.Names()),
		zap.String("dice_source", cfg.Dice.Source),
	)

	return &app{
		cfg:       cfg,
		logger:    logger,
		registry:  registry,
		validator: validation.NewValidator(sheetCfg, logger),
		roller:    roller,
		resolver:  roll.NewResolver(roller, logger),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
