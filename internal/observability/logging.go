// Package observability provides structured logging for the character sheet
// tools and the field constructors that identify sheets and templates in logs.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/charsheet/internal/config"
	"github.com/cory-johannsen/charsheet/internal/game/character"
	"github.com/cory-johannsen/charsheet/internal/game/ruleset"
)

// NewLogger creates a structured logger from the given logging configuration.
// Logs are written to stderr so that command output on stdout stays machine readable.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	// Every rejected sheet and every roll is logged; sampling would drop them.
	zapCfg.Sampling = nil

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named("charsheet"), nil
}

// sheetObject logs a character sheet as its name and the template it references.
type sheetObject struct {
	sheet *character.Sheet
}

func (o sheetObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", o.sheet.Name)
	enc.AddString("template", o.sheet.Template.Name)
	enc.AddString("version", o.sheet.Template.Version.String())
	return nil
}

// Sheet returns a "sheet" field identifying s. A nil sheet logs as a skipped field.
func Sheet(s *character.Sheet) zap.Field {
	if s == nil {
		return zap.Skip()
	}
	return zap.Object("sheet", sheetObject{sheet: s})
}

// Template returns a "template" field rendered as name@version.
func Template(t *ruleset.Template) zap.Field {
	if t == nil {
		return zap.Skip()
	}
	return zap.String("template", t.Name+"@"+t.Version.String())
}
