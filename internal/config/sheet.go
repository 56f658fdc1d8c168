package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

//go:embed CharacterSheet.toml
var defaultSheetTOML []byte

// NameConfig bounds the length of a character name, in characters.
type NameConfig struct {
	MinLength int `mapstructure:"min_length"`
	MaxLength int `mapstructure:"max_length"`
}

// DescriptionConfig bounds the length of a character description, in characters.
type DescriptionConfig struct {
	MaxLength int `mapstructure:"max_length"`
}

// SheetConfig holds the sheet-level rules that apply regardless of template.
type SheetConfig struct {
	Name        NameConfig        `mapstructure:"name"`
	Description DescriptionConfig `mapstructure:"description"`
}

// Validate checks the sheet config invariants.
//
// Postcondition: Returns nil if valid, or an error describing all violations.
func (c SheetConfig) Validate() error {
	var errs []string
	if c.Name.MinLength < 0 {
		errs = append(errs, fmt.Sprintf("name.min_length must be >= 0, got %d", c.Name.MinLength))
	}
	if c.Name.MaxLength < 1 {
		errs = append(errs, fmt.Sprintf("name.max_length must be >= 1, got %d", c.Name.MaxLength))
	} else if c.Name.MaxLength < c.Name.MinLength {
		errs = append(errs, fmt.Sprintf("name.max_length (%d) must be >= name.min_length (%d)", c.Name.MaxLength, c.Name.MinLength))
	}
	if c.Description.MaxLength < 0 {
		errs = append(errs, fmt.Sprintf("description.max_length must be >= 0, got %d", c.Description.MaxLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("sheet configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParseSheetConfig reads a TOML sheet config from r over the built-in
// defaults and validates it. Keys missing from r keep their default values.
//
// Postcondition: Returns a valid SheetConfig or a non-nil error.
func ParseSheetConfig(r io.Reader) (SheetConfig, error) {
	v, err := newSheetViper()
	if err != nil {
		return SheetConfig{}, err
	}
	if err := v.MergeConfig(r); err != nil {
		return SheetConfig{}, fmt.Errorf("reading sheet config: %w", err)
	}
	return sheetConfigFromViper(v)
}

// LoadSheetConfig reads a TOML sheet config file over the built-in defaults
// and validates it. Keys missing from the file keep their default values.
//
// Precondition: path must name a readable .toml file.
// Postcondition: Returns a valid SheetConfig or a non-nil error.
func LoadSheetConfig(path string) (SheetConfig, error) {
	v, err := newSheetViper()
	if err != nil {
		return SheetConfig{}, err
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return SheetConfig{}, fmt.Errorf("reading sheet config file: %w", err)
	}
	return sheetConfigFromViper(v)
}

// newSheetViper returns a TOML viper instance preloaded with the embedded defaults.
func newSheetViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(defaultSheetTOML)); err != nil {
		return nil, fmt.Errorf("reading built-in sheet config: %w", err)
	}
	return v, nil
}

func sheetConfigFromViper(v *viper.Viper) (SheetConfig, error) {
	var cfg SheetConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SheetConfig{}, fmt.Errorf("unmarshalling sheet config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SheetConfig{}, err
	}
	return cfg, nil
}

var defaultSheetConfig = sync.OnceValues(func() (SheetConfig, error) {
	v, err := newSheetViper()
	if err != nil {
		return SheetConfig{}, err
	}
	return sheetConfigFromViper(v)
})

// DefaultSheetConfig returns the built-in sheet config. It is parsed once,
// on first use, and the same value is returned for the life of the process.
func DefaultSheetConfig() (SheetConfig, error) {
	return defaultSheetConfig()
}

// ResolveSheetConfig returns the sheet config named by c.SheetConfig, or the
// built-in default when that path is empty.
func (c ContentConfig) ResolveSheetConfig() (SheetConfig, error) {
	if c.SheetConfig == "" {
		return DefaultSheetConfig()
	}
	return LoadSheetConfig(c.SheetConfig)
}
