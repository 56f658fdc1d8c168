package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultSheetConfig(t *testing.T) {
	cfg, err := DefaultSheetConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Name.MinLength)
	assert.Equal(t, 64, cfg.Name.MaxLength)
	assert.Equal(t, 2000, cfg.Description.MaxLength)

	again, err := DefaultSheetConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestParseSheetConfig(t *testing.T) {
	cfg, err := ParseSheetConfig(strings.NewReader(`
[name]
min_length = 1
max_length = 10

[description]
max_length = 50
`))
	require.NoError(t, err)
	assert.Equal(t, SheetConfig{
		Name:        NameConfig{MinLength: 1, MaxLength: 10},
		Description: DescriptionConfig{MaxLength: 50},
	}, cfg)
}

func TestParseSheetConfig_RejectsInvertedBounds(t *testing.T) {
	_, err := ParseSheetConfig(strings.NewReader(`
[name]
min_length = 10
max_length = 3
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name.max_length")
}

func TestParseSheetConfig_MissingSectionsKeepDefaults(t *testing.T) {
	def, err := DefaultSheetConfig()
	require.NoError(t, err)

	cfg, err := ParseSheetConfig(strings.NewReader("[description]\nmax_length = 80\n"))
	require.NoError(t, err)
	assert.Equal(t, def.Name, cfg.Name)
	assert.Equal(t, 80, cfg.Description.MaxLength)

	cfg, err = ParseSheetConfig(strings.NewReader("[name]\nmin_length = 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Name.MinLength)
	assert.Equal(t, def.Name.MaxLength, cfg.Name.MaxLength)
	assert.Equal(t, def.Description, cfg.Description)

	cfg, err = ParseSheetConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}

func TestLoadSheetConfig_MissingNameSectionKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CharacterSheet.toml")
	require.NoError(t, os.WriteFile(path, []byte("[description]\nmax_length = 10\n"), 0644))

	cfg, err := LoadSheetConfig(path)
	require.NoError(t, err)
	assert.Equal(t, NameConfig{MinLength: 2, MaxLength: 64}, cfg.Name)
	assert.Equal(t, 10, cfg.Description.MaxLength)
}

func TestSheetConfigValidate_RejectsZeroNameMax(t *testing.T) {
	err := SheetConfig{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name.max_length must be >= 1")

	_, err = ParseSheetConfig(strings.NewReader("[name]\nmin_length = 0\nmax_length = 0\n"))
	assert.Error(t, err)
}

func TestParseSheetConfig_RejectsMalformedTOML(t *testing.T) {
	_, err := ParseSheetConfig(strings.NewReader("[name\nmin_length = "))
	assert.Error(t, err)
}

func TestLoadSheetConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CharacterSheet.toml")
	require.NoError(t, os.WriteFile(path, []byte("[name]\nmin_length = 3\nmax_length = 12\n[description]\nmax_length = 0\n"), 0644))

	cfg, err := LoadSheetConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Name.MinLength)
	assert.Equal(t, 12, cfg.Name.MaxLength)
	assert.Equal(t, 0, cfg.Description.MaxLength)
}

func TestResolveSheetConfig(t *testing.T) {
	def, err := DefaultSheetConfig()
	require.NoError(t, err)

	got, err := ContentConfig{}.ResolveSheetConfig()
	require.NoError(t, err)
	assert.Equal(t, def, got)

	_, err = ContentConfig{SheetConfig: "/nonexistent/CharacterSheet.toml"}.ResolveSheetConfig()
	assert.Error(t, err)
}

func TestPropertySheetConfigBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minLen := rapid.IntRange(0, 100).Draw(t, "min")
		maxLen := rapid.IntRange(max(minLen, 1), 200).Draw(t, "max")
		cfg := SheetConfig{Name: NameConfig{MinLength: minLen, MaxLength: maxLen}}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid bounds [%d, %d] rejected: %v", minLen, maxLen, err)
		}
		cfg.Name.MaxLength = minLen - 1
		if cfg.Validate() == nil {
			t.Fatalf("bounds [%d, %d] accepted", minLen, minLen-1)
		}
	})
}
