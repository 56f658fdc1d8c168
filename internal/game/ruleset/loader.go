package ruleset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk template encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSON5 Format = "json5"
	FormatYAML  Format = "yaml"
)

// FormatFromPath picks a Format from the file extension.
//
// Postcondition: Returns the Format and true, or "" and false for an unknown extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".json5":
		return FormatJSON5, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// ParseTemplate decodes a template in the given format and validates it.
//
// JSON5 input is first normalised to plain JSON so that both share one decoder.
//
// Postcondition: Returns a valid Template or a non-nil error.
func ParseTemplate(data []byte, format Format) (*Template, error) {
	var t Template
	switch format {
	case FormatJSON:
		if err := decodeJSON(data, &t); err != nil {
			return nil, err
		}
	case FormatJSON5:
		plain, err := json5ToJSON(data)
		if err != nil {
			return nil, err
		}
		if err := decodeJSON(plain, &t); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("decoding yaml template: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported template format %q", format)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplate reads and parses a single template file.
//
// Precondition: path must have a .json, .json5, .yaml or .yml extension.
// Postcondition: Returns a valid Template or a non-nil error.
func LoadTemplate(path string) (*Template, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("unrecognised template extension for %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t, err := ParseTemplate(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing template file %s: %w", path, err)
	}
	return t, nil
}

// LoadTemplates parses every template file in dir, in lexical file order.
// Files with other extensions are ignored.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed templates (may be empty slice) or a non-nil error.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(e.Name()); ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	templates := make([]*Template, 0, len(paths))
	for _, path := range paths {
		t, err := LoadTemplate(path)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func decodeJSON(data []byte, t *Template) error {
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(t); err != nil {
		return fmt.Errorf("decoding json template: %w", err)
	}
	return nil
}

func json5ToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := json5.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding json5 template: %w", err)
	}
	plain, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encoding json5 template: %w", err)
	}
	return plain, nil
}
