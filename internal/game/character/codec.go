package character

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// DecodeSheet reads a JSON-encoded sheet from r.
//
// Postcondition: Returns the decoded Sheet or a non-nil error.
func DecodeSheet(r io.Reader) (*Sheet, error) {
	var s Sheet
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding sheet: %w", err)
	}
	return &s, nil
}

// LoadSheet reads a JSON-encoded sheet from the file at path.
//
// Postcondition: Returns the decoded Sheet or a non-nil error.
func LoadSheet(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	s, err := DecodeSheet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// EncodeSheet writes s to w as indented JSON.
//
// Precondition: s must be non-nil.
func EncodeSheet(w io.Writer, s *Sheet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding sheet: %w", err)
	}
	return nil
}
