package ruleset

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Version is a template version: exactly three components, each 0-255.
type Version [3]uint8

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// ParseVersion parses "major.minor.patch".
//
// Postcondition: Returns the Version or an error naming the bad component.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("version %q must have 3 components", s)
	}
	var v Version
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return Version{}, fmt.Errorf("version %q component %d: %w", s, i, err)
		}
		v[i] = uint8(n)
	}
	return v, nil
}

// MarshalJSON encodes the version as a 3-element number array.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int{int(v[0]), int(v[1]), int(v[2])})
}

// UnmarshalJSON decodes a 3-element number array, rejecting any other length.
func (v *Version) UnmarshalJSON(data []byte) error {
	var parts []int
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("decoding version: %w", err)
	}
	return v.set(parts)
}

// UnmarshalYAML decodes a 3-element sequence, rejecting any other length.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var parts []int
	if err := node.Decode(&parts); err != nil {
		return fmt.Errorf("decoding version: %w", err)
	}
	return v.set(parts)
}

func (v *Version) set(parts []int) error {
	if len(parts) != 3 {
		return fmt.Errorf("version must have 3 components, got %d", len(parts))
	}
	for i, p := range parts {
		if p < 0 || p > 255 {
			return fmt.Errorf("version component %d out of range: %d", i, p)
		}
		v[i] = uint8(p)
	}
	return nil
}
