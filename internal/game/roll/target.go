// Package roll resolves d20 rolls for a character's attributes and skills.
package roll

import (
	"errors"
	"fmt"
	"strings"
)

// TargetKind distinguishes attribute rolls from skill rolls.
type TargetKind int

const (
	TargetAttribute TargetKind = iota
	TargetSkill
)

// String returns "attribute" or "skill".
func (k TargetKind) String() string {
	switch k {
	case TargetAttribute:
		return "attribute"
	case TargetSkill:
		return "skill"
	}
	return fmt.Sprintf("TargetKind(%d)", int(k))
}

// Target names the attribute or skill being rolled.
type Target struct {
	Kind TargetKind
	Name string
}

// Attribute returns a Target for the named attribute.
func Attribute(name string) Target {
	return Target{Kind: TargetAttribute, Name: name}
}

// Skill returns a Target for the named skill.
func Skill(name string) Target {
	return Target{Kind: TargetSkill, Name: name}
}

// String returns the target name.
func (t Target) String() string {
	return t.Name
}

// ParseTarget parses "attribute:<name>" or "skill:<name>". The kind prefix is
// case-insensitive; the name is kept as written.
//
// Postcondition: Returns a Target with a non-empty Name, or a non-nil error.
func ParseTarget(s string) (Target, error) {
	kind, name, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return Target{}, fmt.Errorf("roll target %q: want attribute:<name> or skill:<name>", s)
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "attribute":
		return Attribute(name), nil
	case "skill":
		return Skill(name), nil
	}
	return Target{}, fmt.Errorf("roll target %q: unknown kind %q", s, kind)
}

var (
	// ErrInvalidAttribute matches any TargetError for a missing attribute.
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrInvalidSkill matches any TargetError for a missing skill.
	ErrInvalidSkill = errors.New("invalid skill")
)

// TargetError reports a roll target that does not exist on the sheet.
type TargetError struct {
	Kind TargetKind
	Name string
}

func (e *TargetError) Error() string {
	if e.Kind == TargetSkill {
		return fmt.Sprintf("InvalidSkill(%s)", e.Name)
	}
	return fmt.Sprintf("InvalidAttribute(%s)", e.Name)
}

// Is matches the sentinel for the error's kind, or another TargetError with
// the same kind and name.
func (e *TargetError) Is(target error) bool {
	switch target {
	case ErrInvalidAttribute:
		return e.Kind == TargetAttribute
	case ErrInvalidSkill:
		return e.Kind == TargetSkill
	}
	var t *TargetError
	if errors.As(target, &t) {
		return *e == *t
	}
	return false
}

// InvalidAttribute returns the error for a missing attribute.
func InvalidAttribute(name string) *TargetError {
	return &TargetError{Kind: TargetAttribute, Name: name}
}

// InvalidSkill returns the error for a missing skill.
func InvalidSkill(name string) *TargetError {
	return &TargetError{Kind: TargetSkill, Name: name}
}
