package render

import (
	"errors"
	"fmt"
	"strings"
)

// Profile names.
const (
	ProfileColor     = "color"
	ProfileGrayscale = "grayscale"
)

// ErrUnknownProfile indicates a profile name that is not defined.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is a presentation variant of the manual.
type Profile struct {
	Name       string // Also the stylesheet name in internal/assets
	CodeStyle  string // chroma style for code blocks
	TitleLabel string // Appended to page titles
}

var profiles = map[string]Profile{
	ProfileColor:     {Name: ProfileColor, CodeStyle: "monokai", TitleLabel: "color"},
	ProfileGrayscale: {Name: ProfileGrayscale, CodeStyle: "bw", TitleLabel: "grayscale"},
}

// LookupProfile returns the named profile. An empty name selects color.
func LookupProfile(name string) (Profile, error) {
	if name == "" {
		name = ProfileColor
	}
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownProfile, name, strings.Join(ProfileNames(), ", "))
	}
	return p, nil
}

// ProfileNames returns the defined profile names.
func ProfileNames() []string {
	return []string{ProfileColor, ProfileGrayscale}
}
