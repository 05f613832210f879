package types

import (
	"regexp"

	"github.com/GriffinCanCode/framedata/internal/notation"
)

// Missing marks a move field whose source cell was absent or out of range
const Missing = "-"

// Identity is a fixed roster member. Identities are equal when their IDs are.
type Identity struct {
	ID      uint8          `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Matcher *regexp.Regexp `json:"-" yaml:"-"`
	DataURL string         `json:"data_url" yaml:"data_url"`
}

// Equal compares identities by ID only
func (i Identity) Equal(other Identity) bool {
	return i.ID == other.ID
}

// MatchesName reports whether the name matcher accepts the whole query
func (i Identity) MatchesName(query string) bool {
	if i.Matcher == nil {
		return false
	}
	return i.Matcher.MatchString(query)
}

// String returns the display name
func (i Identity) String() string {
	return i.Name
}

// Move is the parsed frame data for a single move
type Move struct {
	Name           string            `json:"name" yaml:"name"`
	Input          string            `json:"input" yaml:"input"`
	InputMatcher   *notation.Matcher `json:"-" yaml:"-"`
	Startup        string            `json:"startup" yaml:"startup"`
	Active         string            `json:"active" yaml:"active"`
	Recovery       string            `json:"recovery" yaml:"recovery"`
	Cancel         string            `json:"cancel" yaml:"cancel"`
	Damage         string            `json:"damage" yaml:"damage"`
	Guard          string            `json:"guard" yaml:"guard"`
	Invuln         string            `json:"invuln" yaml:"invuln"`
	Armour         string            `json:"armour" yaml:"armour"`
	OnHit          string            `json:"on_hit" yaml:"on_hit"`
	OnBlock        string            `json:"on_block" yaml:"on_block"`
	HitboxImageURL string            `json:"hitbox_image_url" yaml:"hitbox_image_url"`
	Notes          string            `json:"notes" yaml:"notes"`
}

// MatchesInput reports whether query names this move's input
func (m *Move) MatchesInput(query string) bool {
	return m.InputMatcher.Match(query)
}

// Character is one identity and the moves loaded for it, in page order
type Character struct {
	Identity Identity `json:"identity" yaml:"identity"`
	Moves    []Move   `json:"moves" yaml:"moves"`
}
