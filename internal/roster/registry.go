package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/framedata/internal/shared/types"
)

const (
	// DefaultBaseURL is the wiki host the data pages live on
	DefaultBaseURL = "https://wiki.supercombo.gg"

	// DefaultGame is the game segment of data page paths
	DefaultGame = "Street_Fighter_6"
)

// Site describes where character data pages are published
type Site struct {
	BaseURL string
	Game    string
}

// DefaultSite returns the SuperCombo Street Fighter 6 site
func DefaultSite() Site {
	return Site{BaseURL: DefaultBaseURL, Game: DefaultGame}
}

// DataURL derives the data page URL for a display name
func (s Site) DataURL(name string) string {
	return fmt.Sprintf("%s/w/%s/%s/Data",
		strings.TrimRight(s.BaseURL, "/"),
		s.Game,
		strings.ReplaceAll(name, " ", "_"))
}

// Entry is one hand-curated roster line
type Entry struct {
	ID      uint8  `yaml:"id" toml:"id"`
	Name    string `yaml:"name" toml:"name"`
	Pattern string `yaml:"pattern" toml:"pattern"`
}

// Registry is the ordered, immutable set of known identities
type Registry struct {
	site       Site
	identities []types.Identity
}

// New builds a registry from entries in order
func New(site Site, entries []Entry) (*Registry, error) {
	seen := make(map[uint8]string, len(entries))
	identities := make([]types.Identity, 0, len(entries))

	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("roster entry %d: name required", e.ID)
		}
		if prev, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("roster entry %q: id %d already used by %q", e.Name, e.ID, prev)
		}
		seen[e.ID] = e.Name

		ident, err := newIdentity(site, e)
		if err != nil {
			return nil, err
		}
		identities = append(identities, ident)
	}

	return &Registry{site: site, identities: identities}, nil
}

// MustNew is like New but panics on error
func MustNew(site Site, entries []Entry) *Registry {
	reg, err := New(site, entries)
	if err != nil {
		panic(err)
	}
	return reg
}

// Default returns the built-in roster on the default site
func Default() *Registry {
	return MustNew(DefaultSite(), DefaultEntries())
}

func newIdentity(site Site, e Entry) (types.Identity, error) {
	pattern := e.Pattern
	if pattern == "" {
		pattern = regexp.QuoteMeta(e.Name)
	}

	matcher, err := regexp.Compile(`(?i)^(` + pattern + `)$`)
	if err != nil {
		return types.Identity{}, fmt.Errorf("roster entry %q: compile name pattern: %w", e.Name, err)
	}

	ident := types.Identity{
		ID:      e.ID,
		Name:    e.Name,
		Matcher: matcher,
		DataURL: site.DataURL(e.Name),
	}
	if !ident.MatchesName(e.Name) {
		return types.Identity{}, fmt.Errorf("roster entry %q: pattern %q does not accept its own name", e.Name, pattern)
	}
	return ident, nil
}

// Site returns the site data URLs are derived from
func (r *Registry) Site() Site {
	return r.site
}

// Len returns the number of identities
func (r *Registry) Len() int {
	return len(r.identities)
}

// Identities returns a copy of the identities in registry order
func (r *Registry) Identities() []types.Identity {
	out := make([]types.Identity, len(r.identities))
	copy(out, r.identities)
	return out
}

// FindByName returns the first identity whose matcher accepts the whole query
func (r *Registry) FindByName(query string) (types.Identity, bool) {
	for _, ident := range r.identities {
		if ident.MatchesName(query) {
			return ident, true
		}
	}
	return types.Identity{}, false
}

// ByID returns the identity with the given id
func (r *Registry) ByID(id uint8) (types.Identity, bool) {
	for _, ident := range r.identities {
		if ident.ID == id {
			return ident, true
		}
	}
	return types.Identity{}, false
}
