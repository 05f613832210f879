package dataset

import (
	"github.com/GriffinCanCode/framedata/internal/shared/id"
	"github.com/GriffinCanCode/framedata/internal/shared/types"
)

// Dataset maps identities to their loaded characters
type Dataset struct {
	loadID     id.LoadID
	characters []types.Character
	byID       map[uint8]int
}

// New builds a dataset from loaded characters, keeping their order. Pass them
// in registry order so name lookups resolve overlapping matchers the same way
// the registry does. When two characters share an identity the first one wins.
func New(loadID id.LoadID, chars []types.Character) *Dataset {
	d := &Dataset{
		loadID:     loadID,
		characters: make([]types.Character, 0, len(chars)),
		byID:       make(map[uint8]int, len(chars)),
	}

	seen := make(map[uint8]bool, len(chars))
	for _, c := range chars {
		if seen[c.Identity.ID] {
			continue
		}
		seen[c.Identity.ID] = true
		d.characters = append(d.characters, c)
	}

	for i, c := range d.characters {
		d.byID[c.Identity.ID] = i
	}
	return d
}

// LoadID identifies the roster load that produced this dataset
func (d *Dataset) LoadID() id.LoadID {
	return d.loadID
}

// Len returns the number of loaded characters
func (d *Dataset) Len() int {
	return len(d.characters)
}

// Characters returns every loaded character in load order
func (d *Dataset) Characters() []types.Character {
	out := make([]types.Character, len(d.characters))
	copy(out, d.characters)
	return out
}

// Character returns the character loaded for an identity ID
func (d *Dataset) Character(id uint8) (types.Character, bool) {
	idx, ok := d.byID[id]
	if !ok {
		return types.Character{}, false
	}
	return d.characters[idx], true
}

// CharacterByName returns the first loaded character, in load order,
// whose name matcher accepts query
func (d *Dataset) CharacterByName(query string) (types.Character, bool) {
	for _, c := range d.characters {
		if c.Identity.MatchesName(query) {
			return c, true
		}
	}
	return types.Character{}, false
}

// Moves returns a character's moves in page order
func (d *Dataset) Moves(id uint8) ([]types.Move, bool) {
	c, ok := d.Character(id)
	if !ok {
		return nil, false
	}
	return c.Moves, true
}

// MoveByInput returns the first move, in page order, whose input matcher
// accepts query
func (d *Dataset) MoveByInput(id uint8, query string) (types.Move, bool) {
	c, ok := d.Character(id)
	if !ok {
		return types.Move{}, false
	}
	return findMove(c.Moves, query)
}

// MoveByCharacterAndInput resolves a character by name, then a move by input
func (d *Dataset) MoveByCharacterAndInput(nameQuery, inputQuery string) (types.Move, bool) {
	c, ok := d.CharacterByName(nameQuery)
	if !ok {
		return types.Move{}, false
	}
	return findMove(c.Moves, inputQuery)
}

func findMove(moves []types.Move, query string) (types.Move, bool) {
	for i := range moves {
		if moves[i].MatchesInput(query) {
			return moves[i], true
		}
	}
	return types.Move{}, false
}
