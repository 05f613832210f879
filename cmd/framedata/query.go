package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/framedata/internal/dataset"
	"github.com/GriffinCanCode/framedata/internal/loader"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
)

var (
	errUnknownCharacter = errors.New("no character matches")
	errCharacterFailed  = errors.New("character failed to load")
	errUnknownMove      = errors.New("no move matches")
)

// query is what the flags ask for
type query struct {
	Character string
	Input     string
	Stats     bool
}

// rosterLine is one row of the roster summary
type rosterLine struct {
	ID    uint8  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Moves int    `json:"moves" yaml:"moves"`
}

type statsResult struct {
	Character string             `json:"character" yaml:"character"`
	Startup   dataset.FrameStats `json:"startup" yaml:"startup"`
}

// newQuery builds a query from raw flag values. Matchers accept only the whole
// string, so stray shell whitespace is trimmed here.
func newQuery(character, input string, stats bool) query {
	return query{
		Character: strings.TrimSpace(character),
		Input:     strings.TrimSpace(input),
		Stats:     stats,
	}
}

func (q query) validate() error {
	if q.Character == "" && (q.Input != "" || q.Stats) {
		return errors.New("-input and -stats require -character")
	}
	if q.Input != "" && q.Stats {
		return errors.New("-input and -stats are mutually exclusive")
	}
	return nil
}

// run answers the query against a finished load
func (q query) run(report *loader.Report) (any, error) {
	ds := report.Dataset
	if q.Character == "" {
		lines := make([]rosterLine, 0, ds.Len())
		for _, c := range ds.Characters() {
			lines = append(lines, rosterLine{ID: c.Identity.ID, Name: c.Identity.Name, Moves: len(c.Moves)})
		}
		return lines, nil
	}

	char, ok := ds.CharacterByName(q.Character)
	if !ok {
		for _, f := range report.Failed {
			if f.Identity.MatchesName(q.Character) {
				return nil, fmt.Errorf("%w: %s: %v", errCharacterFailed, f.Identity.Name, f.Err)
			}
		}
		return nil, fmt.Errorf("%w %q", errUnknownCharacter, q.Character)
	}

	switch {
	case q.Stats:
		stats, _ := ds.Stats(char.Identity.ID)
		return statsResult{Character: char.Identity.Name, Startup: stats}, nil
	case q.Input != "":
		move, ok := ds.MoveByInput(char.Identity.ID, q.Input)
		if !ok {
			return nil, fmt.Errorf("%w %q for %s", errUnknownMove, q.Input, char.Identity.Name)
		}
		return move, nil
	default:
		return char, nil
	}
}

// render encodes v as indented JSON or YAML
func render(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		out, err := sonic.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(out, '\n'), nil
	case "yaml", "yml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
