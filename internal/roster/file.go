package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// rosterFile is the on-disk shape of a roster override
type rosterFile struct {
	Characters []Entry `yaml:"characters" toml:"characters"`
}

// LoadFile builds a registry from a YAML (.yaml, .yml) or TOML (.toml) roster file
func LoadFile(path string, site Site) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	entries, err := ParseEntries(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("roster file %s: %w", path, err)
	}
	return New(site, entries)
}

// ParseEntries decodes roster entries; format is a file extension
func ParseEntries(data []byte, format string) ([]Entry, error) {
	var parsed rosterFile

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported roster format %q", format)
	}

	if len(parsed.Characters) == 0 {
		return nil, fmt.Errorf("no characters defined")
	}
	return parsed.Characters, nil
}
