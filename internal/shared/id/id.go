// Package id generates identifiers for roster loads.
//
// Every roster load gets a prefixed ULID ("load_01J...") that is attached to
// its log lines and to the resulting dataset. ULIDs sort by creation time, so
// two datasets can be ordered without carrying a separate timestamp.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// LoadID identifies one roster load
type LoadID string

// LoadPrefix is prepended to every LoadID
const LoadPrefix = "load"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
	now       func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader, now: time.Now}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source,
// useful for deterministic tests
func NewGeneratorWithEntropy(entropy io.Reader, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{entropy: entropy, now: now}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewLoadID generates a new roster load ID
func NewLoadID() LoadID {
	return LoadID(Default().GenerateWithPrefix(LoadPrefix))
}

func (id LoadID) String() string { return string(id) }

// Time returns the creation time encoded in the ID
func (id LoadID) Time() (time.Time, error) {
	raw, ok := strings.CutPrefix(string(id), LoadPrefix+"_")
	if !ok {
		return time.Time{}, fmt.Errorf("load id %q: missing %q prefix", id, LoadPrefix)
	}
	parsed, err := ulid.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("load id %q: %w", id, err)
	}
	return ulid.Time(parsed.Time()), nil
}
