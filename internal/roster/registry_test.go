package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoster(t *testing.T) {
	reg := Default()
	require.Equal(t, 21, reg.Len())

	for i, ident := range reg.Identities() {
		assert.Equal(t, uint8(i), ident.ID, "ids are dense and in order")
	}
}

func TestFindByNameAcceptsDisplayNames(t *testing.T) {
	reg := Default()

	for _, ident := range reg.Identities() {
		variants := []string{
			ident.Name,
			strings.ToUpper(ident.Name),
			strings.ToLower(ident.Name),
		}
		for _, v := range variants {
			found, ok := reg.FindByName(v)
			require.True(t, ok, "no identity for %q", v)
			assert.Equal(t, ident.ID, found.ID, "query %q", v)
		}
	}
}

func TestFindByNameVariants(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"CHUN-LI", "Chun-Li"},
		{"chun li", "Chun-Li"},
		{"chunli", "Chun-Li"},
		{"chun", "Chun-Li"},
		{"dj", "Dee Jay"},
		{"dee jay", "Dee Jay"},
		{"sim", "Dhalsim"},
		{"e honda", "Honda"},
		{"kim", "Kimberly"},
		{"gief", "Zangief"},
		{"aki", "A.K.I."},
		{"cammy", "Cammy"},
		{"camy", "Cammy"},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			found, ok := reg.FindByName(tt.query)
			require.True(t, ok)
			assert.Equal(t, tt.want, found.Name)
		})
	}
}

func TestFindByNameRejectsPartialMatches(t *testing.T) {
	reg := Default()

	for _, q := range []string{"", " ryu ", "ryuu", "kenny", "blank", "street fighter", "akuma"} {
		_, ok := reg.FindByName(q)
		assert.False(t, ok, "query %q", q)
	}
}

func TestDataURL(t *testing.T) {
	site := DefaultSite()

	assert.Equal(t, "https://wiki.supercombo.gg/w/Street_Fighter_6/Dee_Jay/Data", site.DataURL("Dee Jay"))
	assert.Equal(t, "https://wiki.supercombo.gg/w/Street_Fighter_6/A.K.I./Data", site.DataURL("A.K.I."))
	assert.Equal(t, site.DataURL("Chun-Li"), site.DataURL("Chun-Li"), "derivation is deterministic")

	custom := Site{BaseURL: "http://localhost:8080/", Game: "SF6"}
	assert.Equal(t, "http://localhost:8080/w/SF6/Ryu/Data", custom.DataURL("Ryu"))

	reg := Default()
	for _, ident := range reg.Identities() {
		assert.Equal(t, site.DataURL(ident.Name), ident.DataURL)
		assert.NotContains(t, ident.DataURL, " ")
	}
}

func TestNewRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		errMsg  string
	}{
		{
			name:    "invalid pattern",
			entries: []Entry{{ID: 0, Name: "Ryu", Pattern: `ryu(`}},
			errMsg:  "compile name pattern",
		},
		{
			name:    "pattern rejects own name",
			entries: []Entry{{ID: 0, Name: "Zangief", Pattern: `gief`}},
			errMsg:  "does not accept its own name",
		},
		{
			name: "duplicate id",
			entries: []Entry{
				{ID: 1, Name: "Ryu"},
				{ID: 1, Name: "Ken"},
			},
			errMsg: "already used",
		},
		{
			name:    "missing name",
			entries: []Entry{{ID: 0}},
			errMsg:  "name required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(DefaultSite(), tt.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.Panics(t, func() {
		MustNew(DefaultSite(), []Entry{{ID: 0, Name: "Ryu", Pattern: `[`}})
	})
}

func TestEmptyPatternMatchesLiteralName(t *testing.T) {
	reg, err := New(DefaultSite(), []Entry{{ID: 7, Name: "M. Bison"}})
	require.NoError(t, err)

	found, ok := reg.FindByName("m. bison")
	require.True(t, ok)
	assert.Equal(t, uint8(7), found.ID)

	_, ok = reg.FindByName("mxbison")
	assert.False(t, ok)
}

func TestByID(t *testing.T) {
	reg := Default()

	ident, ok := reg.ByID(16)
	require.True(t, ok)
	assert.Equal(t, "Ryu", ident.Name)

	_, ok = reg.ByID(200)
	assert.False(t, ok)
}

func TestIdentitiesReturnsCopy(t *testing.T) {
	reg := Default()
	ids := reg.Identities()
	ids[0].Name = "changed"

	assert.Equal(t, "Blanka", reg.Identities()[0].Name)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "roster.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
characters:
  - id: 0
    name: Ryu
    pattern: ryu
  - id: 1
    name: Chun-Li
    pattern: 'chun([-\s]?li)?'
`), 0o644))

	tomlPath := filepath.Join(dir, "roster.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[[characters]]
id = 0
name = "Ken"
pattern = "ken"
`), 0o644))

	site := Site{BaseURL: "http://wiki.test", Game: "SF6"}

	reg, err := LoadFile(yamlPath, site)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	found, ok := reg.FindByName("chun li")
	require.True(t, ok)
	assert.Equal(t, "http://wiki.test/w/SF6/Chun-Li/Data", found.DataURL)

	reg, err = LoadFile(tomlPath, site)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, site, reg.Site())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"), site)
	assert.Error(t, err)
}

func TestParseEntriesErrors(t *testing.T) {
	_, err := ParseEntries([]byte("characters: []"), ".yaml")
	assert.ErrorContains(t, err, "no characters")

	_, err = ParseEntries([]byte("{}"), ".json")
	assert.ErrorContains(t, err, "unsupported roster format")

	_, err = ParseEntries([]byte("characters = ["), "toml")
	assert.ErrorContains(t, err, "invalid TOML")
}
