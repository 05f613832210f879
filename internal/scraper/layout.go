package scraper

import (
	"sort"

	"github.com/GriffinCanCode/framedata/internal/shared/types"
)

// Field is a positional column in a move's data rows
type Field int

const (
	FieldDamage Field = iota
	FieldGuard
	FieldCancel
	FieldStartup
	FieldActive
	FieldRecovery
	FieldInvuln
	FieldArmour
	FieldOnHit
	FieldOnBlock
	FieldNotes
)

var fieldNames = map[Field]string{
	FieldDamage:   "damage",
	FieldGuard:    "guard",
	FieldCancel:   "cancel",
	FieldStartup:  "startup",
	FieldActive:   "active",
	FieldRecovery: "recovery",
	FieldInvuln:   "invuln",
	FieldArmour:   "armour",
	FieldOnHit:    "on_hit",
	FieldOnBlock:  "on_block",
	FieldNotes:    "notes",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// assign copies a value into the matching Move field
func (f Field) assign(m *types.Move, value string) {
	switch f {
	case FieldDamage:
		m.Damage = value
	case FieldGuard:
		m.Guard = value
	case FieldCancel:
		m.Cancel = value
	case FieldStartup:
		m.Startup = value
	case FieldActive:
		m.Active = value
	case FieldRecovery:
		m.Recovery = value
	case FieldInvuln:
		m.Invuln = value
	case FieldArmour:
		m.Armour = value
	case FieldOnHit:
		m.OnHit = value
	case FieldOnBlock:
		m.OnBlock = value
	case FieldNotes:
		m.Notes = value
	}
}

// Layout maps each field to its zero-based index in the flattened data cells.
// A template change on the wiki means editing this table only.
type Layout map[Field]int

// DefaultLayout is the SuperCombo SF6 frame data template. Columns not listed
// (hitstun, hitstop, juggle and so on) are ignored.
func DefaultLayout() Layout {
	return Layout{
		FieldDamage:   0,
		FieldGuard:    3,
		FieldCancel:   4,
		FieldStartup:  6,
		FieldActive:   7,
		FieldRecovery: 8,
		FieldInvuln:   18,
		FieldArmour:   19,
		FieldOnHit:    30,
		FieldOnBlock:  31,
		FieldNotes:    32,
	}
}

// Width is the number of cells a complete row provides
func (l Layout) Width() int {
	width := 0
	for _, idx := range l {
		if idx+1 > width {
			width = idx + 1
		}
	}
	return width
}

// Apply fills m from cells. Fields whose column is out of range get
// types.Missing; the number of such fields is returned.
func (l Layout) Apply(m *types.Move, cells []string) int {
	missing := 0
	for _, field := range l.fields() {
		idx := l[field]
		if idx < 0 || idx >= len(cells) {
			field.assign(m, types.Missing)
			missing++
			continue
		}
		field.assign(m, cells[idx])
	}
	return missing
}

// fields returns the layout's fields in a stable order
func (l Layout) fields() []Field {
	out := make([]Field, 0, len(l))
	for f := range l {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
