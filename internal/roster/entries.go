package roster

// DefaultEntries returns the Street Fighter 6 roster. Order matters: when two
// patterns accept the same query the earlier entry wins.
func DefaultEntries() []Entry {
	return []Entry{
		{ID: 0, Name: "Blanka", Pattern: `blanka`},
		{ID: 1, Name: "Cammy", Pattern: `camm?y`},
		{ID: 2, Name: "Chun-Li", Pattern: `chun([-\s]?li)?`},
		{ID: 3, Name: "Dee Jay", Pattern: `d(ee?)?[-\s]?j(ay)?`},
		{ID: 4, Name: "Dhalsim", Pattern: `(dhal)?sim`},
		{ID: 5, Name: "Honda", Pattern: `(e\.?\s?)?honda`},
		{ID: 6, Name: "Guile", Pattern: `guile`},
		{ID: 7, Name: "Jamie", Pattern: `jamie`},
		{ID: 8, Name: "JP", Pattern: `jp`},
		{ID: 9, Name: "Juri", Pattern: `juri`},
		{ID: 10, Name: "Ken", Pattern: `ken`},
		{ID: 11, Name: "Kimberly", Pattern: `kim(berly)?`},
		{ID: 12, Name: "Lily", Pattern: `lily`},
		{ID: 13, Name: "Luke", Pattern: `luke`},
		{ID: 14, Name: "Manon", Pattern: `manon`},
		{ID: 15, Name: "Marisa", Pattern: `marisa`},
		{ID: 16, Name: "Ryu", Pattern: `ryu`},
		{ID: 17, Name: "Zangief", Pattern: `(zan)?gief`},
		{ID: 18, Name: "Rashid", Pattern: `rashid`},
		{ID: 19, Name: "A.K.I.", Pattern: `a\.?k\.?i\.?`},
		{ID: 20, Name: "Ed", Pattern: `ed`},
	}
}
