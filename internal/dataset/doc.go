// Package dataset is the read-only query facade over a loaded roster.
//
// A Dataset is built once by the loader and never mutated, so it may be
// shared freely between goroutines. Lookups return (value, false) when a
// character or move is unknown; a character whose page failed to load is
// indistinguishable from an unknown one here, see loader.Report for that.
package dataset
