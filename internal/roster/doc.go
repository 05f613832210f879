// Package roster provides the identity registry for the supported characters.
//
// The registry is an explicit value built once at startup and passed to the
// loader and query layers. Each identity carries a numeric id, a display name,
// an anchored case-insensitive name matcher, and the URL of its wiki data page
// derived from the display name.
//
// A pattern that fails to compile, or that does not accept its own display
// name, is a programming error: New reports it and MustNew panics.
//
// Example Usage:
//
//	reg := roster.Default()
//	ident, ok := reg.FindByName("chun li")
package roster
