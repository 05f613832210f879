// Package notation builds permissive matchers for move inputs as written on
// the wiki.
//
// Wiki notation is loose: "j.HK" and "jHK" name the same move, spacing varies
// between pages, and chains are written with a tilde ("2MK~HP"). A Matcher
// compiled from the scraped text accepts those variants case-insensitively
// while still anchoring on the whole input.
//
// Example Usage:
//
//	m, err := notation.Compile("j.HK")
//	m.Match("jhk")  // true
//	m.Match("j.HK") // true
package notation
