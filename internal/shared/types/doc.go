// Package types provides shared data structures for the frame data loader.
//
// This package defines the domain types passed between the roster, scraper,
// loader and dataset packages.
//
// Core Types:
//   - Identity: A known roster member (id, display name, name matcher, data page)
//   - Move: Frame data and metadata parsed from one wiki table block
//   - Character: An identity plus the moves parsed from its data page
//
// Absent move fields hold the Missing sentinel rather than an empty string.
//
// Example Usage:
//
//	ryu, ok := registry.FindByName("ryu")
//	if ok && ryu.Equal(character.Identity) {
//	    fmt.Println(character.Moves[0].Startup)
//	}
package types
