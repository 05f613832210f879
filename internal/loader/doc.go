/*
Package loader fetches every character's data page and assembles a dataset.

LoadCharacter turns one data page into a Character, skipping move blocks
that fail to parse. LoadRoster runs one LoadCharacter per roster identity
concurrently and gathers the survivors; a character whose page cannot be
fetched is reported in the Report and left out of the Dataset. There is no
retry at this level: the fetch client may retry individual requests, but a
failed character stays absent for the rest of the run.
*/
package loader
