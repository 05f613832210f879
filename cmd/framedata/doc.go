/*
Command framedata loads SF6 frame data from the SuperCombo wiki and prints it.

Usage:

	framedata                                  # roster summary
	framedata -character ryu                   # every move for a character
	framedata -character "chun li" -input j.MK # one move
	framedata -character ken -stats            # startup statistics
	framedata -character ryu -format yaml

Configuration comes from the environment (WIKI_BASE_URL, FETCH_TIMEOUT,
LOAD_CONCURRENCY, ROSTER_FILE, LOG_LEVEL and friends). Logs go to stderr,
results to stdout.
*/
package main
