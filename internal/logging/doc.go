// Package logging provides structured logging using uber/zap.
//
// Production mode writes JSON, development mode writes coloured console
// output. Loader code tags entries with the character being processed:
//
//	logger := logging.NewDefault()
//	logger.ForCharacter("Ryu").Warn("skipping move", zap.String("reason", "no name"))
package logging
