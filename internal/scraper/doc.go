// Package scraper turns wiki data pages into move records.
//
// A data page holds one collapsible table per move. Each table body (a
// "block") has a header row with the input notation, the move name and up to
// two thumbnail links (a generic image and the hitbox illustration), followed
// by data rows whose cells are read by position using a Layout.
//
// Built on:
//   - goquery: CSS selection of blocks and cells
//   - htmlquery: XPath lookup and raw markup of the thumbnail links
//   - bluemonday: stripping markup from cell contents
//   - chardet + x/net/html/charset: decoding pages that are not UTF-8
//   - mimetype: rejecting responses that are not HTML
//
// Parse failures are per block: a block without an input or a name is
// reported with a reason and the caller moves on to the next one.
//
// Example Usage:
//
//	doc, err := scraper.LoadDocument(body)
//	parser := scraper.NewParser(scraper.Options{BaseURL: "https://wiki.supercombo.gg"})
//	scraper.Blocks(doc).Each(func(_ int, block *goquery.Selection) {
//	    parsed, err := parser.Parse(block)
//	    ...
//	})
package scraper
