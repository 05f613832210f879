package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const (
	// MaxHTMLSize limits page size to 10MB
	MaxHTMLSize = 10 * 1024 * 1024

	// BlockSelector locates one table body per move
	BlockSelector = "div > div > section.section-collapsible > table.wikitable > tbody"
)

var (
	// ErrEmptyDocument is returned for an empty page
	ErrEmptyDocument = errors.New("html content required")

	// ErrDocumentTooLarge is returned for pages over MaxHTMLSize
	ErrDocumentTooLarge = fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)

	// ErrNotHTML is returned when a response body is not an HTML document
	ErrNotHTML = errors.New("response is not html")
)

// textPolicy strips every tag, leaving escaped text
var textPolicy = bluemonday.StrictPolicy()

// ValidateHTML checks page size
func ValidateHTML(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > MaxHTMLSize {
		return ErrDocumentTooLarge
	}
	return nil
}

// IsHTML reports whether data looks like an HTML document
func IsHTML(data []byte) bool {
	return mimetype.Detect(data).Is("text/html")
}

// minConfidence is the chardet score below which the page's own
// declaration (or the HTML5 default) wins
const minConfidence = 50

// DetectCharset detects the charset of a page
func DetectCharset(data []byte) string {
	if utf8.Valid(data) {
		return "utf-8"
	}
	detector := chardet.NewHtmlDetector()
	result, err := detector.DetectBest(data)
	if err == nil && result != nil && result.Confidence >= minConfidence {
		return strings.ToLower(result.Charset)
	}
	_, name, _ := charset.DetermineEncoding(data, "text/html")
	return name
}

// LoadDocument parses a page with charset conversion
func LoadDocument(data []byte) (*goquery.Document, error) {
	if err := ValidateHTML(data); err != nil {
		return nil, err
	}
	if !IsHTML(data) {
		return nil, fmt.Errorf("%w: detected %s", ErrNotHTML, mimetype.Detect(data).String())
	}

	utf8Reader, err := charset.NewReader(bytes.NewReader(data), "text/html; charset="+DetectCharset(data))
	if err != nil {
		// Fallback to direct parsing
		return goquery.NewDocumentFromReader(bytes.NewReader(data))
	}
	return goquery.NewDocumentFromReader(utf8Reader)
}

// Blocks returns every move block in a data page
func Blocks(doc *goquery.Document) *goquery.Selection {
	return doc.Find(BlockSelector)
}

// Text returns the text of a selection's first element, tags stripped and
// whitespace collapsed
func Text(sel *goquery.Selection) string {
	inner, err := sel.First().Html()
	if err != nil {
		return strings.TrimSpace(sel.First().Text())
	}
	return NormalizeWhitespace(html.UnescapeString(textPolicy.Sanitize(inner)))
}

// NormalizeWhitespace collapses runs of whitespace into one space
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DeepestChild follows first-element-child links until reaching a leaf element
func DeepestChild(sel *goquery.Selection) *goquery.Selection {
	for {
		child := sel.Children().First()
		if child.Length() == 0 {
			return sel
		}
		sel = child
	}
}
