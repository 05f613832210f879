package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/framedata/internal/notation"
	"github.com/GriffinCanCode/framedata/internal/shared/types"
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
)

const (
	inputSelector = "tr > th > div > p > span"
	nameSelector  = "tr > th > div > div"
	cellSelector  = "tr > td"
	hitboxXPath   = ".//tr/th/a"

	// DefaultImage is the placeholder used when a move has no thumbnail
	DefaultImage = "https://wiki.supercombo.gg/images/thumb/4/42/SF6_Logo.png/300px-SF6_Logo.png"
)

// Block failure reasons
var (
	ErrNoInput   = errors.New("no input")
	ErrRegexLoad = errors.New("regex load err")
	ErrNoName    = errors.New("no name")
)

// thumbPattern finds the 2x srcset entry of a thumbnail
var thumbPattern = regexp.MustCompile(`(/images/thumb\S+) 2x`)

// Reason returns the short reason for a block failure
func Reason(err error) string {
	for _, known := range []error{ErrNoInput, ErrRegexLoad, ErrNoName} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "unknown"
}

// Options configures a Parser
type Options struct {
	BaseURL      string
	DefaultImage string
	Layout       Layout
}

// Parser turns move blocks into moves
type Parser struct {
	baseURL      string
	defaultImage string
	layout       Layout
	compile      func(raw string) (*notation.Matcher, error)
}

// Parsed is a move plus what the parser had to make up for it
type Parsed struct {
	Move types.Move

	// MissingFields counts layout fields beyond the available cells
	MissingFields int

	// DefaultImage is set when no thumbnail could be found
	DefaultImage bool
}

// NewParser creates a block parser
func NewParser(opts Options) *Parser {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://wiki.supercombo.gg"
	}
	if opts.DefaultImage == "" {
		opts.DefaultImage = DefaultImage
	}
	if opts.Layout == nil {
		opts.Layout = DefaultLayout()
	}

	return &Parser{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		defaultImage: opts.DefaultImage,
		layout:       opts.Layout,
		compile:      notation.Compile,
	}
}

// Parse extracts a move from one block
func (p *Parser) Parse(block *goquery.Selection) (*Parsed, error) {
	inputCell := block.Find(inputSelector)
	if inputCell.Length() == 0 {
		return nil, ErrNoInput
	}
	input := Text(inputCell)

	matcher, err := p.compile(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegexLoad, err)
	}

	nameCell := block.Find(nameSelector)
	if nameCell.Length() == 0 {
		return nil, ErrNoName
	}

	move := blankMove()
	move.Name = Text(nameCell)
	move.Input = input
	move.InputMatcher = matcher

	parsed := &Parsed{}
	if url, ok := p.hitboxImage(block); ok {
		move.HitboxImageURL = url
	} else {
		move.HitboxImageURL = p.defaultImage
		parsed.DefaultImage = true
	}

	parsed.MissingFields = p.layout.Apply(&move, dataCells(block))
	parsed.Move = move
	return parsed, nil
}

// hitboxImage prefers the second thumbnail link (the hitbox illustration)
// over the first (the plain move image)
func (p *Parser) hitboxImage(block *goquery.Selection) (string, bool) {
	if block.Length() == 0 {
		return "", false
	}

	links, err := htmlquery.QueryAll(block.Get(0), hitboxXPath)
	if err != nil {
		return "", false
	}
	if len(links) > 2 {
		links = links[:2]
	}

	var found string
	for _, link := range links {
		if url, ok := p.thumbURL(htmlquery.OutputHTML(link, true)); ok {
			found = url
		}
	}
	return found, found != ""
}

// thumbURL rewrites the 2x thumbnail path in raw markup to an absolute URL
func (p *Parser) thumbURL(markup string) (string, bool) {
	m := thumbPattern.FindStringSubmatch(markup)
	if m == nil {
		return "", false
	}
	return p.baseURL + m[1], true
}

// dataCells flattens every data row into the text of each cell's deepest element
func dataCells(block *goquery.Selection) []string {
	cells := block.Find(cellSelector)
	values := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		values = append(values, Text(DeepestChild(cell)))
	})
	return values
}

func blankMove() types.Move {
	return types.Move{
		Startup:  types.Missing,
		Active:   types.Missing,
		Recovery: types.Missing,
		Cancel:   types.Missing,
		Damage:   types.Missing,
		Guard:    types.Missing,
		Invuln:   types.Missing,
		Armour:   types.Missing,
		OnHit:    types.Missing,
		OnBlock:  types.Missing,
		Notes:    types.Missing,
	}
}
