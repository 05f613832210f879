package notation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidPattern is returned when scraped text cannot be turned into a matcher
var ErrInvalidPattern = errors.New("invalid input pattern")

// Matcher matches user queries against one move input
type Matcher struct {
	raw string
	re  *regexp.Regexp
}

// Normalize removes all whitespace from s
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Pattern returns the anchored, case-insensitive expression for a raw input.
// Metacharacters (including the chain tilde) are matched literally and every
// dot becomes optional.
func Pattern(raw string) string {
	quoted := regexp.QuoteMeta(Normalize(raw))
	quoted = strings.ReplaceAll(quoted, `\.`, `\.?`)
	quoted = strings.ReplaceAll(quoted, `~`, `\~`)
	return `(?i)^(` + quoted + `)$`
}

// Compile builds a Matcher for raw
func Compile(raw string) (*Matcher, error) {
	re, err := regexp.Compile(Pattern(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, raw, err)
	}
	return &Matcher{raw: raw, re: re}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(raw string) *Matcher {
	m, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether query names the same input. Whitespace in the query is
// ignored.
func (m *Matcher) Match(query string) bool {
	if m == nil {
		return false
	}
	return m.re.MatchString(Normalize(query))
}

// Raw returns the input the matcher was built from
func (m *Matcher) Raw() string {
	return m.raw
}

// String returns the compiled expression
func (m *Matcher) String() string {
	if m == nil {
		return ""
	}
	return m.re.String()
}
