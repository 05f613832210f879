// Package testutil provides wiki page fixtures and a fake wiki server for tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Block describes one move table in a fixture page
type Block struct {
	Input string
	Name  string

	// Thumbs are thumbnail paths rendered as <a class="image"> links, in order
	Thumbs []string

	// Cells are data cell values, wrapped in a <span> each
	Cells []string

	OmitInput bool
	OmitName  bool
}

// ThumbLink renders a thumbnail link whose srcset ends with path at 2x
func ThumbLink(path string) string {
	small := strings.Replace(path, "/350px-", "/175px-", 1)
	return fmt.Sprintf(
		`<a href="/File:%[1]s" class="image"><img alt="" src="%[2]s" decoding="async" width="175" height="175" srcset="%[2]s 1.5x, %[3]s 2x"></a>`,
		strings.TrimPrefix(path, "/images/thumb/"), small, path)
}

// HTML renders the block as a table
func (b Block) HTML() string {
	var sb strings.Builder
	sb.WriteString(`<table class="wikitable"><tbody><tr><th>`)
	for _, thumb := range b.Thumbs {
		sb.WriteString(ThumbLink(thumb))
	}
	sb.WriteString(`</th><th><div>`)
	if !b.OmitInput {
		fmt.Fprintf(&sb, `<p><span class="input">%s</span></p>`, b.Input)
	}
	if !b.OmitName {
		fmt.Fprintf(&sb, `<div class="name">%s</div>`, b.Name)
	}
	sb.WriteString(`</div></th></tr><tr>`)
	for _, cell := range b.Cells {
		fmt.Fprintf(&sb, `<td><span>%s</span></td>`, cell)
	}
	sb.WriteString(`</tr></tbody></table>`)
	return sb.String()
}

// Page renders a data page containing blocks, one collapsible section each
func Page(title string, blocks ...Block) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s/Data</title></head><body><div id="content"><div class="mw-parser-output">`, title)
	for _, b := range blocks {
		sb.WriteString(`<section class="section-collapsible">`)
		sb.WriteString(b.HTML())
		sb.WriteString(`</section>`)
	}
	sb.WriteString(`</div></div></body></html>`)
	return sb.String()
}

// FullRow returns width cells where cell i is "c<i>", overridden by values
func FullRow(width int, values map[int]string) []string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = fmt.Sprintf("c%d", i)
	}
	for i, v := range values {
		if i < width {
			cells[i] = v
		}
	}
	return cells
}

// Wiki is a fake wiki serving fixture pages by path
type Wiki struct {
	*httptest.Server

	mu    sync.Mutex
	pages map[string]string
	fail  map[string]int
	hits  map[string]int
}

// NewWiki starts a fake wiki; it is closed when the test ends
func NewWiki(t testing.TB) *Wiki {
	t.Helper()
	w := &Wiki{
		pages: make(map[string]string),
		fail:  make(map[string]int),
		hits:  make(map[string]int),
	}
	w.Server = httptest.NewServer(http.HandlerFunc(w.serve))
	t.Cleanup(w.Close)
	return w
}

// SetPage serves body at path
func (w *Wiki) SetPage(path, body string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pages[path] = body
}

// SetStatus makes path answer with status
func (w *Wiki) SetStatus(path string, status int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fail[path] = status
}

// ClearStatus stops every forced status so pages are served again
func (w *Wiki) ClearStatus() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fail = make(map[string]int)
}

// Hits returns how many times path was requested
func (w *Wiki) Hits(path string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hits[path]
}

func (w *Wiki) serve(rw http.ResponseWriter, r *http.Request) {
	w.mu.Lock()
	w.hits[r.URL.Path]++
	status, failing := w.fail[r.URL.Path]
	body, ok := w.pages[r.URL.Path]
	w.mu.Unlock()

	switch {
	case failing:
		rw.WriteHeader(status)
	case ok:
		rw.Header().Set("Content-Type", "text/html; charset=UTF-8")
		_, _ = rw.Write([]byte(body))
	default:
		http.NotFound(rw, r)
	}
}
