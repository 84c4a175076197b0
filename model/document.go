package model

import (
	"strings"
	"time"
)

// Document is the set of output pages produced from one source.
type Document struct {
	Metadata Metadata
	Pages    []*Page
}

// Metadata contains document-level information written to the output's
// Info dictionary.
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	Producer     string
	CreationDate time.Time
	ModDate      time.Time
}

// IsEmpty reports whether no field is set.
func (m Metadata) IsEmpty() bool {
	return m.Title == "" && m.Author == "" && m.Subject == "" && len(m.Keywords) == 0 &&
		m.Creator == "" && m.Producer == "" && m.CreationDate.IsZero() && m.ModDate.IsZero()
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the document
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// WordCount returns the number of words placed across all pages.
func (d *Document) WordCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Words)
	}
	return n
}

// ExtractText returns all recognised text, pages separated by a blank line
func (d *Document) ExtractText() string {
	parts := make([]string, 0, len(d.Pages))
	for _, page := range d.Pages {
		parts = append(parts, page.ExtractText())
	}
	return strings.Join(parts, "\n\n")
}
