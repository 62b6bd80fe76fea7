package site

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a loaded document together with the location it was loaded from.
// Both are read once per visit.
type Page struct {
	URL *url.URL
	Doc *goquery.Document
}

// NewPage parses the HTML in r as the document found at rawURL.
func NewPage(rawURL string, r io.Reader) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url %q has no host", rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &Page{URL: u, Doc: doc}, nil
}

// Host returns the lower-cased hostname without port.
func (p *Page) Host() string {
	return strings.ToLower(p.URL.Hostname())
}

// segments splits the path on "/" and drops the leading empty element, so
// "/novel/123/4.html" gives ["novel" "123" "4.html"] and "/novel/123/" gives
// ["novel" "123" ""].
func (p *Page) segments() []string {
	path := strings.TrimPrefix(p.URL.Path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func (p *Page) segment(i int) string {
	seg := p.segments()
	if i < len(seg) {
		return seg[i]
	}
	return ""
}

// probe is one structural variant of where a value lives on a page. Index
// selects among several matches.
type probe struct {
	selector string
	index    int
}

// firstText returns the trimmed text of the first probe that resolves to a
// non-empty element.
func (p *Page) firstText(probes []probe) (string, bool) {
	for _, pr := range probes {
		sel := p.Doc.Find(pr.selector)
		if sel.Length() <= pr.index {
			continue
		}
		if t := strings.TrimSpace(sel.Eq(pr.index).Text()); t != "" {
			return t, true
		}
	}
	return "", false
}

// firstSelection returns the first probe that matches at least one element.
func (p *Page) firstSelection(probes []probe) (*goquery.Selection, bool) {
	for _, pr := range probes {
		sel := p.Doc.Find(pr.selector)
		if sel.Length() > pr.index {
			if pr.index > 0 {
				return sel.Eq(pr.index), true
			}
			return sel, true
		}
	}
	return nil, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
