package site

import (
	"errors"
	"fmt"
	"strings"
)

const UnknownTitle = "Unknown"

var (
	// ErrUnsupportedSite means no adapter is registered for the hostname.
	ErrUnsupportedSite = errors.New("unsupported site")
	// ErrNotInTrackedPage means the site is known but the page is not part of
	// a novel (home page, rankings, search). It is a normal outcome.
	ErrNotInTrackedPage = errors.New("not a novel page")
	// ErrExtractionFailed means a chapter page had no recognisable content.
	ErrExtractionFailed = errors.New("chapter extraction failed")
)

// Content is what an adapter reads off a chapter page.
type Content struct {
	Title string
	Text  string
}

// Adapter reads one site's URLs and chapter markup.
type Adapter interface {
	// Name is the short site label used in logs and the sites listing.
	Name() string
	// Detect reports whether the page belongs to a novel on this site. It only
	// looks at the URL and may be called on any page.
	Detect(p *Page) bool
	// NovelID is stable across every page of the same novel.
	NovelID(p *Page) (string, error)
	// ChapterID returns false on index and table-of-contents pages.
	ChapterID(p *Page) (string, bool)
	// ExtractChapter returns the chapter title, or UnknownTitle, and the text
	// of the content container. ErrExtractionFailed when there is none.
	ExtractChapter(p *Page) (Content, error)
}

type Registration struct {
	Suffix  string
	Adapter Adapter
}

// registry is matched in order against the hostname suffix.
var registry = []Registration{
	{Suffix: "syosetu.org", Adapter: Hameln{}},
	{Suffix: "syosetu.com", Adapter: Narou{}},
	{Suffix: "kakuyomu.jp", Adapter: Kakuyomu{}},
}

// Select returns the adapter registered for hostname (no port).
func Select(hostname string) (Adapter, error) {
	host := strings.ToLower(strings.TrimSuffix(hostname, "."))

	for _, r := range registry {
		if host == r.Suffix || strings.HasSuffix(host, "."+r.Suffix) {
			return r.Adapter, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSite, hostname)
}

// Registered returns a copy of the registry.
func Registered() []Registration {
	return append([]Registration(nil), registry...)
}

func extractionFailed(site, what string) error {
	return fmt.Errorf("%w: %s: %s not found", ErrExtractionFailed, site, what)
}

func notTracked(site string, p *Page) error {
	return fmt.Errorf("%w: %s%s", ErrNotInTrackedPage, site, p.URL.Path)
}
