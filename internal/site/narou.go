package site

import (
	"regexp"
	"strings"
)

// Narou handles ncode.syosetu.com and novel18.syosetu.com:
//
//	/{ncode}/       table of contents
//	/{ncode}/{n}/   episode n
//
// Episodes come in two markups: the current p-novel layout and the legacy
// novel_honbun layout still served to some clients.
type Narou struct{}

var (
	reNcode = regexp.MustCompile(`^n\d+[a-z]+$`)

	narouHosts = map[string]bool{
		"ncode.syosetu.com":   true,
		"novel18.syosetu.com": true,
	}

	narouContent = []probe{
		{selector: ".p-novel__body .p-novel__text:not(.p-novel__text--preface):not(.p-novel__text--afterword)"},
		{selector: ".p-novel__body"},
		{selector: "#novel_honbun"},
	}
	narouTitle = []probe{
		{selector: ".p-novel__title"},
		{selector: ".novel_subtitle"},
	}
)

func (Narou) Name() string { return "narou" }

func (Narou) Detect(p *Page) bool {
	return narouHosts[p.Host()] && reNcode.MatchString(strings.ToLower(p.segment(0)))
}

func (n Narou) NovelID(p *Page) (string, error) {
	if !n.Detect(p) {
		return "", notTracked(n.Name(), p)
	}
	return strings.ToLower(p.segment(0)), nil
}

func (Narou) ChapterID(p *Page) (string, bool) {
	seg := p.segment(1)
	if !isDigits(seg) {
		return "", false
	}
	return seg, true
}

func (n Narou) ExtractChapter(p *Page) (Content, error) {
	body, ok := p.firstSelection(narouContent)
	if !ok {
		return Content{}, extractionFailed(n.Name(), "episode body")
	}

	title, ok := p.firstText(narouTitle)
	if !ok {
		title = UnknownTitle
	}

	return Content{Title: title, Text: body.Text()}, nil
}
