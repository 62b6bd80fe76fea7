package site

import "strings"

// Hameln handles syosetu.org:
//
//	/novel/{id}/            table of contents
//	/novel/{id}/{n}.html    chapter n
type Hameln struct{}

var (
	hamelnContent = []probe{{selector: "#honbun"}}
	hamelnTitle   = []probe{
		// the first 120% span is the novel title, the second the chapter title
		{selector: `span[style="font-size:120%"]`, index: 1},
		{selector: `#maind .ss > p > span`, index: 1},
	}
)

func (Hameln) Name() string { return "hameln" }

func (Hameln) Detect(p *Page) bool {
	return p.Host() == "syosetu.org" && p.segment(0) == "novel" && p.segment(1) != ""
}

func (h Hameln) NovelID(p *Page) (string, error) {
	if !h.Detect(p) {
		return "", notTracked(h.Name(), p)
	}
	return p.segment(1), nil
}

func (Hameln) ChapterID(p *Page) (string, bool) {
	seg := p.segment(2)
	if seg == "" {
		return "", false
	}

	id, _, _ := strings.Cut(seg, ".")
	if !isDigits(id) {
		return "", false
	}
	return id, true
}

func (h Hameln) ExtractChapter(p *Page) (Content, error) {
	body, ok := p.firstSelection(hamelnContent)
	if !ok {
		return Content{}, extractionFailed(h.Name(), "#honbun")
	}

	title, ok := p.firstText(hamelnTitle)
	if !ok {
		title = UnknownTitle
	}

	return Content{Title: title, Text: body.Text()}, nil
}
