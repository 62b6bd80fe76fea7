package site

// Kakuyomu handles kakuyomu.jp:
//
//	/works/{work}                      work top page
//	/works/{work}/episodes/{episode}   episode
type Kakuyomu struct{}

var (
	kakuyomuContent = []probe{{selector: ".widget-episodeBody"}}
	kakuyomuTitle   = []probe{
		{selector: ".widget-episodeTitle"},
		{selector: "#contentMain-header-episodeTitle"},
	}
)

func (Kakuyomu) Name() string { return "kakuyomu" }

func (Kakuyomu) Detect(p *Page) bool {
	return p.Host() == "kakuyomu.jp" && p.segment(0) == "works" && isDigits(p.segment(1))
}

func (k Kakuyomu) NovelID(p *Page) (string, error) {
	if !k.Detect(p) {
		return "", notTracked(k.Name(), p)
	}
	return p.segment(1), nil
}

func (Kakuyomu) ChapterID(p *Page) (string, bool) {
	if p.segment(2) != "episodes" || !isDigits(p.segment(3)) {
		return "", false
	}
	return p.segment(3), true
}

func (k Kakuyomu) ExtractChapter(p *Page) (Content, error) {
	body, ok := p.firstSelection(kakuyomuContent)
	if !ok {
		return Content{}, extractionFailed(k.Name(), ".widget-episodeBody")
	}

	title, ok := p.firstText(kakuyomuTitle)
	if !ok {
		title = UnknownTitle
	}

	return Content{Title: title, Text: body.Text()}, nil
}
