// Package tracker is the driver that turns one page visit into a progress
// update: select the adapter, identify the novel, load its record, and record
// the current chapter when there is one.
package tracker

import (
	"context"
	"fmt"

	"github.com/brogergvhs/yomikazu/internal/counter"
	"github.com/brogergvhs/yomikazu/internal/progress"
	"github.com/brogergvhs/yomikazu/internal/site"
)

type Logger interface {
	Debugf(string, ...any)
}

// Result is what the rendering side gets after every visit.
type Result struct {
	Site      string
	NovelID   string
	ChapterID string // empty on index pages
	Chapter   *progress.Chapter
	Novel     progress.Novel
	Total     int
}

// Tracker applies page visits and user deletions to the progress store.
type Tracker struct {
	store *progress.Store
	log   Logger
}

// New returns a Tracker writing through store.
func New(store *progress.Store, log Logger) *Tracker {
	return &Tracker{store: store, log: log}
}

// Visit processes one loaded page. site.ErrUnsupportedSite and
// site.ErrNotInTrackedPage leave storage untouched. site.ErrExtractionFailed is
// returned after the novel record has been loaded, so earlier chapters stay as
// they were.
func (t *Tracker) Visit(ctx context.Context, page *site.Page) (Result, error) {
	adapter, err := site.Select(page.Host())
	if err != nil {
		return Result{}, err
	}
	t.log.Debugf("adapter %s selected for %s\n", adapter.Name(), page.Host())

	if !adapter.Detect(page) {
		return Result{Site: adapter.Name()}, fmt.Errorf("%w: %s", site.ErrNotInTrackedPage, page.URL)
	}

	novelID, err := adapter.NovelID(page)
	if err != nil {
		return Result{Site: adapter.Name()}, err
	}

	novel, err := t.store.Load(ctx, novelID)
	if err != nil {
		return Result{Site: adapter.Name(), NovelID: novelID}, err
	}

	res := Result{
		Site:    adapter.Name(),
		NovelID: novelID,
		Novel:   novel,
		Total:   progress.TotalCharacters(novel),
	}

	chapterID, ok := adapter.ChapterID(page)
	if !ok {
		t.log.Debugf("%s/%s: index page, nothing to record\n", adapter.Name(), novelID)
		return res, nil
	}
	res.ChapterID = chapterID

	content, err := adapter.ExtractChapter(page)
	if err != nil {
		return res, err
	}

	ch := progress.Chapter{
		Title:      content.Title,
		Characters: counter.Count(content.Text),
	}

	novel, err = t.store.RecordChapter(ctx, novelID, novel, chapterID, ch)
	if err != nil {
		return res, err
	}

	res.Chapter = &ch
	res.Novel = novel
	res.Total = progress.TotalCharacters(novel)

	return res, nil
}

// Novel reads a record for display. An unknown novel is
// progress.ErrNotFound and nothing is written.
func (t *Tracker) Novel(ctx context.Context, novelID string) (progress.Novel, error) {
	return t.store.Get(ctx, novelID)
}

// Novels lists every tracked novel identifier.
func (t *Tracker) Novels(ctx context.Context) ([]string, error) {
	return t.store.List(ctx)
}

// Delete removes one chapter from a tracked novel, as requested by the user.
// Only page visits create records, so an unknown novel is progress.ErrNotFound.
func (t *Tracker) Delete(ctx context.Context, novelID, chapterID string) (progress.Novel, error) {
	novel, err := t.store.Get(ctx, novelID)
	if err != nil {
		return progress.Novel{}, err
	}

	return t.store.DeleteChapter(ctx, novelID, novel, chapterID)
}
