package tracker

import (
	"context"
	"strings"
	"testing"

	"github.com/brogergvhs/yomikazu/internal/kv"
	"github.com/brogergvhs/yomikazu/internal/progress"
	"github.com/brogergvhs/yomikazu/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

func newTracker(t *testing.T) (*Tracker, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return New(progress.NewStore(mem, nil), nopLogger{}), mem
}

func page(t *testing.T, rawURL, html string) *site.Page {
	t.Helper()
	p, err := site.NewPage(rawURL, strings.NewReader(html))
	require.NoError(t, err)
	return p
}

const hamelnChapter = `<html><body>
<span style="font-size:120%">作品名</span>
<span style="font-size:120%">Prologue</span>
<div id="honbun"><p>吾輩は猫である。</p></div>
</body></html>`

func TestVisitNewNovelChapter(t *testing.T) {
	tr, mem := newTracker(t)
	ctx := context.Background()

	res, err := tr.Visit(ctx, page(t, "https://syosetu.org/novel/12345/", "<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "12345", res.NovelID)
	assert.Empty(t, res.ChapterID)
	assert.Equal(t, progress.NewNovel(), res.Novel)
	assert.Equal(t, 0, res.Total)

	res, err = tr.Visit(ctx, page(t, "https://syosetu.org/novel/12345/3.html", hamelnChapter))
	require.NoError(t, err)
	assert.Equal(t, "hameln", res.Site)
	assert.Equal(t, "3", res.ChapterID)
	assert.Equal(t, map[string]progress.Chapter{"3": {Title: "Prologue", Characters: 7}}, res.Novel.ReadChapters)
	assert.Equal(t, 7, res.Total)
	require.NotNil(t, res.Chapter)
	assert.Equal(t, 7, res.Chapter.Characters)

	raw, ok, err := mem.Get(ctx, "12345")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"readChapters":{"3":{"title":"Prologue","characters":7}}}`, raw)
}

func TestVisitSameChapterTwiceDoesNotAccumulate(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	p := page(t, "https://syosetu.org/novel/12345/3.html", hamelnChapter)

	_, err := tr.Visit(ctx, p)
	require.NoError(t, err)
	res, err := tr.Visit(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Novel.Len())
	assert.Equal(t, 7, res.Total)
}

func TestVisitUnsupportedSite(t *testing.T) {
	tr, mem := newTracker(t)

	_, err := tr.Visit(context.Background(), page(t, "https://example.com/novel/1/2.html", hamelnChapter))
	assert.ErrorIs(t, err, site.ErrUnsupportedSite)

	keys, _ := mem.Keys(context.Background())
	assert.Empty(t, keys)
}

func TestVisitNotInTrackedPage(t *testing.T) {
	tr, mem := newTracker(t)

	res, err := tr.Visit(context.Background(), page(t, "https://yomou.syosetu.com/rank/top/", "<html></html>"))
	assert.ErrorIs(t, err, site.ErrNotInTrackedPage)
	assert.Equal(t, "narou", res.Site)

	keys, _ := mem.Keys(context.Background())
	assert.Empty(t, keys)
}

func TestVisitExtractionFailedKeepsRecord(t *testing.T) {
	tr, mem := newTracker(t)
	ctx := context.Background()

	_, err := tr.Visit(ctx, page(t, "https://syosetu.org/novel/12345/3.html", hamelnChapter))
	require.NoError(t, err)
	before, _, _ := mem.Get(ctx, "12345")

	res, err := tr.Visit(ctx, page(t, "https://syosetu.org/novel/12345/4.html", "<p>error</p>"))
	assert.ErrorIs(t, err, site.ErrExtractionFailed)
	assert.Equal(t, "4", res.ChapterID)

	after, _, _ := mem.Get(ctx, "12345")
	assert.Equal(t, before, after)
}

func TestVisitStorageUnavailable(t *testing.T) {
	s, err := kv.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	tr := New(progress.NewStore(s, nil), nopLogger{})
	_, err = tr.Visit(context.Background(), page(t, "https://syosetu.org/novel/12345/3.html", hamelnChapter))
	assert.ErrorIs(t, err, progress.ErrStorageUnavailable)
}

func TestVisitAcrossSites(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()

	narou := `<h1 class="p-novel__title">第1話</h1><div class="p-novel__body"><div class="p-novel__text">異世界に転生した。</div></div>`
	res, err := tr.Visit(ctx, page(t, "https://ncode.syosetu.com/n9669bk/1/", narou))
	require.NoError(t, err)
	assert.Equal(t, "n9669bk", res.NovelID)
	assert.Equal(t, 8, res.Total)

	kakuyomu := `<p class="widget-episodeTitle">一</p><div class="widget-episodeBody"><p>ＡＩと話す。</p></div>`
	res, err = tr.Visit(ctx, page(t, "https://kakuyomu.jp/works/1177354054880238351/episodes/1177354054880238400", kakuyomu))
	require.NoError(t, err)
	assert.Equal(t, "1177354054880238351", res.NovelID)
	assert.Equal(t, 5, res.Total)

	ids, err := tr.Novels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1177354054880238351", "n9669bk"}, ids)
}

func TestDelete(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()

	_, err := tr.Visit(ctx, page(t, "https://syosetu.org/novel/12345/3.html", hamelnChapter))
	require.NoError(t, err)

	n, err := tr.Delete(ctx, "12345", "3")
	require.NoError(t, err)
	assert.Equal(t, 0, n.Len())

	n, err = tr.Delete(ctx, "12345", "3")
	require.NoError(t, err)
	assert.Equal(t, 0, n.Len())

	loaded, err := tr.Novel(ctx, "12345")
	require.NoError(t, err)
	assert.Equal(t, progress.NewNovel(), loaded)
}

func TestReadsOfUnknownNovelWriteNothing(t *testing.T) {
	tr, mem := newTracker(t)
	ctx := context.Background()

	_, err := tr.Novel(ctx, "typo-id")
	assert.ErrorIs(t, err, progress.ErrNotFound)

	_, err = tr.Delete(ctx, "other-typo", "5")
	assert.ErrorIs(t, err, progress.ErrNotFound)

	keys, err := mem.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	ids, err := tr.Novels(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
