package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/brogergvhs/yomikazu/internal/progress"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	log := NewLogger(false).WithOutput(&buf)
	log.Debugf("hidden %d\n", 1)
	log.Infof("shown %d\n", 2)
	log.Errorf("failed %s\n", "x")
	assert.Equal(t, "[INFO] shown 2\n[ERROR] failed x\n", buf.String())

	buf.Reset()
	NewLogger(true).WithOutput(&buf).Debugf("probe %s\n", "#honbun")
	assert.Equal(t, "[DEBUG] probe #honbun\n", buf.String())
}

func TestRenderNovelOrdersChapters(t *testing.T) {
	n := progress.NewNovel()
	n.ReadChapters["10"] = progress.Chapter{Title: "十", Characters: 3}
	n.ReadChapters["2"] = progress.Chapter{Title: "二", Characters: 4}
	n.ReadChapters["1"] = progress.Chapter{Title: "Prologue", Characters: 7}

	out := RenderNovel("n1234ab", n)

	assert.Contains(t, out, "n1234ab")
	assert.Contains(t, out, "Prologue")
	assert.Contains(t, out, "Total: 14 characters in 3 chapters")

	i1 := strings.Index(out, "Prologue")
	i2 := strings.Index(out, "二")
	i10 := strings.Index(out, "十")
	assert.True(t, i1 < i2 && i2 < i10, "chapters must be in numeric order:\n%s", out)
}

func TestRenderNovelEmpty(t *testing.T) {
	out := RenderNovel("12345", progress.NewNovel())
	assert.Contains(t, out, "no chapters read yet")
	assert.Contains(t, out, "Total: 0 characters in 0 chapters")
}

func TestRenderNovels(t *testing.T) {
	assert.Contains(t, RenderNovels(nil), "no novels tracked yet")

	out := RenderNovels([]NovelRow{{ID: "12345", Chapters: 2, Characters: 15}})
	assert.Contains(t, out, "12345")
	assert.Contains(t, out, "15")
}

func TestStatsPrint(t *testing.T) {
	var s Stats
	s.Recorded.Add(2)
	s.Failed.Add(1)
	s.Characters.Add(42)

	var buf bytes.Buffer
	s.Print(&buf, 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "Recorded:   2")
	assert.Contains(t, out, "Failed:     1")
	assert.Contains(t, out, "Characters: 42")
}

func TestProgressHandleCountsCharacters(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManagerTo(&buf)

	h := pm.Register("visit", 2)
	h.Step(5)
	h.Step(7)
	h.MarkDone()
	h.Step(100)
	pm.Close()

	assert.Equal(t, int64(12), h.Characters())
}
