package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brogergvhs/yomikazu/internal/progress"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	novelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF"))

	totalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// RenderNovel lists every read chapter of a novel in chapter order followed by
// the total character count.
func RenderNovel(novelID string, n progress.Novel) string {
	var b strings.Builder

	b.WriteString(novelStyle.Render(novelID))
	b.WriteString("\n")

	entries := n.Sorted()
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("no chapters read yet"))
		b.WriteString("\n")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			Headers("CHAPTER", "TITLE", "CHARACTERS").
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return headerStyle.Padding(0, 1)
				}
				if col == 2 {
					return s.Align(lipgloss.Right)
				}
				return s
			})

		for _, e := range entries {
			t.Row(e.ID, e.Title, strconv.Itoa(e.Characters))
		}

		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString(totalStyle.Render(fmt.Sprintf("Total: %d characters in %d chapters",
		progress.TotalCharacters(n), n.Len())))
	b.WriteString("\n")

	return b.String()
}

// RenderNovels is the one-line-per-novel overview used by `list`.
func RenderNovels(rows []NovelRow) string {
	if len(rows) == 0 {
		return mutedStyle.Render("no novels tracked yet") + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("NOVEL", "CHAPTERS", "CHARACTERS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			s := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				return s.Align(lipgloss.Right)
			}
			return s
		})

	for _, r := range rows {
		t.Row(r.ID, strconv.Itoa(r.Chapters), strconv.Itoa(r.Characters))
	}

	return t.Render() + "\n"
}

type NovelRow struct {
	ID         string
	Chapters   int
	Characters int
}
