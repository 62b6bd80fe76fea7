package cmd

import (
	"fmt"

	"github.com/brogergvhs/yomikazu/internal/progress"
	"github.com/brogergvhs/yomikazu/internal/ui"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every tracked novel with its totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(baseOptions())
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		ids, err := s.tracker.Novels(ctx)
		if err != nil {
			return err
		}

		rows := make([]ui.NovelRow, 0, len(ids))
		for _, id := range ids {
			novel, err := s.tracker.Novel(ctx, id)
			if err != nil {
				s.log.Errorf("%s: %v\n", id, err)
				continue
			}
			rows = append(rows, ui.NovelRow{
				ID:         id,
				Chapters:   novel.Len(),
				Characters: progress.TotalCharacters(novel),
			})
		}

		fmt.Print(ui.RenderNovels(rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
