package cmd

import (
	"fmt"

	"github.com/brogergvhs/yomikazu/internal/ui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <novel-id> [chapter-id]",
	Short: "Forget one read chapter of a novel",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(baseOptions())
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		novelID := args[0]

		var chapterID string
		if len(args) == 2 {
			chapterID = args[1]
		} else {
			novel, err := s.tracker.Novel(ctx, novelID)
			if err != nil {
				return err
			}

			entries := novel.Sorted()
			if len(entries) == 0 {
				return fmt.Errorf("novel %s has no read chapters", novelID)
			}

			items := make([]string, len(entries))
			for i, e := range entries {
				items[i] = fmt.Sprintf("%s  %s  (%d)", e.ID, e.Title, e.Characters)
			}

			prompt := promptui.Select{
				Label: "Select chapter to delete",
				Items: items,
			}

			idx, _, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("selection cancelled")
			}

			chapterID = entries[idx].ID
		}

		before, err := s.tracker.Novel(ctx, novelID)
		if err != nil {
			return err
		}
		if _, ok := before.ReadChapters[chapterID]; !ok {
			fmt.Printf("Chapter %s of %s was not recorded, nothing to delete.\n", chapterID, novelID)
			return nil
		}

		novel, err := s.tracker.Delete(ctx, novelID, chapterID)
		if err != nil {
			return err
		}

		fmt.Printf("Deleted chapter %s of %s.\n", chapterID, novelID)
		fmt.Print(ui.RenderNovel(novelID, novel))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
