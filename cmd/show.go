package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/yomikazu/internal/progress"
	"github.com/brogergvhs/yomikazu/internal/ui"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <novel-id>",
	Short: "Show the chapters read so far for one novel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(baseOptions())
		if err != nil {
			return err
		}
		defer s.Close()

		novel, err := s.tracker.Novel(cmd.Context(), args[0])
		if errors.Is(err, progress.ErrNotFound) {
			return fmt.Errorf("%w (see `yomikazu list`)", err)
		}
		if err != nil {
			return err
		}

		fmt.Print(ui.RenderNovel(args[0], novel))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
