package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/yomikazu/internal/config"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available configs with their storage and renderer",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.Profiles()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No configs yet. Run `yomikazu config init`.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "LABEL\tSTORAGE\tRENDERER\tACTIVE\tPATH")

		for _, p := range list {
			activeMark := ""
			if p.Active {
				activeMark = "yes"
			}

			storage, renderer := "?", "?"
			if cfg, err := p.Load(); err == nil {
				storage, renderer = cfg.Storage, cfg.Renderer
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Label, storage, renderer, activeMark, p.Path)
		}

		return w.Flush()
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
