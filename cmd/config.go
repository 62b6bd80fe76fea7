package cmd

import (
	"fmt"

	"github.com/brogergvhs/yomikazu/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective config and manage config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := config.LoadMerged(baseOptions())
		if err != nil {
			return err
		}

		if p, err := config.ActiveProfile(); err == nil && !flagIgnoreConfig {
			fmt.Printf("Active profile: %s\n", p.Label)
		}
		fmt.Printf("Loaded config from:\n  %s\n\n", used)
		fmt.Println("Effective values (profile, then YOMIKAZU_* environment, then flags):")
		cfg.Print()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
