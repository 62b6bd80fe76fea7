package cmd

import (
	"fmt"

	"github.com/brogergvhs/yomikazu/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset [label]",
	Short: "Reset the current or specified config to default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileArg(args)
		if err != nil {
			return err
		}

		def := config.DefaultConfig()
		if err := p.Save(def); err != nil {
			return err
		}

		fmt.Printf("Reset config %s: %s\n", p.Label, p.Path)
		def.Print()
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
