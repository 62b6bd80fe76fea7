package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set with -ldflags "-X github.com/brogergvhs/yomikazu/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the yomikazu version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("yomikazu version:", Version)

		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Println("go:", info.GoVersion)
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					fmt.Println("revision:", s.Value)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
