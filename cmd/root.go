package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagStorage      string
	flagStoragePath  string
	flagEnvFile      string
)

var rootCmd = &cobra.Command{
	Use:           "yomikazu",
	Short:         "Track how many Japanese characters you have read on web novel sites",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "storage backend (file|sqlite|redis|memory)")
	rootCmd.PersistentFlags().StringVar(&flagStoragePath, "storage-path", "", "path of the file or sqlite store")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "load environment overrides from this file instead of ./.env")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Println(err)
		os.Exit(1)
	}
}
