package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/yomikazu/internal/site"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the supported novel sites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "SITE\tHOST")

		for _, r := range site.Registered() {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", r.Adapter.Name(), r.Suffix)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
