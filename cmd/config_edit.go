package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/brogergvhs/yomikazu/internal/config"

	"github.com/spf13/cobra"
)

var configEditCmd = &cobra.Command{
	Use:   "edit [label]",
	Short: "Edit current or specified config in $EDITOR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileArg(args)
		if err != nil {
			return err
		}
		if _, err := os.Stat(p.Path); err != nil {
			return fmt.Errorf("config %q does not exist", p.Label)
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		cmdExec := exec.Command(editor, p.Path)
		cmdExec.Stdin = os.Stdin
		cmdExec.Stdout = os.Stdout
		cmdExec.Stderr = os.Stderr

		if err := cmdExec.Run(); err != nil {
			return fmt.Errorf("failed to open editor: %w", err)
		}

		// catch typos before the next visit trips over them
		if _, err := p.Load(); err != nil {
			return fmt.Errorf("%s no longer parses: %w", p.Path, err)
		}
		return nil
	},
}

// profileArg is the profile named in args, or the active one.
func profileArg(args []string) (config.Profile, error) {
	if len(args) == 1 {
		return config.LookupProfile(args[0])
	}

	p, err := config.ActiveProfile()
	if err != nil {
		return config.Profile{}, fmt.Errorf("%w: run `yomikazu config init` first", err)
	}
	return p, nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
