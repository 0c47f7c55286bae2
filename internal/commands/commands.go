package commands

import (
	"github.com/spf13/cobra"
)

// New builds the canvault command tree. Running the bare binary opens
// the TUI.
func New() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "canvault",
		Short: "Assignment due dates from your LMS, inside your note vault.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")

	addTUI(cmd, &configPath)
	addSync(cmd, &configPath)
	addComplete(cmd, &configPath)
	return cmd
}
