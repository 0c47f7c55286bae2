package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vkarthik/canvault/internal/model"
	"github.com/vkarthik/canvault/internal/vault"
)

func addComplete(topLevel *cobra.Command, configPath *string) {
	cmd := &cobra.Command{
		Use:   "complete <vault-relative-path>",
		Short: "mark an assignment note done and move it out of the todo folder",
		Example: `
canvault complete "School/Math/Todo/HW 3.md"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := buildDeps(*configPath)
			if err != nil {
				return err
			}
			defer deps.Close()

			item, err := model.NewDueItem(args[0], deps.cfg.MarkerFolder, nil)
			if err != nil {
				return err
			}
			result, err := vault.Complete(deps.store, item, deps.cfg.MarkerFolder, deps.cfg.DoneFolder)
			if err != nil {
				return err
			}
			fmt.Printf("moved %s -> %s\n", result.OldPath, result.NewPath)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
